/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package startlist

import (
	"fmt"
	"sort"
	"strings"
)

// BuildScheduleOutput formats a schedule into grouped, aligned string output
// for terminal review, one section per lane.
func BuildScheduleOutput(schedule []StartListEntry) string {
	byLane := make(map[string][]StartListEntry)
	var laneNames []string
	for _, row := range schedule {
		if _, ok := byLane[row.LaneName]; !ok {
			laneNames = append(laneNames, row.LaneName)
		}
		byLane[row.LaneName] = append(byLane[row.LaneName], row)
	}
	sort.Sort(ClassSorter(laneNames))

	var sb strings.Builder
	for _, lane := range laneNames {
		rows := byLane[lane]

		// Compute column widths
		maxC, maxN, maxA := len("Class"), len("Name"), len("Affiliation")
		for _, r := range rows {
			if l := len(r.ClassName); l > maxC {
				maxC = l
			}
			if l := len(r.Name); l > maxN {
				maxN = l
			}
			if l := len(displayAffiliation(r.Affiliation)); l > maxA {
				maxA = l
			}
		}

		if len(laneNames) > 1 {
			sb.WriteString(fmt.Sprintf("%s (%s)\n", lane, rows[0].AreaName))
		}
		sb.WriteString(fmt.Sprintf("%5s  %-8s  %-*s  %-*s  %-*s  %s\n",
			"No.", "Time", maxC, "Class", maxN, "Name", maxA, "Affiliation",
			"Card"))
		for _, r := range rows {
			card := r.CardNumber
			if card == "" || r.CardNote == CardNoteRental {
				card = CardNoteRental
			}
			sb.WriteString(fmt.Sprintf("%5d  %-8s  %-*s  %-*s  %-*s  %s\n",
				r.StartNumber, r.StartTime, maxC, r.ClassName, maxN, r.Name,
				maxA, displayAffiliation(r.Affiliation), card))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildConflictsOutput formats detected conflicts for review; empty input
// yields an all-clear line.
func BuildConflictsOutput(conflicts []Conflict) string {
	if len(conflicts) == 0 {
		return "No schedule conflicts detected\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d schedule conflicts:\n", len(conflicts)))
	for _, c := range conflicts {
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", c.Kind, c.Message))
	}
	return sb.String()
}

func displayAffiliation(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "-"
	}
	return raw
}

// ClassSorter implements sort.Interface for class and lane names, comparing
// embedded digit runs numerically so "M21A2" sorts before "M21A10" and
// "Lane 2" before "Lane 10".
type ClassSorter []string

func (s ClassSorter) Len() int { return len(s) }

func (s ClassSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s ClassSorter) Less(i, j int) bool {
	return naturalLess(s[i], s[j])
}

func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ra, restA, numA := nextRun(a)
		rb, restB, numB := nextRun(b)
		if numA && numB {
			// compare digit runs numerically; equal values fall through to
			// the longer (zero-padded) run
			va, vb := runValue(ra), runValue(rb)
			if va != vb {
				return va < vb
			}
		}
		if ra != rb {
			return ra < rb
		}
		a, b = restA, restB
	}
	return a < b
}

// nextRun splits off the leading run of digits or non-digits.
func nextRun(s string) (run, rest string, isNum bool) {
	isNum = s[0] >= '0' && s[0] <= '9'
	for i := 0; i < len(s); i++ {
		d := s[i] >= '0' && s[i] <= '9'
		if d != isNum {
			return s[:i], s[i:], isNum
		}
	}
	return s, "", isNum
}

func runValue(run string) int {
	v := 0
	for i := 0; i < len(run); i++ {
		v = v*10 + int(run[i]-'0')
	}
	return v
}
