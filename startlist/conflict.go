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

// CheckConflicts scans a finished schedule for same-club collisions under
// the given constraints. Detection never mutates the schedule and conflicts
// never block generation; they exist for manual correction or a re-run with
// a different seed.
func CheckConflicts(schedule []StartListEntry, cons Constraints) []Conflict {
	var conflicts []Conflict
	conflicts = append(conflicts, sameTimeConflicts(schedule, cons)...)
	conflicts = append(conflicts, sameLaneConflicts(schedule, cons)...)
	return conflicts
}

// sameTimeConflicts groups rows by identical start time, then by individual
// affiliation token (a row with several clubs contributes to each); any
// token shared by more than one simultaneous starter is reported once per
// (time, token).
func sameTimeConflicts(schedule []StartListEntry, cons Constraints) []Conflict {
	if cons.AllowSameTime {
		return nil
	}

	byTime := make(map[Clock][]StartListEntry)
	var times []Clock
	for _, row := range schedule {
		if !areaInScope(row.AreaName, cons.SameTimeAreas) {
			continue
		}
		if _, ok := byTime[row.StartTime]; !ok {
			times = append(times, row.StartTime)
		}
		byTime[row.StartTime] = append(byTime[row.StartTime], row)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	var conflicts []Conflict
	for _, t := range times {
		group := byTime[t]
		if len(group) < 2 {
			continue
		}

		byToken := make(map[string][]StartListEntry)
		var tokens []string
		for _, row := range group {
			for _, tok := range SplitAffiliations(row.Affiliation) {
				if _, ok := byToken[tok]; !ok {
					tokens = append(tokens, tok)
				}
				byToken[tok] = append(byToken[tok], row)
			}
		}
		sort.Strings(tokens)

		for _, tok := range tokens {
			rows := byToken[tok]
			if len(rows) < 2 {
				continue
			}
			conflicts = append(conflicts, Conflict{
				Kind:    ConflictSameTime,
				Tokens:  []string{tok},
				Time:    t,
				Entries: rows,
				Message: fmt.Sprintf("%d runners from %s start at %s",
					len(rows), tok, t),
			})
		}
	}

	return conflicts
}

// sameLaneConflicts reports, per lane, every pair of rows within the
// configured window whose affiliation tokens overlap. With the
// course-restricted policy only rows belonging to the selected courses
// participate, so both rows of a reported pair are from selected courses.
func sameLaneConflicts(schedule []StartListEntry, cons Constraints) []Conflict {
	if cons.SameLanePolicy == SameLaneAllow {
		return nil
	}

	byLane := make(map[string][]StartListEntry)
	var lanes []string
	for _, row := range schedule {
		if cons.SameLanePolicy == SameLaneDisallowCourses &&
			!containsString(cons.SameLaneCourses, row.ClassName) {
			continue
		}
		if _, ok := byLane[row.LaneName]; !ok {
			lanes = append(lanes, row.LaneName)
		}
		byLane[row.LaneName] = append(byLane[row.LaneName], row)
	}
	sort.Strings(lanes)

	var conflicts []Conflict
	for _, lane := range lanes {
		rows := byLane[lane]
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].StartTime < rows[j].StartTime
		})

		for i := 0; i < len(rows); i++ {
			for j := i + 1; j < len(rows); j++ {
				if MinutesApart(rows[i].StartTime, rows[j].StartTime) >
					cons.SameLaneWindow {
					break // rows are time-sorted; later pairs only widen
				}
				overlap := tokenIntersection(
					SplitAffiliations(rows[i].Affiliation),
					SplitAffiliations(rows[j].Affiliation))
				if len(overlap) == 0 {
					continue
				}
				conflicts = append(conflicts, Conflict{
					Kind:     ConflictSameLane,
					Tokens:   overlap,
					Time:     rows[i].StartTime,
					LaneName: lane,
					AreaName: rows[i].AreaName,
					Entries:  []StartListEntry{rows[i], rows[j]},
					Message: fmt.Sprintf(
						"%s: #%d (%s) and #%d (%s) start within %d min on %s",
						strings.Join(overlap, ","),
						rows[i].StartNumber, rows[i].StartTime,
						rows[j].StartNumber, rows[j].StartTime,
						cons.SameLaneWindow, lane),
				})
			}
		}
	}

	return conflicts
}

func areaInScope(area string, scope []string) bool {
	if len(scope) == 0 {
		return true
	}
	return containsString(scope, area)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
