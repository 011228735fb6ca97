/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package mulka

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mikeb26/joy2mulka/startlist"
)

// WriteSummaryReport writes a plain-text overview of the schedule: totals,
// card rental counts, and a per-class breakdown.
func WriteSummaryReport(w io.Writer, schedule []startlist.StartListEntry) error {
	byClass := make(map[string][]startlist.StartListEntry)
	var classes []string
	rentalTotal := 0
	for _, row := range schedule {
		if _, ok := byClass[row.ClassName]; !ok {
			classes = append(classes, row.ClassName)
		}
		byClass[row.ClassName] = append(byClass[row.ClassName], row)
		if row.IsRental || row.CardNumber == "" {
			rentalTotal++
		}
	}
	sort.Sort(startlist.ClassSorter(classes))

	var sb strings.Builder
	sb.WriteString("Startlist Summary Report\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&sb, "Total entries: %d\n", len(schedule))
	fmt.Fprintf(&sb, "Rental cards: %d\n", rentalTotal)
	fmt.Fprintf(&sb, "Own cards: %d\n\n", len(schedule)-rentalTotal)

	sb.WriteString("Class breakdown:\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, class := range classes {
		rows := byClass[class]
		rental := 0
		for _, row := range rows {
			if row.IsRental || row.CardNumber == "" {
				rental++
			}
		}
		fmt.Fprintf(&sb, "%-15s %4d entries", class, len(rows))
		if rental > 0 {
			fmt.Fprintf(&sb, " (%d rental)", rental)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("-", 40) + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
