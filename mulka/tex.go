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

// Document carries the heading text shared by the printable outputs.
type Document struct {
	// CompetitionName appears in the running page header.
	CompetitionName string

	// Title heads the first page, e.g. the event day or output folder name.
	Title string

	Labels Labels
}

// WritePublicStartlistTeX writes the public startlist as a LuaLaTeX
// (ltjsarticle) document, one section per lane, one longtable per class.
func WritePublicStartlistTeX(w io.Writer, schedule []startlist.StartListEntry,
	doc Document) error {

	header := fmt.Sprintf("%s - %s", escapeLaTeX(doc.CompetitionName),
		doc.Labels.Startlist)
	title := strings.TrimSpace(fmt.Sprintf("%s %s", escapeLaTeX(doc.Title),
		doc.Labels.Startlist))

	var sb strings.Builder
	writeTeXPreamble(&sb, header, title, false)

	lastLane := ""
	forEachLaneClass(schedule, func(lane string, class string,
		rows []startlist.StartListEntry) {

		if lane != lastLane {
			fmt.Fprintf(&sb, "\\section*{%s}\n\n", escapeLaTeX(lane))
			lastLane = lane
		}
		fmt.Fprintf(&sb, "\\subsection*{%s (%d %s)}\n\n",
			escapeLaTeX(class), len(rows), doc.Labels.Entries)

		sb.WriteString("\\begin{longtable}{rllll}\n\\toprule\n")
		fmt.Fprintf(&sb, "%s & %s & %s & %s & %s \\\\\n",
			doc.Labels.No, doc.Labels.Time, doc.Labels.Name,
			doc.Labels.Affiliation, doc.Labels.Card)
		sb.WriteString("\\midrule\n\\endhead\n")

		for _, row := range rows {
			fmt.Fprintf(&sb, "%d & %s & %s & %s & %s \\\\\n",
				row.StartNumber, row.StartTime,
				escapeLaTeX(row.Name),
				escapeLaTeX(affiliationOrDash(row.Affiliation)),
				escapeLaTeX(cardOrRental(row, doc.Labels.Rental)))
		}

		sb.WriteString("\\bottomrule\n\\end{longtable}\n\n")
	})

	sb.WriteString("\\end{document}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteRoleStartlistTeX writes the staff startlist with furigana readings
// rendered via luatexja-ruby.
func WriteRoleStartlistTeX(w io.Writer, schedule []startlist.StartListEntry,
	doc Document) error {

	header := fmt.Sprintf("%s - 役員用スタートリスト",
		escapeLaTeX(doc.CompetitionName))
	title := strings.TrimSpace(fmt.Sprintf("%s 役員用スタートリスト",
		escapeLaTeX(doc.Title)))

	var sb strings.Builder
	writeTeXPreamble(&sb, header, title, true)

	lastLane := ""
	forEachLaneClass(schedule, func(lane string, class string,
		rows []startlist.StartListEntry) {

		if lane != lastLane {
			fmt.Fprintf(&sb, "\\section*{%s}\n\n", escapeLaTeX(lane))
			lastLane = lane
		}
		fmt.Fprintf(&sb, "\\subsection*{%s (%d名)}\n\n",
			escapeLaTeX(class), len(rows))

		sb.WriteString("\\begin{longtable}{rlp{6cm}ll}\n\\toprule\n")
		sb.WriteString("No. & 時刻 & 氏名 & 所属 & カード \\\\\n")
		sb.WriteString("\\midrule\n\\endhead\n")

		for _, row := range rows {
			name := escapeLaTeX(row.Name)
			if row.NameKana != "" && row.Name != "" {
				name = fmt.Sprintf("\\ruby{%s}{%s}", escapeLaTeX(row.Name),
					escapeLaTeX(row.NameKana))
			}
			fmt.Fprintf(&sb, "%d & %s & %s & %s & %s \\\\\n",
				row.StartNumber, row.StartTime, name,
				escapeLaTeX(affiliationOrDash(row.Affiliation)),
				escapeLaTeX(cardOrRental(row, startlist.CardNoteRental)))
		}

		sb.WriteString("\\bottomrule\n\\end{longtable}\n\n")
	})

	sb.WriteString("\\end{document}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTeXPreamble(sb *strings.Builder, header, title string, ruby bool) {
	sb.WriteString("\\documentclass[a4paper,10pt]{ltjsarticle}\n")
	sb.WriteString("\\usepackage{geometry}\n")
	sb.WriteString("\\usepackage{longtable}\n")
	sb.WriteString("\\usepackage{booktabs}\n")
	sb.WriteString("\\usepackage{fancyhdr}\n")
	if ruby {
		sb.WriteString("\\usepackage{luatexja-ruby}\n")
	}
	sb.WriteString("\n\\geometry{margin=2cm}\n")
	sb.WriteString("\\pagestyle{fancy}\n\\fancyhf{}\n")
	fmt.Fprintf(sb, "\\fancyhead[C]{%s}\n", header)
	sb.WriteString("\\fancyfoot[C]{\\thepage}\n")
	sb.WriteString("\\setlength{\\headheight}{15pt}\n")
	sb.WriteString("\\begin{document}\n\n")
	fmt.Fprintf(sb, "\\section*{%s}\n\n", title)
}

// forEachLaneClass visits the schedule grouped by lane (natural order), then
// by class within the lane, rows ordered by start number.
func forEachLaneClass(schedule []startlist.StartListEntry,
	visit func(lane, class string, rows []startlist.StartListEntry)) {

	type laneClass struct{ lane, class string }
	groups := make(map[laneClass][]startlist.StartListEntry)
	classesPerLane := make(map[string][]string)
	var lanes []string
	for _, row := range schedule {
		lane := row.LaneName
		if lane == "" {
			lane = "Other"
		}
		key := laneClass{lane, row.ClassName}
		if _, ok := groups[key]; !ok {
			if _, seen := classesPerLane[lane]; !seen {
				lanes = append(lanes, lane)
			}
			classesPerLane[lane] = append(classesPerLane[lane], row.ClassName)
		}
		groups[key] = append(groups[key], row)
	}
	sort.Sort(startlist.ClassSorter(lanes))

	for _, lane := range lanes {
		classes := classesPerLane[lane]
		sort.Sort(startlist.ClassSorter(classes))
		for _, class := range classes {
			rows := groups[laneClass{lane, class}]
			sort.SliceStable(rows, func(i, j int) bool {
				return rows[i].StartNumber < rows[j].StartNumber
			})
			visit(lane, class, rows)
		}
	}
}

func cardOrRental(row startlist.StartListEntry, rentalLabel string) string {
	if row.IsRental || row.CardNumber == "" {
		return rentalLabel
	}
	return row.CardNumber
}

var latexReplacer = strings.NewReplacer(
	"\\", "\\textbackslash{}",
	"&", "\\&",
	"%", "\\%",
	"$", "\\$",
	"#", "\\#",
	"_", "\\_",
	"{", "\\{",
	"}", "\\}",
	"~", "\\textasciitilde{}",
	"^", "\\textasciicircum{}",
)

func escapeLaTeX(s string) string {
	return latexReplacer.Replace(s)
}
