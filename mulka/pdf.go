/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package mulka

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/mikeb26/joy2mulka/startlist"
)

// PDFOptions configures the tabular PDF startlist. gofpdf's core fonts only
// cover Latin text; point FontPath at a TTF with CJK coverage to render
// Japanese names and clubs.
type PDFOptions struct {
	Document

	// FontPath is an optional UTF-8 TTF to embed. Empty selects Helvetica.
	FontPath string
}

const pdfFontName = "startlist"

// WriteStartlistPDF renders the schedule as a one-table-per-class PDF,
// grouped by lane like the TeX outputs.
func WriteStartlistPDF(w io.Writer, schedule []startlist.StartListEntry,
	opts PDFOptions) error {

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	font := "Helvetica"
	if opts.FontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", opts.FontPath)
		font = pdfFontName
	}
	pdf.AddPage()

	pdf.SetFont(font, "", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s - %s", opts.CompetitionName,
		opts.Labels.Startlist), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	widths := []float64{15, 22, 55, 65, 33}
	headers := []string{opts.Labels.No, opts.Labels.Time, opts.Labels.Name,
		opts.Labels.Affiliation, opts.Labels.Card}

	lastLane := ""
	forEachLaneClass(schedule, func(lane, class string,
		rows []startlist.StartListEntry) {

		if lane != lastLane {
			pdf.SetFont(font, "", 12)
			pdf.CellFormat(0, 8, lane, "", 1, "L", false, 0, "")
			lastLane = lane
		}

		pdf.SetFont(font, "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("%s (%d %s)", class, len(rows),
			opts.Labels.Entries), "", 1, "L", false, 0, "")

		pdf.SetFont(font, "", 9)
		for i, header := range headers {
			pdf.CellFormat(widths[i], 6, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		for _, row := range rows {
			cells := []string{
				strconv.Itoa(row.StartNumber),
				row.StartTime.String(),
				row.Name,
				affiliationOrDash(row.Affiliation),
				cardOrRental(row, opts.Labels.Rental),
			}
			for i, cell := range cells {
				pdf.CellFormat(widths[i], 6, cell, "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	})

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering startlist pdf: %w", err)
	}
	return nil
}
