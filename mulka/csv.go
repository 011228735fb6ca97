/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package mulka

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mikeb26/joy2mulka/startlist"
)

// utf8BOM lets Excel and Mulka recognize the files as UTF-8.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// WriteStartlistCSV writes the Mulka-compatible startlist with the column
// set Mulka's entry import expects.
func WriteStartlistCSV(w io.Writer, schedule []startlist.StartListEntry) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing startlist csv: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"クラス", "スタートナンバー", "氏名１", "氏名2", "所属",
		"スタート時刻", "カード番号", "カード備考", "競技者登録番号"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing startlist csv header: %w", err)
	}

	for _, row := range schedule {
		rec := []string{
			row.ClassName,
			strconv.Itoa(row.StartNumber),
			row.Name,
			row.NameKana,
			affiliationOrDash(row.Affiliation),
			row.StartTime.String(),
			row.CardNumber,
			row.CardNote,
			row.JOANumber,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing startlist csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRoleStartlistCSV writes the staff startlist with check-in and remark
// columns left blank for hand annotation.
func WriteRoleStartlistCSV(w io.Writer, schedule []startlist.StartListEntry) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing role startlist csv: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"クラス", "スタートナンバー", "氏名", "所属",
		"スタート時刻", "カード番号", "チェックイン", "備考"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing role startlist csv header: %w", err)
	}

	for _, row := range schedule {
		remark := ""
		if row.IsRental {
			remark = startlist.CardNoteRental
		}
		rec := []string{
			row.ClassName,
			strconv.Itoa(row.StartNumber),
			row.Name,
			affiliationOrDash(row.Affiliation),
			row.StartTime.String(),
			row.CardNumber,
			"",
			remark,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing role startlist csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMulkaImportCSV writes the semicolon-delimited variant some Mulka
// installs import directly. Semicolons inside fields become commas.
func WriteMulkaImportCSV(w io.Writer, schedule []startlist.StartListEntry) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing mulka import csv: %w", err)
	}
	if _, err := io.WriteString(w,
		"Class;StartNo;Name;Club;CardNo;StartTime\n"); err != nil {
		return fmt.Errorf("writing mulka import csv header: %w", err)
	}

	for _, row := range schedule {
		line := fmt.Sprintf("%s;%d;%s;%s;%s;%s\n",
			row.ClassName,
			row.StartNumber,
			strings.ReplaceAll(row.Name, ";", ","),
			strings.ReplaceAll(row.Affiliation, ";", ","),
			row.CardNumber,
			row.StartTime)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("writing mulka import csv row: %w", err)
		}
	}

	return nil
}

// WriteClassSummaryCSV writes per-class competitor counts plus a 合計 total
// row.
func WriteClassSummaryCSV(w io.Writer, schedule []startlist.StartListEntry) error {
	byClass := make(map[string]int)
	var classes []string
	for _, row := range schedule {
		if row.ClassName == "" {
			continue
		}
		if _, ok := byClass[row.ClassName]; !ok {
			classes = append(classes, row.ClassName)
		}
		byClass[row.ClassName]++
	}
	sort.Sort(startlist.ClassSorter(classes))

	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing class summary csv: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"クラス", "人数"}); err != nil {
		return fmt.Errorf("writing class summary csv header: %w", err)
	}

	total := 0
	for _, class := range classes {
		total += byClass[class]
		if err := cw.Write([]string{class, strconv.Itoa(byClass[class])}); err != nil {
			return fmt.Errorf("writing class summary csv row: %w", err)
		}
	}
	if err := cw.Write([]string{"合計", strconv.Itoa(total)}); err != nil {
		return fmt.Errorf("writing class summary csv total: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func affiliationOrDash(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "-"
	}
	return raw
}
