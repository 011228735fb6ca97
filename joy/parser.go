/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package joy parses JapanO-Entry (JOY) entry-list exports. A JOY export is
// a CSV or TSV file with two header rows: the first names column groups
// (申込代表者, チーム(組), 1人目 .. 5人目), the second names the columns
// within each group. Each data row is one entry form carrying up to five
// competitors who share the row's class and affiliation.
package joy

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"

	"github.com/mikeb26/joy2mulka/startlist"
)

const maxParticipantsPerRow = 5

// dittoMark repeats the cell above it in hand-edited exports.
const dittoMark = "〃"

var participantGroupRe = regexp.MustCompile(`^([0-9０-９]+)人目`)

var cellSpaceRe = regexp.MustCompile(`[\s\x{3000}]+`)

// ParseEntryListFile reads and parses a JOY export from disk.
func ParseEntryListFile(path string) ([]startlist.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening entry list: %w", err)
	}
	defer f.Close()

	entries, err := ParseEntryList(f)
	if err != nil {
		return nil, fmt.Errorf("parsing entry list %s: %w", path, err)
	}
	return entries, nil
}

// ParseEntryList parses a JOY export. Encoding (UTF-8 with or without BOM,
// Shift_JIS, EUC-JP) and delimiter (tab or comma) are detected from the
// content.
func ParseEntryList(r io.Reader) ([]startlist.Entry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading entry list: %w", err)
	}

	text, err := decodeToUTF8(raw)
	if err != nil {
		return nil, err
	}

	rows, err := readRows(text)
	if err != nil {
		return nil, err
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("entry list needs 2 header rows plus data, got %d rows",
			len(rows))
	}

	cols := findColumns(rows[0], rows[1])
	if cols.class < 0 {
		return nil, fmt.Errorf("entry list is missing the クラス column")
	}

	var entries []startlist.Entry
	prevClass, prevAffiliation := "", ""
	for i, row := range rows[2:] {
		rowNum := i + 3
		if rowIsBlank(row) {
			continue
		}

		class := cellAt(row, cols.class)
		affiliation := cellAt(row, cols.affiliation)
		if class == dittoMark || (class == "" && affiliation == "") {
			class = prevClass
			if affiliation == "" {
				affiliation = prevAffiliation
			}
		}
		if affiliation == dittoMark {
			affiliation = prevAffiliation
		}
		prevClass, prevAffiliation = class, affiliation

		rentalCount, _ := strconv.Atoi(cellAt(row, cols.rentalCount))

		switch affiliation {
		case "-", "−", "―":
			affiliation = ""
		}
		tokens := startlist.SplitAffiliations(affiliation)

		for p := 0; p < maxParticipantsPerRow; p++ {
			pc := cols.participants[p]
			name := cellAt(row, pc.name)
			if name == "" {
				continue
			}

			cardNumber := cellAt(row, pc.cardNumber)
			entries = append(entries, startlist.Entry{
				ID:             fmt.Sprintf("r%dp%d", rowNum, p+1),
				ClassName:      class,
				Name:           name,
				NameKana:       cellAt(row, pc.nameKana),
				Affiliation:    affiliation,
				Affiliations:   tokens,
				CardNumber:     cardNumber,
				JOANumber:      cellAt(row, pc.joaNumber),
				Gender:         cellAt(row, pc.gender),
				IsRental:       rentalCount > 0 && cardNumber == "",
				ParticipantNum: p + 1,
			})
		}
	}

	return entries, nil
}

// decodeToUTF8 sniffs the export's encoding. UTF-8 (with or without BOM) is
// taken as-is; otherwise Shift_JIS and EUC-JP are tried and the cleaner
// decoding wins, Shift_JIS on a tie since that is what JOY emits.
func decodeToUTF8(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, []byte{0xef, 0xbb, 0xbf}) {
		return string(raw[3:]), nil
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	sjis, _, sjisErr := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	eucjp, _, eucErr := transform.Bytes(japanese.EUCJP.NewDecoder(), raw)
	if sjisErr != nil && eucErr != nil {
		return "", fmt.Errorf("entry list is not UTF-8, Shift_JIS, or EUC-JP")
	}

	if decodeBadness(eucjp, eucErr) < decodeBadness(sjis, sjisErr) {
		return string(eucjp), nil
	}
	return string(sjis), nil
}

// decodeBadness scores a candidate decoding: replacement runes weigh
// heaviest, then half-width katakana, which EUC-JP bytes misread as
// Shift_JIS turn into but JOY exports never legitimately contain.
func decodeBadness(decoded []byte, err error) int {
	if err != nil {
		return int(^uint(0) >> 1)
	}
	score := 0
	for _, r := range string(decoded) {
		if r == utf8.RuneError {
			score += 10
		} else if r >= 0xff61 && r <= 0xff9f {
			score++
		}
	}
	return score
}

// readRows splits the decoded export into cell rows, detecting the delimiter
// from the first line.
func readRows(text string) ([][]string, error) {
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}

	reader := csv.NewReader(strings.NewReader(text))
	if strings.Count(firstLine, "\t") > strings.Count(firstLine, ",") {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading entry list rows: %w", err)
	}
	return rows, nil
}

type participantColumns struct {
	name       int
	nameKana   int
	gender     int
	cardNumber int
	joaNumber  int
}

type columnIndices struct {
	class        int
	affiliation  int
	teamName     int
	rentalCount  int
	participants [maxParticipantsPerRow]participantColumns
}

// findColumns resolves field positions from the two header rows: the group
// row bounds the チーム(組) and N人目 sections, the column row names the
// fields inside each section.
func findColumns(groupRow, columnRow []string) columnIndices {
	cols := columnIndices{
		class: -1, affiliation: -1, teamName: -1, rentalCount: -1,
	}
	for p := range cols.participants {
		cols.participants[p] = participantColumns{
			name: -1, nameKana: -1, gender: -1, cardNumber: -1, joaNumber: -1,
		}
	}

	teamStart := -1
	participantStarts := make(map[int]int)
	for i, h := range groupRow {
		h = normalizeCell(h)
		if teamStart < 0 && (strings.Contains(h, "チーム") || strings.Contains(h, "組")) {
			teamStart = i
		}
		if m := participantGroupRe.FindStringSubmatch(h); m != nil {
			num, _ := strconv.Atoi(normalizeCell(m[1]))
			if _, ok := participantStarts[num]; !ok && num >= 1 &&
				num <= maxParticipantsPerRow {
				participantStarts[num] = i
			}
		}
	}

	firstParticipant := len(columnRow)
	for _, start := range participantStarts {
		if start < firstParticipant {
			firstParticipant = start
		}
	}

	if teamStart >= 0 {
		for i := teamStart; i < firstParticipant && i < len(columnRow); i++ {
			switch normalizeCell(columnRow[i]) {
			case "クラス":
				cols.class = i
			case "所属":
				cols.affiliation = i
			case "チーム名(氏名)":
				cols.teamName = i
			case "カードレンタル枚数":
				cols.rentalCount = i
			}
		}
	}

	for num, start := range participantStarts {
		end := len(columnRow)
		for _, other := range participantStarts {
			if other > start && other < end {
				end = other
			}
		}

		pc := &cols.participants[num-1]
		for i := start; i < end && i < len(columnRow); i++ {
			switch normalizeCell(columnRow[i]) {
			case "氏名1":
				pc.name = i
			case "氏名2":
				pc.nameKana = i
			case "性別":
				pc.gender = i
			case "カード番号":
				pc.cardNumber = i
			case "JOA競技者番号":
				pc.joaNumber = i
			}
		}
	}

	return cols
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return normalizeCell(row[idx])
}

// normalizeCell folds full-width ASCII to half-width and collapses runs of
// whitespace, matching how JOY renders hand-entered cells.
func normalizeCell(s string) string {
	s = width.Narrow.String(s)
	s = cellSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// GroupEntriesByClass buckets entries by class name, preserving first-seen
// order within each bucket.
func GroupEntriesByClass(entries []startlist.Entry) map[string][]startlist.Entry {
	groups := make(map[string][]startlist.Entry)
	for _, e := range entries {
		groups[e.ClassName] = append(groups[e.ClassName], e)
	}
	return groups
}

// UniqueClasses returns the distinct non-empty class names in natural order.
func UniqueClasses(entries []startlist.Entry) []string {
	seen := make(map[string]bool)
	var classes []string
	for _, e := range entries {
		if e.ClassName == "" || seen[e.ClassName] {
			continue
		}
		seen[e.ClassName] = true
		classes = append(classes, e.ClassName)
	}
	sort.Sort(startlist.ClassSorter(classes))
	return classes
}
