/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package mulka renders finished start schedules into the formats the Mulka
// event software and event staff consume: Mulka import CSVs, staff and
// public startlists (CSV, LaTeX, PDF), and per-class summaries.
package mulka

// Labels carries the column and heading strings for one output language.
type Labels struct {
	Startlist   string
	Entries     string
	No          string
	Time        string
	Name        string
	Affiliation string
	Card        string
	Rental      string
	Lane        string
}

var labelsEN = Labels{
	Startlist:   "Startlist",
	Entries:     "entries",
	No:          "No.",
	Time:        "Time",
	Name:        "Name",
	Affiliation: "Affiliation",
	Card:        "Card",
	Rental:      "(rental)",
	Lane:        "Lane",
}

var labelsJA = Labels{
	Startlist:   "スタートリスト",
	Entries:     "名",
	No:          "No.",
	Time:        "時刻",
	Name:        "氏名",
	Affiliation: "所属",
	Card:        "カード",
	Rental:      "レンタル",
	Lane:        "レーン",
}

// LabelsFor selects the label set for a language code; anything but "ja"
// falls back to English.
func LabelsFor(language string) Labels {
	if language == "ja" {
		return labelsJA
	}
	return labelsEN
}
