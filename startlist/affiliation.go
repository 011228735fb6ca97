/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package startlist

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Affiliation text on JOY entries is free-form: several clubs separated by
// slashes or commas, numbered sub-teams of one club ("東工大OLC1",
// "東工大OLC2"), full-width characters, and placeholder dashes for "none".
// SplitAffiliations is the single source of truth for reducing that text to
// comparable tokens; the shuffler and the conflict detector both go through
// it so the two can never disagree on what "same club" means.

var (
	affSeparatorRe   = regexp.MustCompile(`[/,、，]`)
	trailingDigitsRe = regexp.MustCompile(`[0-9]+$`)
	innerSpaceRe     = regexp.MustCompile(`[\s\x{3000}]+`)
)

// placeholder dashes JOY uses for "no affiliation"
func isNoneMarker(s string) bool {
	switch s {
	case "", "-", "−", "―":
		return true
	}
	return false
}

// SplitAffiliations parses raw affiliation text into a normalized token set:
// split on separators, full-width folded, whitespace collapsed, trailing
// digits dropped (so "ClubA1" and "ClubA" compare equal), lower-cased.
// Placeholder markers and empty fragments yield no tokens.
func SplitAffiliations(raw string) []string {
	if isNoneMarker(strings.TrimSpace(raw)) {
		return nil
	}

	var tokens []string
	seen := make(map[string]bool)
	for _, part := range affSeparatorRe.Split(raw, -1) {
		tok := width.Narrow.String(part)
		tok = innerSpaceRe.ReplaceAllString(tok, " ")
		tok = strings.TrimSpace(tok)
		if isNoneMarker(tok) {
			continue
		}
		tok = strings.TrimSpace(trailingDigitsRe.ReplaceAllString(tok, ""))
		if tok == "" {
			continue
		}
		tok = strings.ToLower(tok)
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}

	return tokens
}

// HasAffiliationOverlap reports whether two entries share any affiliation
// token. An entry with no tokens never overlaps anything.
func HasAffiliationOverlap(a, b Entry) bool {
	return tokensOverlap(a.AffiliationTokens(), b.AffiliationTokens())
}

func tokensOverlap(a, b []string) bool {
	return len(tokenIntersection(a, b)) > 0
}

func tokenIntersection(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]bool, len(a))
	for _, tok := range a {
		set[tok] = true
	}
	var both []string
	for _, tok := range b {
		if set[tok] {
			both = append(both, tok)
		}
	}
	return both
}

// CountAdjacentConflicts counts consecutive pairs sharing an affiliation
// token; it is the score the ordering search minimizes.
func CountAdjacentConflicts(entries []Entry) int {
	conflicts := 0
	for i := 0; i+1 < len(entries); i++ {
		if HasAffiliationOverlap(entries[i], entries[i+1]) {
			conflicts++
		}
	}
	return conflicts
}
