/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var anySpaceRe = regexp.MustCompile(`[\s\x{3000}]+`)

// NormalizeName canonicalizes a competitor name for matching against
// ranking data: all whitespace (including full-width U+3000) is removed and
// the result is lower-cased. JOY entry lists and JOA ranking pages disagree
// on spacing between family and given names, so matching must ignore it.
func NormalizeName(name string) string {
	return strings.ToLower(anySpaceRe.ReplaceAllString(name, ""))
}

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}
