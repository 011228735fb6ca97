/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package startlist

import (
	"reflect"
	"testing"
)

func TestSplitAffiliations(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"single club", "ClubA", []string{"cluba"}},
		{"numbered sub-team", "ClubA1", []string{"cluba"}},
		{"slash separated", "ClubA/ClubB", []string{"cluba", "clubb"}},
		{"comma separated", "ClubA, ClubB", []string{"cluba", "clubb"}},
		{"ideographic comma", "京大OLC、同志社OLC", []string{"京大olc", "同志社olc"}},
		{"full-width comma", "ClubA，ClubB", []string{"cluba", "clubb"}},
		{"slash with spaces", "東大OLK / 早大OC", []string{"東大olk", "早大oc"}},
		{"full-width ascii", "ＣｌｕｂＡ１", []string{"cluba"}},
		{"hyphen placeholder", "-", nil},
		{"minus placeholder", "−", nil},
		{"dash placeholder", "―", nil},
		{"empty", "", nil},
		{"duplicate tokens", "ClubA1/ClubA2", []string{"cluba"}},
		{"digits only fragment", "123", nil},
		{"internal whitespace", "OLC  Tokyo　West", []string{"olc tokyo west"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SplitAffiliations(c.in)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("SplitAffiliations(%q) = %v; want %v", c.in, got, c.want)
			}
		})
	}
}

func TestNumberedSubTeamsNormalizeTogether(t *testing.T) {
	a := SplitAffiliations("ClubA1")
	b := SplitAffiliations("ClubA")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("ClubA1 -> %v, ClubA -> %v; want identical tokens", a, b)
	}
}

func TestHasAffiliationOverlap(t *testing.T) {
	cases := []struct {
		name string
		a, b Entry
		want bool
	}{
		{
			name: "same club",
			a:    Entry{Affiliation: "ClubA"},
			b:    Entry{Affiliation: "ClubA"},
			want: true,
		},
		{
			name: "numbered sub-teams of one club",
			a:    Entry{Affiliation: "ClubA1"},
			b:    Entry{Affiliation: "ClubA2"},
			want: true,
		},
		{
			name: "shared second club",
			a:    Entry{Affiliation: "ClubA/ClubB"},
			b:    Entry{Affiliation: "ClubB/ClubC"},
			want: true,
		},
		{
			name: "distinct clubs",
			a:    Entry{Affiliation: "ClubA"},
			b:    Entry{Affiliation: "ClubB"},
			want: false,
		},
		{
			name: "empty never overlaps",
			a:    Entry{Affiliation: ""},
			b:    Entry{Affiliation: ""},
			want: false,
		},
		{
			name: "placeholder never overlaps",
			a:    Entry{Affiliation: "-"},
			b:    Entry{Affiliation: "ClubA"},
			want: false,
		},
		{
			name: "pre-derived tokens take precedence",
			a:    Entry{Affiliation: "ignored", Affiliations: []string{"clubz"}},
			b:    Entry{Affiliation: "ClubZ9"},
			want: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := HasAffiliationOverlap(c.a, c.b); got != c.want {
				t.Errorf("overlap(%q, %q) = %v; want %v",
					c.a.Affiliation, c.b.Affiliation, got, c.want)
			}
		})
	}
}

func TestCountAdjacentConflicts(t *testing.T) {
	entries := []Entry{
		{Name: "a", Affiliation: "ClubA"},
		{Name: "b", Affiliation: "ClubA"},
		{Name: "c", Affiliation: "ClubB"},
		{Name: "d", Affiliation: "ClubB"},
		{Name: "e", Affiliation: "ClubA"},
	}
	if got := CountAdjacentConflicts(entries); got != 2 {
		t.Errorf("CountAdjacentConflicts = %d; want 2", got)
	}
	if got := CountAdjacentConflicts(nil); got != 0 {
		t.Errorf("CountAdjacentConflicts(nil) = %d; want 0", got)
	}
}
