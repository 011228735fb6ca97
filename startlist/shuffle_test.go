/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package startlist

import (
	"reflect"
	"sort"
	"testing"
)

func clubEntries(clubs ...string) []Entry {
	entries := make([]Entry, len(clubs))
	for i, club := range clubs {
		entries[i] = Entry{
			ID:          string(rune('a' + i)),
			Name:        string(rune('a' + i)),
			Affiliation: club,
		}
	}
	return entries
}

func TestOrderAvoidingAffiliationsSeparable(t *testing.T) {
	entries := clubEntries("ClubA", "ClubA", "ClubB", "ClubB")

	got := OrderAvoidingAffiliations(entries, 100, 1)
	if conflicts := CountAdjacentConflicts(got); conflicts != 0 {
		t.Errorf("separable input left %d adjacent conflicts: %v",
			conflicts, entryIDs(got))
	}
}

func TestOrderAvoidingAffiliationsFloor(t *testing.T) {
	// every entry is the same club; n-1 adjacent conflicts are unavoidable
	entries := clubEntries("ClubX", "ClubX", "ClubX", "ClubX", "ClubX", "ClubX")

	got := OrderAvoidingAffiliations(entries, 50, 7)
	if conflicts := CountAdjacentConflicts(got); conflicts != len(entries)-1 {
		t.Errorf("got %d conflicts; want floor %d", conflicts, len(entries)-1)
	}
}

func TestOrderAvoidingAffiliationsPermutation(t *testing.T) {
	entries := clubEntries("ClubA", "ClubA", "ClubA", "ClubB", "ClubC",
		"ClubC", "ClubD")

	got := OrderAvoidingAffiliations(entries, 200, 3)
	if len(got) != len(entries) {
		t.Fatalf("got %d entries; want %d", len(got), len(entries))
	}

	want := entryIDs(entries)
	sort.Strings(want)
	ids := entryIDs(got)
	sort.Strings(ids)
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("result is not a permutation of the input: %v", entryIDs(got))
	}
}

func TestOrderAvoidingAffiliationsDeterministic(t *testing.T) {
	entries := clubEntries("ClubA", "ClubB", "ClubA", "ClubC", "ClubB",
		"ClubA", "ClubD", "ClubC")

	first := OrderAvoidingAffiliations(entries, 100, 42)
	second := OrderAvoidingAffiliations(entries, 100, 42)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different orders:\n%v\n%v",
			entryIDs(first), entryIDs(second))
	}
}

func TestOrderAvoidingAffiliationsNoAttempts(t *testing.T) {
	entries := clubEntries("ClubA", "ClubA", "ClubB")

	got := OrderAvoidingAffiliations(entries, 0, 1)
	if !reflect.DeepEqual(entryIDs(got), entryIDs(entries)) {
		t.Errorf("maxAttempts=0 should keep input order; got %v", entryIDs(got))
	}
}

func TestOrderAvoidingAffiliationsSmallInputs(t *testing.T) {
	if got := OrderAvoidingAffiliations(nil, 10, 1); len(got) != 0 {
		t.Errorf("nil input: got %v", got)
	}
	one := clubEntries("ClubA")
	if got := OrderAvoidingAffiliations(one, 10, 1); !reflect.DeepEqual(got, one) {
		t.Errorf("single entry: got %v", got)
	}
}

func TestGreedyOrderByAffiliation(t *testing.T) {
	// head stays; the second ClubA is deferred past the ClubB entries
	entries := clubEntries("ClubA", "ClubA", "ClubB", "ClubB")

	got := greedyOrderByAffiliation(append([]Entry{}, entries...))
	if got[0].ID != "a" {
		t.Errorf("head = %s; want a", got[0].ID)
	}
	if conflicts := CountAdjacentConflicts(got); conflicts != 0 {
		t.Errorf("greedy repair left %d conflicts: %v", conflicts,
			entryIDs(got))
	}
}

func TestShuffleEntries(t *testing.T) {
	entries := clubEntries("ClubA", "ClubB", "ClubC", "ClubD", "ClubE")

	first := ShuffleEntries(entries, 5)
	second := ShuffleEntries(entries, 5)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different shuffles")
	}

	want := entryIDs(entries)
	sort.Strings(want)
	ids := entryIDs(first)
	sort.Strings(ids)
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("shuffle is not a permutation: %v", entryIDs(first))
	}

	// input must not be mutated
	if entries[0].ID != "a" || entries[4].ID != "e" {
		t.Errorf("input slice was mutated: %v", entryIDs(entries))
	}
}
