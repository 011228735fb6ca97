/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package startlist

import (
	"math/rand"
	"sort"

	"github.com/mikeb26/joy2mulka/internal"
)

// SplitByRank divides a class's entries into splitCount balanced groups.
// Ranked entries (found in ranks by normalized name) are sorted ascending by
// rank and dealt round-robin: the i-th best runner lands in group
// (i-1) mod splitCount. This is a literal round robin, not a snake
// distribution; the observed JOY behavior is kept as-is. Unranked entries
// are shuffled with the seeded generator and each placed into the currently
// smallest group (ties to the lowest group index), so group sizes differ by
// at most one. splitCount <= 1 returns a single group; the result always
// contains exactly the input entries.
func SplitByRank(entries []Entry, splitCount int, ranks map[string]int,
	seed int64) [][]Entry {

	return splitByRank(entries, splitCount, ranks,
		rand.New(rand.NewSource(seed)))
}

func splitByRank(entries []Entry, splitCount int, ranks map[string]int,
	rng *rand.Rand) [][]Entry {

	if splitCount <= 1 {
		return [][]Entry{append([]Entry{}, entries...)}
	}

	type rankedEntry struct {
		rank  int
		entry Entry
	}
	var ranked []rankedEntry
	var unranked []Entry
	for _, e := range entries {
		if r, ok := LookupEntryRank(e, ranks); ok {
			ranked = append(ranked, rankedEntry{rank: r, entry: e})
		} else {
			unranked = append(unranked, e)
		}
	}

	// entry-list order breaks rank ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].rank < ranked[j].rank
	})

	groups := make([][]Entry, splitCount)
	for i := range groups {
		groups[i] = []Entry{}
	}
	for i, re := range ranked {
		groups[i%splitCount] = append(groups[i%splitCount], re.entry)
	}

	rng.Shuffle(len(unranked), func(i, j int) {
		unranked[i], unranked[j] = unranked[j], unranked[i]
	})
	for _, e := range unranked {
		minIdx := 0
		for i := 1; i < splitCount; i++ {
			if len(groups[i]) < len(groups[minIdx]) {
				minIdx = i
			}
		}
		groups[minIdx] = append(groups[minIdx], e)
	}

	return groups
}

// LookupEntryRank finds an entry's rank by its normalized primary name,
// falling back to the phonetic name. Absence means "unranked".
func LookupEntryRank(e Entry, ranks map[string]int) (int, bool) {
	if len(ranks) == 0 {
		return 0, false
	}
	if r, ok := ranks[internal.NormalizeName(e.Name)]; ok {
		return r, true
	}
	if e.NameKana != "" {
		if r, ok := ranks[internal.NormalizeName(e.NameKana)]; ok {
			return r, true
		}
	}
	return 0, false
}
