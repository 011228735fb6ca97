/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package startlist

import (
	"math/rand"
)

// OrderAvoidingAffiliations permutes entries to minimize consecutive
// same-club starts. Up to maxAttempts rounds: seeded shuffle, then greedy
// repair, keeping the best-scoring result and stopping early on a
// conflict-free one. This is a bounded best-effort search, not an exact
// solver; maxAttempts is the only quality/latency lever, and cost is
// O(maxAttempts * n^2). With one entry or fewer, or maxAttempts <= 0, the
// input order is returned unchanged.
func OrderAvoidingAffiliations(entries []Entry, maxAttempts int,
	seed int64) []Entry {

	return orderAvoidingAffiliations(entries, maxAttempts,
		rand.New(rand.NewSource(seed)))
}

func orderAvoidingAffiliations(entries []Entry, maxAttempts int,
	rng *rand.Rand) []Entry {

	if len(entries) <= 1 || maxAttempts <= 0 {
		return append([]Entry{}, entries...)
	}

	best := append([]Entry{}, entries...)
	bestConflicts := CountAdjacentConflicts(entries)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		shuffled := append([]Entry{}, entries...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		result := greedyOrderByAffiliation(shuffled)
		conflicts := CountAdjacentConflicts(result)
		if conflicts < bestConflicts {
			best = result
			bestConflicts = conflicts
		}
		if conflicts == 0 {
			break
		}
	}

	return best
}

// greedyOrderByAffiliation repairs a permutation in place: starting from its
// head, repeatedly append the first remaining entry that does not share a
// club with the previously placed one, or the next entry unconditionally
// when every candidate conflicts. First-fit by scan order, no secondary
// tie-break.
func greedyOrderByAffiliation(entries []Entry) []Entry {
	if len(entries) <= 1 {
		return entries
	}

	remaining := append([]Entry{}, entries...)
	result := make([]Entry, 0, len(entries))
	result = append(result, remaining[0])
	remaining = remaining[1:]

	for len(remaining) > 0 {
		picked := -1
		for i := range remaining {
			if !HasAffiliationOverlap(result[len(result)-1], remaining[i]) {
				picked = i
				break
			}
		}
		if picked == -1 {
			// everything conflicts; accept one and move on
			picked = 0
		}
		result = append(result, remaining[picked])
		remaining = append(remaining[:picked], remaining[picked+1:]...)
	}

	return result
}

// ShuffleEntries returns a plain seeded permutation, used when a lane has
// affiliation separation disabled.
func ShuffleEntries(entries []Entry, seed int64) []Entry {
	return shuffleEntries(entries, rand.New(rand.NewSource(seed)))
}

func shuffleEntries(entries []Entry, rng *rand.Rand) []Entry {
	out := append([]Entry{}, entries...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
