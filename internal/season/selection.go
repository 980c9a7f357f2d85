package season

import (
	"math"
	"sort"
)

// The per-row selection strategies below decide which score columns hold a
// game's real entries when a sheet carries more player segments than seats.
// Each strategy is a pure function over (row values, already-selected set)
// returning candidate segment indexes in preference order; the reconstructor
// applies them in sequence until the seats are filled.

// rowValues holds one raw row's coerced numeric values, parallel to the
// segment list.
type rowValues struct {
	scores []Number
	ranks  []Number
}

// selectByRankHint returns segments carrying an explicit rank annotation in
// [1, activePlayers], ordered by (rank asc, |score| desc, column order asc).
// Explicit rank hints outrank any inference.
func selectByRankHint(row rowValues, activePlayers int, selected []bool) []int {
	type candidate struct {
		index int
		rank  float64
		mag   float64
	}

	var candidates []candidate
	for i := range row.ranks {
		if selected[i] || !row.ranks[i].Valid {
			continue
		}
		rank := row.ranks[i].Float64
		if rank < 1 || rank > float64(activePlayers) {
			continue
		}
		// A missing score sorts behind any present one at the same rank.
		mag := -1.0
		if row.scores[i].Valid {
			mag = math.Abs(row.scores[i].Float64)
		}
		candidates = append(candidates, candidate{index: i, rank: rank, mag: mag})
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].rank != candidates[b].rank {
			return candidates[a].rank < candidates[b].rank
		}
		if candidates[a].mag != candidates[b].mag {
			return candidates[a].mag > candidates[b].mag
		}
		return candidates[a].index < candidates[b].index
	})

	out := make([]int, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.index)
	}
	return out
}

// selectByMagnitude returns the not-yet-selected segments with a present
// score, ordered by (|score| desc, column order asc). When rank hints are
// absent the largest-magnitude entries are assumed to be the real ones.
func selectByMagnitude(row rowValues, selected []bool) []int {
	var out []int
	for i := range row.scores {
		if !selected[i] && row.scores[i].Valid {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		ma := math.Abs(row.scores[out[a]].Float64)
		mb := math.Abs(row.scores[out[b]].Float64)
		if ma != mb {
			return ma > mb
		}
		return out[a] < out[b]
	})
	return out
}

// selectPositional returns the remaining segments with a present score in
// original column order, the last-resort fill.
func selectPositional(row rowValues, selected []bool) []int {
	var out []int
	for i := range row.scores {
		if !selected[i] && row.scores[i].Valid {
			out = append(out, i)
		}
	}
	return out
}

// selectSeats composes the strategies, filling up to activePlayers seats.
// It returns the selected-set as a parallel bool slice.
func selectSeats(row rowValues, activePlayers int) []bool {
	selected := make([]bool, len(row.scores))
	count := 0

	take := func(candidates []int) {
		for _, idx := range candidates {
			if count == activePlayers {
				return
			}
			if !selected[idx] {
				selected[idx] = true
				count++
			}
		}
	}

	take(selectByRankHint(row, activePlayers, selected))
	if count < activePlayers {
		take(selectByMagnitude(row, selected))
	}
	if count < activePlayers {
		take(selectPositional(row, selected))
	}
	return selected
}
