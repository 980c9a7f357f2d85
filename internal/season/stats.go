package season

import "sort"

// AggregateStats computes each player's season aggregate from the long-form
// records and returns the players in final leaderboard order.
//
// The ordering is total_score desc, then ordinal desc, then average_rank
// desc. The ordinal key is itself derived from total_score, which makes the
// second key nearly redundant, but the composite is part of the published
// payload contract and is kept as-is.
func AggregateStats(records []PlayerGameRecord) []PlayerStats {
	type accumulator struct {
		total      float64
		games      int
		rankSum    int
		best       float64
		worst      float64
		rankCounts [5]int
	}

	acc := make(map[string]*accumulator)
	for _, rec := range records {
		a, ok := acc[rec.Player]
		if !ok {
			a = &accumulator{best: rec.Score, worst: rec.Score}
			acc[rec.Player] = a
		}
		a.total += rec.Score
		a.games++
		a.rankSum += rec.Rank
		if rec.Score > a.best {
			a.best = rec.Score
		}
		if rec.Score < a.worst {
			a.worst = rec.Score
		}
		if rec.Rank >= 1 && rec.Rank <= 4 {
			a.rankCounts[rec.Rank]++
		}
	}

	names := make([]string, 0, len(acc))
	for name := range acc {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]PlayerStats, 0, len(names))
	for _, name := range names {
		a := acc[name]
		s := PlayerStats{
			Name:        name,
			GamesPlayed: a.games,
			TotalScore:  a.total,
			BestScore:   a.best,
			WorstScore:  a.worst,
			RankCounts: RankCounts{
				First:  a.rankCounts[1],
				Second: a.rankCounts[2],
				Third:  a.rankCounts[3],
				Fourth: a.rankCounts[4],
			},
		}
		if a.games > 0 {
			games := float64(a.games)
			s.AverageScore = a.total / games
			s.AverageRank = float64(a.rankSum) / games
			s.WinRate = float64(a.rankCounts[1]) / games
			s.TopRate = float64(a.rankCounts[1]+a.rankCounts[2]) / games
			s.LastRate = float64(a.rankCounts[4]) / games
		}
		stats = append(stats, s)
	}

	assignOrdinals(stats)

	sort.SliceStable(stats, func(a, b int) bool {
		if stats[a].TotalScore != stats[b].TotalScore {
			return stats[a].TotalScore > stats[b].TotalScore
		}
		if stats[a].OrdinalRank != stats[b].OrdinalRank {
			return stats[a].OrdinalRank > stats[b].OrdinalRank
		}
		return stats[a].AverageRank > stats[b].AverageRank
	})

	return stats
}

// assignOrdinals sets each player's ordinal as a dense ranking by total
// score descending; tied totals share the same ordinal.
func assignOrdinals(stats []PlayerStats) {
	totals := make([]float64, 0, len(stats))
	seen := make(map[float64]bool, len(stats))
	for _, s := range stats {
		if !seen[s.TotalScore] {
			seen[s.TotalScore] = true
			totals = append(totals, s.TotalScore)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(totals)))

	ordinal := make(map[float64]int, len(totals))
	for i, total := range totals {
		ordinal[total] = i + 1
	}
	for i := range stats {
		stats[i].OrdinalRank = ordinal[stats[i].TotalScore]
	}
}
