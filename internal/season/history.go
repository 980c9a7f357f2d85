package season

import "sort"

// BuildHistory groups the long-form records by game and emits an ordered
// per-game result list. Within a game, players appear in rank order; tied
// players keep their original column order among themselves. The winner is
// the first entry, so on a tie for first the leftmost column wins.
func BuildHistory(records []PlayerGameRecord) []HistoryEntry {
	if len(records) == 0 {
		return []HistoryEntry{}
	}

	grouped := make(map[int][]PlayerGameRecord)
	for _, rec := range records {
		grouped[rec.GameIndex] = append(grouped[rec.GameIndex], rec)
	}

	indexes := make([]int, 0, len(grouped))
	for idx := range grouped {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	history := make([]HistoryEntry, 0, len(indexes))
	for _, idx := range indexes {
		group := grouped[idx]
		sort.SliceStable(group, func(a, b int) bool {
			if group[a].Rank != group[b].Rank {
				return group[a].Rank < group[b].Rank
			}
			return group[a].segmentOrder < group[b].segmentOrder
		})

		entry := HistoryEntry{
			GameIndex: idx,
			Date:      formatDate(group[0].Date),
			Players:   make([]HistoryPlayer, 0, len(group)),
		}
		for _, rec := range group {
			entry.Players = append(entry.Players, HistoryPlayer{
				Name:  rec.Player,
				Score: rec.Score,
				Rank:  rec.Rank,
			})
			entry.TotalPoints += rec.Score
		}
		entry.Winner = entry.Players[0].Name
		history = append(history, entry)
	}

	return history
}
