package season

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// fourGames builds records for two games between the same four players.
func fourGames() []PlayerGameRecord {
	return []PlayerGameRecord{
		{GameIndex: 0, Player: "Alice", Date: day(0), Score: 20, Rank: 1, segmentOrder: 0},
		{GameIndex: 0, Player: "Bob", Date: day(0), Score: -5, Rank: 3, segmentOrder: 1},
		{GameIndex: 0, Player: "Carol", Date: day(0), Score: 10, Rank: 2, segmentOrder: 2},
		{GameIndex: 0, Player: "Dave", Date: day(0), Score: -25, Rank: 4, segmentOrder: 3},
		{GameIndex: 1, Player: "Alice", Date: day(1), Score: -10, Rank: 3, segmentOrder: 0},
		{GameIndex: 1, Player: "Bob", Date: day(1), Score: 30, Rank: 1, segmentOrder: 1},
		{GameIndex: 1, Player: "Carol", Date: day(1), Score: -30, Rank: 4, segmentOrder: 2},
		{GameIndex: 1, Player: "Dave", Date: day(1), Score: 10, Rank: 2, segmentOrder: 3},
	}
}

func TestAggregateStats(t *testing.T) {
	stats := AggregateStats(fourGames())
	require.Len(t, stats, 4)

	// Final order by total score descending.
	names := []string{stats[0].Name, stats[1].Name, stats[2].Name, stats[3].Name}
	assert.Equal(t, []string{"Bob", "Alice", "Dave", "Carol"}, names)

	bob := stats[0]
	assert.Equal(t, 1, bob.OrdinalRank)
	assert.Equal(t, 2, bob.GamesPlayed)
	assert.Equal(t, 25.0, bob.TotalScore)
	assert.Equal(t, 12.5, bob.AverageScore)
	assert.Equal(t, 2.0, bob.AverageRank)
	assert.Equal(t, 30.0, bob.BestScore)
	assert.Equal(t, -5.0, bob.WorstScore)
	assert.Equal(t, RankCounts{First: 1, Second: 0, Third: 1, Fourth: 0}, bob.RankCounts)
	assert.Equal(t, 0.5, bob.WinRate)
	assert.Equal(t, 0.5, bob.TopRate)
	assert.Equal(t, 0.0, bob.LastRate)

	carol := stats[3]
	assert.Equal(t, 4, carol.OrdinalRank)
	assert.Equal(t, -20.0, carol.TotalScore)
	assert.Equal(t, 0.5, carol.TopRate)
	assert.Equal(t, 0.5, carol.LastRate)
}

func TestAggregateStatsRateRoundTrip(t *testing.T) {
	stats := AggregateStats(fourGames())

	for _, s := range stats {
		games := float64(s.GamesPlayed)
		assert.InDelta(t, float64(s.RankCounts.First), s.WinRate*games, 1e-9, s.Name)
		assert.InDelta(t, float64(s.RankCounts.First+s.RankCounts.Second), s.TopRate*games, 1e-9, s.Name)
		assert.InDelta(t, float64(s.RankCounts.Fourth), s.LastRate*games, 1e-9, s.Name)

		// Rates times games are whole numbers.
		assert.Equal(t, math.Round(s.WinRate*games), s.WinRate*games, s.Name)
	}
}

func TestAggregateStatsOrdinalTies(t *testing.T) {
	records := []PlayerGameRecord{
		{GameIndex: 0, Player: "Alice", Score: 10, Rank: 1},
		{GameIndex: 0, Player: "Bob", Score: 10, Rank: 1},
		{GameIndex: 0, Player: "Carol", Score: -8, Rank: 3},
		{GameIndex: 0, Player: "Dave", Score: -12, Rank: 4},
	}

	stats := AggregateStats(records)
	require.Len(t, stats, 4)

	// Dense ordinal: the tied leaders share 1, the next total gets 2.
	assert.Equal(t, 1, stats[0].OrdinalRank)
	assert.Equal(t, 1, stats[1].OrdinalRank)
	assert.Equal(t, 2, stats[2].OrdinalRank)
	assert.Equal(t, 3, stats[3].OrdinalRank)

	// Equal totals and ordinals with equal average rank keep name order.
	assert.Equal(t, "Alice", stats[0].Name)
	assert.Equal(t, "Bob", stats[1].Name)
}

func TestAggregateStatsTieBrokenByAverageRank(t *testing.T) {
	// Same totals, different average ranks: the higher (worse) average
	// rank sorts first under the published composite ordering.
	records := []PlayerGameRecord{
		{GameIndex: 0, Player: "Alice", Score: 10, Rank: 1},
		{GameIndex: 0, Player: "Bob", Score: 5, Rank: 2},
		{GameIndex: 1, Player: "Alice", Score: 0, Rank: 4},
		{GameIndex: 1, Player: "Bob", Score: 5, Rank: 2},
	}

	stats := AggregateStats(records)
	require.Len(t, stats, 2)
	assert.Equal(t, "Alice", stats[0].Name, "average rank 2.5 sorts before 2.0")
	assert.Equal(t, "Bob", stats[1].Name)
	assert.Equal(t, stats[0].OrdinalRank, stats[1].OrdinalRank)
}

func TestAggregateStatsEmpty(t *testing.T) {
	assert.Empty(t, AggregateStats(nil))
}
