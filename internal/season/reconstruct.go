package season

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	apperrors "mjstats/internal/errors"
)

// Reconstructor turns a raw score sheet into clean game rows and long-form
// player records. It tolerates missing dates, unparsable cells, placeholder
// rows, and sheets that carry more player segments than seats.
type Reconstructor struct {
	logger *slog.Logger
	cfg    Config
}

// NewReconstructor creates a reconstructor for the given pipeline config.
func NewReconstructor(logger *slog.Logger, cfg Config) *Reconstructor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconstructor{logger: logger, cfg: cfg}
}

// Reconstruct produces the filtered game-level table and the long-form
// (game, player) records. Every returned GameRow carries exactly
// ActivePlayers non-missing scores; rows that cannot satisfy that are
// dropped. It fails with an extraction error when nothing survives.
func (r *Reconstructor) Reconstruct(ctx context.Context, table RawTable, segments []PlayerSegment) ([]GameRow, []PlayerGameRecord, error) {
	dates := r.normalizeDates(table)
	values := coerceRows(table, segments)

	active := r.cfg.ActivePlayers

	// Candidate gate: enough present scores, and not a fully-zeroed
	// placeholder row.
	minPresent := active
	if len(segments) < minPresent {
		minPresent = len(segments)
	}

	var games []GameRow
	var records []PlayerGameRecord

	for rowIdx := range table.Rows {
		row := values[rowIdx]

		present := 0
		absSum := 0.0
		for _, s := range row.scores {
			if s.Valid {
				present++
				absSum += math.Abs(s.Float64)
			}
		}
		if present < minPresent || absSum == 0 {
			continue
		}

		r.logOutOfRangeHints(ctx, rowIdx, row)

		// Null out everything the seat selection did not pick.
		selected := selectSeats(row, active)
		kept := 0
		for i := range row.scores {
			if !selected[i] {
				row.scores[i] = Number{}
			} else if row.scores[i].Valid {
				kept++
			}
		}
		if kept != active {
			continue
		}

		gameIndex := len(games)
		ranks := rankDescendingMin(row.scores)

		game := GameRow{
			GameIndex: gameIndex,
			Date:      dates[rowIdx],
			Scores:    make(map[string]float64, active),
		}
		for i, segment := range segments {
			if !row.scores[i].Valid {
				continue
			}
			game.Scores[segment.Name] = row.scores[i].Float64
			records = append(records, PlayerGameRecord{
				GameIndex:    gameIndex,
				Player:       segment.Name,
				Date:         dates[rowIdx],
				Score:        row.scores[i].Float64,
				Rank:         ranks[i],
				segmentOrder: i,
			})
		}
		games = append(games, game)
	}

	if len(records) == 0 {
		return nil, nil, apperrors.NewExtractionError("no score data extracted", nil)
	}

	sortRecords(records)

	r.logger.InfoContext(ctx, "reconstructed game records",
		slog.Int("raw_rows", len(table.Rows)),
		slog.Int("games", len(games)),
		slog.Int("players", len(segments)))

	return games, records, nil
}

// normalizeDates coerces the date column to day serials from the configured
// epoch and forward-fills gaps: games on the same date usually omit
// repeating it. Rows before the first valid date stay unknown.
func (r *Reconstructor) normalizeDates(table RawTable) []time.Time {
	dates := make([]time.Time, len(table.Rows))
	var last time.Time
	for i := range table.Rows {
		serial := ParseNumber(table.Cell(i, 0))
		if serial.Valid {
			last = r.cfg.Epoch.Add(time.Duration(serial.Float64 * float64(24*time.Hour)))
		}
		dates[i] = last
	}
	return dates
}

// coerceRows parses every segment's score and rank cells into Numbers.
func coerceRows(table RawTable, segments []PlayerSegment) []rowValues {
	values := make([]rowValues, len(table.Rows))
	for rowIdx := range table.Rows {
		row := rowValues{
			scores: make([]Number, len(segments)),
			ranks:  make([]Number, len(segments)),
		}
		for segIdx, segment := range segments {
			row.scores[segIdx] = ParseNumber(table.Cell(rowIdx, segment.Score.Index))
			if segment.Rank != nil {
				row.ranks[segIdx] = ParseNumber(table.Cell(rowIdx, segment.Rank.Index))
			}
		}
		values[rowIdx] = row
	}
	return values
}

// logOutOfRangeHints surfaces rank annotations the selection will ignore.
// They are treated as noise, not corruption, but should stay visible.
func (r *Reconstructor) logOutOfRangeHints(ctx context.Context, rowIdx int, row rowValues) {
	for i := range row.ranks {
		if !row.ranks[i].Valid {
			continue
		}
		rank := row.ranks[i].Float64
		if rank < 1 || rank > float64(r.cfg.ActivePlayers) {
			r.logger.DebugContext(ctx, "ignoring out-of-range rank hint",
				slog.Int("row", rowIdx),
				slog.Float64("rank", rank))
		}
	}
}

// rankDescendingMin ranks the present scores descending with the "min"
// method: tied scores share the lowest applicable rank and the following
// rank numbers are skipped. Missing entries get rank 0.
func rankDescendingMin(scores []Number) []int {
	ranks := make([]int, len(scores))
	for i := range scores {
		if !scores[i].Valid {
			continue
		}
		rank := 1
		for j := range scores {
			if j != i && scores[j].Valid && scores[j].Float64 > scores[i].Float64 {
				rank++
			}
		}
		ranks[i] = rank
	}
	return ranks
}

// sortRecords orders the long-form table by (date asc, game index asc,
// player name asc). Unknown dates sort last.
func sortRecords(records []PlayerGameRecord) {
	sort.SliceStable(records, func(a, b int) bool {
		da, db := records[a].Date, records[b].Date
		if !da.Equal(db) {
			if da.IsZero() {
				return false
			}
			if db.IsZero() {
				return true
			}
			return da.Before(db)
		}
		if records[a].GameIndex != records[b].GameIndex {
			return records[a].GameIndex < records[b].GameIndex
		}
		return records[a].Player < records[b].Player
	})
}
