package season

import (
	"strconv"
	"strings"
	"time"

	"mjstats/internal/config"
)

// RawTable is the 2-D table handed over by the workbook loader: one header
// row of column labels and the raw cell values beneath them. The first
// column is the date column. Cell values are the raw strings from the
// workbook, so date serials and numbers arrive unformatted.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Cell returns the raw value at (row, col), tolerating ragged rows.
func (t RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Column identifies a raw-table column by position and header label.
type Column struct {
	Index int
	Label string
}

// PlayerSegment groups the score column and the optional cumulative and
// rank helper columns belonging to one named player. The player's display
// name is the score column's header label, verbatim.
type PlayerSegment struct {
	Name       string
	Score      Column
	Cumulative *Column
	Rank       *Column
}

// Number is a numeric cell value that may be missing. Unparsable cells are
// missing, never zero, so the count and zero-sum gates downstream behave
// correctly.
type Number struct {
	Float64 float64
	Valid   bool
}

// ParseNumber coerces a raw cell value to a Number. Thousands separators
// are tolerated; anything else non-numeric is missing.
func ParseNumber(raw string) Number {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Number{}
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return Number{}
	}
	return Number{Float64: f, Valid: true}
}

// Config carries the tunables of the extraction pipeline. Keyword sets and
// the serial epoch are passed in explicitly so alternate locales and sheet
// layouts need no code changes.
type Config struct {
	CumulativeKeywords []string
	RankKeywords       []string
	// Epoch is day zero of the workbook's date serials.
	Epoch time.Time
	// ActivePlayers is the number of players contesting a game.
	ActivePlayers int
}

// FromWorkbookConfig builds a pipeline Config from the application-level
// workbook configuration.
func FromWorkbookConfig(wc config.WorkbookConfig) (Config, error) {
	epoch, err := wc.EpochTime()
	if err != nil {
		return Config{}, err
	}
	return Config{
		CumulativeKeywords: wc.CumulativeKeywords,
		RankKeywords:       wc.RankKeywords,
		Epoch:              epoch,
		ActivePlayers:      wc.ActivePlayers,
	}, nil
}

// GameRow is one reconstructed game: a dense 0-based index, the game's
// date, and exactly ActivePlayers non-missing scores keyed by player name.
type GameRow struct {
	GameIndex int
	Date      time.Time
	Scores    map[string]float64
}

// PlayerGameRecord is the long-form row: one record per (game, player).
type PlayerGameRecord struct {
	GameIndex int       `json:"game_index"`
	Player    string    `json:"player"`
	Date      time.Time `json:"date"`
	Score     float64   `json:"score"`
	Rank      int       `json:"rank"`

	// segmentOrder preserves the original left-to-right column order for
	// tie-breaking in the history builder.
	segmentOrder int
}

// RankCounts holds per-placement totals for a player.
type RankCounts struct {
	First  int `json:"first"`
	Second int `json:"second"`
	Third  int `json:"third"`
	Fourth int `json:"fourth"`
}

// PlayerStats is one player's season aggregate. The JSON field names match
// the published summary document.
type PlayerStats struct {
	OrdinalRank  int        `json:"rank"`
	Name         string     `json:"name"`
	GamesPlayed  int        `json:"games_played"`
	TotalScore   float64    `json:"total_score"`
	AverageScore float64    `json:"average_score"`
	AverageRank  float64    `json:"average_rank"`
	WinRate      float64    `json:"win_rate"`
	TopRate      float64    `json:"top_rate"`
	LastRate     float64    `json:"last_rate"`
	BestScore    float64    `json:"best_score"`
	WorstScore   float64    `json:"worst_score"`
	RankCounts   RankCounts `json:"rank_counts"`
}

// HistoryPlayer is one player's result within a single game.
type HistoryPlayer struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// HistoryEntry is one game's result list, players in rank order.
type HistoryEntry struct {
	GameIndex   int             `json:"game_index"`
	Date        *string         `json:"date"`
	Players     []HistoryPlayer `json:"players"`
	Winner      string          `json:"winner"`
	TotalPoints float64         `json:"total_points"`
}

// SeasonSummary is the season-level metadata block of a report.
type SeasonSummary struct {
	Season       string  `json:"season"`
	Workbook     string  `json:"workbook"`
	TotalGames   int     `json:"total_games"`
	TotalPlayers int     `json:"total_players"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
}

// Report is the complete per-season output: metadata, players in final
// ordering, and the game-by-game history.
type Report struct {
	Summary SeasonSummary  `json:"summary"`
	Players []PlayerStats  `json:"players"`
	History []HistoryEntry `json:"history"`
}

// dateFormat is the wire format for calendar dates in the report.
const dateFormat = "2006-01-02"

// formatDate renders t for the report, nil when the date is unknown.
func formatDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(dateFormat)
	return &s
}
