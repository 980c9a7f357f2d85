package season

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// seasonLabelRe finds a 4-digit year, an optional separator, and a 2-digit
// suffix in a workbook file name, e.g. "season_2023_24_final" -> 2023-24.
var seasonLabelRe = regexp.MustCompile(`(\d{4})[_-]?(\d{2})`)

// InferSeasonLabel derives the season label from a workbook file name. When
// no year pattern is present the file name stem is used verbatim.
func InferSeasonLabel(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if m := seasonLabelRe.FindStringSubmatch(stem); m != nil {
		return m[1] + "-" + m[2]
	}
	return stem
}

// BuildReport assembles the final per-season report: season metadata, the
// player leaderboard, and the game-by-game history.
func BuildReport(sourceName string, games []GameRow, records []PlayerGameRecord) Report {
	stats := AggregateStats(records)
	history := BuildHistory(records)

	var start, end time.Time
	for _, rec := range records {
		if rec.Date.IsZero() {
			continue
		}
		if start.IsZero() || rec.Date.Before(start) {
			start = rec.Date
		}
		if end.IsZero() || rec.Date.After(end) {
			end = rec.Date
		}
	}

	return Report{
		Summary: SeasonSummary{
			Season:       InferSeasonLabel(sourceName),
			Workbook:     filepath.Base(sourceName),
			TotalGames:   len(games),
			TotalPlayers: len(stats),
			StartDate:    formatDate(start),
			EndDate:      formatDate(end),
		},
		Players: stats,
		History: history,
	}
}
