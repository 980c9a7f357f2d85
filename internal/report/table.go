package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"mjstats/internal/season"
)

// PrintLeaderboard renders one season's player table, players already in
// final order.
func PrintLeaderboard(w io.Writer, rep season.Report) {
	fmt.Fprintf(w, "\nSeason: %s  |  Workbook: %s  |  Games: %d  |  Players: %d\n\n",
		rep.Summary.Season, rep.Summary.Workbook, rep.Summary.TotalGames, rep.Summary.TotalPlayers)

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("#", "NAME", "GP", "TOTAL", "AVG", "AVG RANK", "WIN%", "TOP%", "LAST%", "BEST", "WORST")

	for _, p := range rep.Players {
		table.Append(
			strconv.Itoa(p.OrdinalRank),
			p.Name,
			strconv.Itoa(p.GamesPlayed),
			fmt.Sprintf("%.1f", p.TotalScore),
			fmt.Sprintf("%.2f", p.AverageScore),
			fmt.Sprintf("%.2f", p.AverageRank),
			fmt.Sprintf("%.0f%%", p.WinRate*100),
			fmt.Sprintf("%.0f%%", p.TopRate*100),
			fmt.Sprintf("%.0f%%", p.LastRate*100),
			fmt.Sprintf("%.1f", p.BestScore),
			fmt.Sprintf("%.1f", p.WorstScore),
		)
	}
	table.Render()
}
