// Command summary collects season statistics from score workbooks and emits
// a single JSON summary document.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"mjstats/internal/config"
	"mjstats/internal/files"
	"mjstats/internal/infrastructure"
	"mjstats/internal/report"
	"mjstats/internal/season"
	"mjstats/internal/workbook"
)

func main() {
	input := flag.String("input", "", "workbook file or directory (defaults to the configured data dir)")
	output := flag.String("output", "", "destination JSON path (defaults to the configured output file)")
	indent := flag.Int("indent", 2, "indent width for the JSON output")
	sheet := flag.String("sheet", "", "record sheet name override")
	configFile := flag.String("config", "config.yaml", "path to the configuration file")
	jobs := flag.Int("jobs", 4, "number of workbooks processed in parallel")
	strict := flag.Bool("strict", false, "abort the run when any workbook fails instead of skipping it")
	noTable := flag.Bool("no-table", false, "suppress the per-season leaderboard on stdout")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *sheet != "" {
		cfg.Workbook.SheetName = *sheet
	}
	if *input == "" {
		*input = cfg.Paths.DataDir
	}
	if *output == "" {
		*output = cfg.Paths.OutputFile
	}

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	slog.SetDefault(logger)

	ctx := context.Background()

	workbooks, err := files.DiscoverWorkbooks(*input)
	if err != nil {
		logger.Error("Workbook discovery failed",
			slog.String("input", *input),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(workbooks) == 0 {
		logger.Error("No workbooks found", slog.String("input", *input))
		os.Exit(1)
	}

	seasonCfg, err := season.FromWorkbookConfig(cfg.Workbook)
	if err != nil {
		logger.Error("Invalid workbook configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loader := workbook.NewLoader(logger, cfg.Workbook.SheetName, season.NewClassifier(seasonCfg))
	processor := season.NewProcessor(logger, seasonCfg, loader,
		season.WithConcurrency(*jobs),
		season.WithStrict(*strict))

	logger.Info("Starting summary run",
		slog.String("input", *input),
		slog.String("output", *output),
		slog.Int("workbooks", len(workbooks)))

	seasons, err := processor.Process(ctx, files.Paths(workbooks))
	if err != nil {
		logger.Error("Summary run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(seasons) == 0 {
		logger.Error("No workbook produced a report")
		os.Exit(1)
	}

	writer := report.NewWriter(logger, *indent)
	if err := writer.WriteJSON(ctx, *output, *input, seasons); err != nil {
		logger.Error("Failed to write summary document", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !*noTable {
		for _, s := range seasons {
			report.PrintLeaderboard(os.Stdout, s)
		}
	}

	logger.Info("Summary run complete",
		slog.Int("seasons", len(seasons)),
		slog.String("output", *output))
}
