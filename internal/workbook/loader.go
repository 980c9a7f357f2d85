package workbook

import (
	"context"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "mjstats/internal/errors"
	"mjstats/internal/season"
)

// Loader reads score workbooks and resolves the record sheet into the raw
// table the extraction pipeline consumes. Cells are read as raw values so
// date serials and numbers arrive unformatted.
type Loader struct {
	logger     *slog.Logger
	sheetName  string
	classifier season.Classifier
}

// NewLoader creates a workbook loader. The classifier is used to probe for
// the record sheet when the configured sheet name is absent.
func NewLoader(logger *slog.Logger, sheetName string, classifier season.Classifier) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, sheetName: sheetName, classifier: classifier}
}

// Load opens the workbook at path and returns its record sheet as a raw
// table. The configured sheet name is tried first; failing that, the first
// sheet whose header yields player segments is used.
func (l *Loader) Load(ctx context.Context, path string) (season.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return season.RawTable{}, apperrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	opts := excelize.Options{RawCellValue: true}

	rows, err := f.GetRows(l.sheetName, opts)
	sheetName := l.sheetName
	if err != nil {
		rows, sheetName = l.findRecordSheet(f, opts)
		if rows == nil {
			return season.RawTable{}, apperrors.NewSchemaError("record sheet not found in workbook", nil).
				WithContext("sheet", l.sheetName)
		}
		l.logger.InfoContext(ctx, "configured sheet missing, using fallback",
			slog.String("configured", l.sheetName),
			slog.String("sheet", sheetName))
	}

	table := toRawTable(rows)
	l.logger.DebugContext(ctx, "loaded record sheet",
		slog.String("sheet", sheetName),
		slog.Int("rows", len(table.Rows)),
		slog.Int("columns", len(table.Columns)))

	return table, nil
}

// findRecordSheet scans the workbook for the first sheet whose header row
// produces at least one player segment.
func (l *Loader) findRecordSheet(f *excelize.File, opts excelize.Options) ([][]string, string) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, opts)
		if err != nil || len(rows) == 0 {
			continue
		}
		if _, err := season.DetectSegments(rows[0], l.classifier); err == nil {
			return rows, name
		}
	}
	return nil, ""
}

// toRawTable shapes excelize row data into a RawTable: the first row is the
// header, fully empty data rows are dropped, and ragged rows are kept as-is
// (the table tolerates short rows).
func toRawTable(rows [][]string) season.RawTable {
	if len(rows) == 0 {
		return season.RawTable{}
	}

	table := season.RawTable{Columns: rows[0]}
	for _, row := range rows[1:] {
		empty := true
		for _, cell := range row {
			if cell != "" {
				empty = false
				break
			}
		}
		if !empty {
			table.Rows = append(table.Rows, row)
		}
	}
	return table
}
