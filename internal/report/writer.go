package report

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "mjstats/internal/errors"
	"mjstats/internal/season"
)

// Envelope is the top-level summary document: one Report per processed
// workbook plus generation metadata.
type Envelope struct {
	GeneratedAt string          `json:"generated_at"`
	Source      string          `json:"source"`
	Seasons     []season.Report `json:"seasons"`
}

// Writer persists summary documents.
type Writer struct {
	logger *slog.Logger
	indent int
}

// NewWriter creates a writer. indent is the number of spaces used for
// pretty printing; values below 1 fall back to 2.
func NewWriter(logger *slog.Logger, indent int) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if indent < 1 {
		indent = 2
	}
	return &Writer{logger: logger, indent: indent}
}

// WriteJSON writes the envelope for the given seasons to path, creating
// parent directories as needed.
func (w *Writer) WriteJSON(ctx context.Context, path, source string, seasons []season.Report) error {
	w.logger.InfoContext(ctx, "writing summary document",
		slog.String("path", path),
		slog.Int("seasons", len(seasons)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for summary output", err)
	}

	envelope := Envelope{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      source,
		Seasons:     seasons,
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create summary file", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", strings.Repeat(" ", w.indent))

	if err := encoder.Encode(envelope); err != nil {
		return apperrors.NewStorageError("failed to encode summary document", err)
	}

	w.logger.InfoContext(ctx, "wrote summary document", slog.String("path", path))
	return nil
}

// ReadJSON reads a previously written summary document.
func ReadJSON(path string) (*Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read summary file", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, apperrors.NewParsingError("failed to parse summary file", err)
	}
	return &envelope, nil
}
