package season

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mjstats/internal/infrastructure"
)

// Loader resolves a workbook file into the raw score table the pipeline
// consumes. Implemented by the excelize-backed workbook loader.
type Loader interface {
	Load(ctx context.Context, path string) (RawTable, error)
}

// Processor runs the full extraction pipeline over one or more workbooks.
// Workbooks are independent, so they are processed with bounded parallelism
// while results keep the input order.
type Processor struct {
	logger      *slog.Logger
	cfg         Config
	loader      Loader
	concurrency int
	// strict aborts the whole batch on the first failed workbook instead
	// of skipping it with a warning.
	strict bool
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithConcurrency bounds the number of workbooks processed at once.
func WithConcurrency(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithStrict makes a failed workbook fail the whole batch.
func WithStrict(strict bool) ProcessorOption {
	return func(p *Processor) { p.strict = strict }
}

// NewProcessor creates a batch processor.
func NewProcessor(logger *slog.Logger, cfg Config, loader Loader, opts ...ProcessorOption) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{
		logger:      logger,
		cfg:         cfg,
		loader:      loader,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessOne runs the pipeline for a single workbook and returns its report.
// No partial report is ever produced: either the whole workbook extracts
// cleanly or an error comes back.
func (p *Processor) ProcessOne(ctx context.Context, path string) (Report, error) {
	table, err := p.loader.Load(ctx, path)
	if err != nil {
		return Report{}, fmt.Errorf("load workbook %s: %w", filepath.Base(path), err)
	}

	segments, err := DetectSegments(table.Columns, NewClassifier(p.cfg))
	if err != nil {
		return Report{}, fmt.Errorf("detect segments in %s: %w", filepath.Base(path), err)
	}

	games, records, err := NewReconstructor(p.logger, p.cfg).Reconstruct(ctx, table, segments)
	if err != nil {
		return Report{}, fmt.Errorf("reconstruct %s: %w", filepath.Base(path), err)
	}

	return BuildReport(path, games, records), nil
}

// Process runs the pipeline over every workbook and returns the reports in
// input order. In non-strict mode a failed workbook is logged and skipped.
func (p *Processor) Process(ctx context.Context, paths []string) ([]Report, error) {
	results := make([]*Report, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			wctx := infrastructure.WithTraceID(gctx, uuid.NewString())
			p.logger.InfoContext(wctx, "processing workbook",
				slog.String("workbook", filepath.Base(path)))

			report, err := p.ProcessOne(wctx, path)
			if err != nil {
				if p.strict {
					return err
				}
				p.logger.WarnContext(wctx, "skipping workbook",
					slog.String("workbook", filepath.Base(path)),
					slog.String("error", err.Error()))
				return nil
			}
			results[i] = &report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(paths))
	for _, r := range results {
		if r != nil {
			reports = append(reports, *r)
		}
	}
	return reports, nil
}
