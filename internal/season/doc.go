// Package season extracts structured game results from loosely formatted
// four-player score sheets and computes per-player season statistics.
//
// The pipeline runs in five stages:
//
//   - segments.go: classifies unlabeled header columns and groups them into
//     per-player segments (score plus optional cumulative and rank columns)
//   - reconstruct.go: normalizes dates, coerces cells, gates out non-game
//     rows, and resolves which four columns hold a game's real scores
//   - selection.go: the ordered seat-selection strategies (rank hints,
//     score magnitude, column position)
//   - stats.go: per-player aggregates, placement counts, and rates
//   - history.go / report.go: the per-game result list and the assembled
//     season report
//
// Everything operates on in-memory data; workbook loading and JSON output
// live in the workbook and report packages. batch.go ties the stages
// together and processes independent workbooks in parallel.
package season
