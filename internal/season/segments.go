package season

import (
	"strconv"
	"strings"

	apperrors "mjstats/internal/errors"
)

// LabelKind is the classification of a single header label.
type LabelKind int

const (
	// LabelIgnore marks blank, placeholder, or otherwise unusable labels.
	LabelIgnore LabelKind = iota
	// LabelPlayerCandidate marks a label usable as a player name.
	LabelPlayerCandidate
	// LabelCumulative marks a running-total helper column.
	LabelCumulative
	// LabelRank marks a placement helper column.
	LabelRank
)

// Classifier decides what kind of column a header label denotes. Matching
// is case-sensitive substring search over the configured keyword sets.
type Classifier struct {
	cumulative []string
	rank       []string
}

// NewClassifier creates a classifier from the pipeline configuration.
func NewClassifier(cfg Config) Classifier {
	return Classifier{
		cumulative: cfg.CumulativeKeywords,
		rank:       cfg.RankKeywords,
	}
}

// Classify maps a header label to its kind. Cumulative keywords win over
// rank keywords when a label matches both.
func (c Classifier) Classify(label string) LabelKind {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" || strings.HasPrefix(label, "Unnamed") {
		return LabelIgnore
	}
	// A bare number in the header row is an artifact of a typed cell, not
	// a player name.
	if _, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64); err == nil {
		return LabelIgnore
	}
	if containsAny(label, c.cumulative) {
		return LabelCumulative
	}
	if containsAny(label, c.rank) {
		return LabelRank
	}
	return LabelPlayerCandidate
}

func containsAny(label string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(label, keyword) {
			return true
		}
	}
	return false
}

// DetectSegments walks the header row left to right and groups columns into
// player segments. The first column is the date column and is skipped. Each
// player candidate may claim an immediately following cumulative column and
// then a rank column; helper columns never start a segment of their own.
func DetectSegments(header []string, cls Classifier) ([]PlayerSegment, error) {
	if len(header) == 0 {
		return nil, apperrors.NewSchemaError("no header row", nil)
	}

	var segments []PlayerSegment
	i := 1
	for i < len(header) {
		if cls.Classify(header[i]) != LabelPlayerCandidate {
			i++
			continue
		}

		segment := PlayerSegment{
			Name:  header[i],
			Score: Column{Index: i, Label: header[i]},
		}
		next := i + 1

		if next < len(header) && cls.Classify(header[next]) == LabelCumulative {
			segment.Cumulative = &Column{Index: next, Label: header[next]}
			next++
		}
		if next < len(header) && cls.Classify(header[next]) == LabelRank {
			segment.Rank = &Column{Index: next, Label: header[next]}
			next++
		}

		segments = append(segments, segment)
		i = next
	}

	if len(segments) == 0 {
		return nil, apperrors.NewSchemaError("no player columns identified", nil)
	}
	return segments, nil
}
