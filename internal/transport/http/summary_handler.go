// Package http provides the read-only report API consumed by the season
// dashboard.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "mjstats/internal/errors"
	"mjstats/internal/report"
)

// SummaryHandler serves the generated summary document.
type SummaryHandler struct {
	logger      *slog.Logger
	summaryPath string
}

// NewSummaryHandler creates a handler reading the summary document at
// summaryPath on each request, so a fresh pipeline run is picked up without
// restarting the server.
func NewSummaryHandler(logger *slog.Logger, summaryPath string) *SummaryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryHandler{logger: logger, summaryPath: summaryPath}
}

// RegisterRoutes registers the summary routes.
func (h *SummaryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.GetSummary)
	r.Route("/seasons", func(r chi.Router) {
		r.Get("/", h.ListSeasons)
		r.Get("/{label}", h.GetSeason)
	})
}

// GetSummary returns the full summary document.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	envelope, ok := h.load(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, envelope)
}

// ListSeasons returns the labels of all seasons in the document.
func (h *SummaryHandler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	envelope, ok := h.load(w, r)
	if !ok {
		return
	}

	labels := make([]string, 0, len(envelope.Seasons))
	for _, s := range envelope.Seasons {
		labels = append(labels, s.Summary.Season)
	}
	render.JSON(w, r, map[string]interface{}{"seasons": labels})
}

// GetSeason returns a single season's report by label.
func (h *SummaryHandler) GetSeason(w http.ResponseWriter, r *http.Request) {
	envelope, ok := h.load(w, r)
	if !ok {
		return
	}

	label := chi.URLParam(r, "label")
	for _, s := range envelope.Seasons {
		if s.Summary.Season == label {
			render.JSON(w, r, s)
			return
		}
	}

	render.Render(w, r, apierrors.APINotFound("season "+label+" not found"))
}

// load reads the summary document, rendering an error response on failure.
func (h *SummaryHandler) load(w http.ResponseWriter, r *http.Request) (*report.Envelope, bool) {
	envelope, err := report.ReadJSON(h.summaryPath)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load summary document",
			slog.String("path", h.summaryPath),
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.APIInternal("summary document unavailable"))
		return nil, false
	}
	return envelope, true
}
