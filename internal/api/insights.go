package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hindsight-labs/hindsight/internal/events"
	"github.com/hindsight-labs/hindsight/internal/insights"
)

// getInsights fetches the full corpus and runs the analysis engine. The
// engine is a pure function of the two record sets, so there is nothing
// to cache or invalidate here.
func (s *Server) getInsights(w http.ResponseWriter, r *http.Request) {
	decisions, err := s.store.ListDecisions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("list decisions: %v", err))
		return
	}
	reviews, err := s.store.ListReviews(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("list reviews: %v", err))
		return
	}

	result := insights.Analyze(decisions, reviews)

	if s.bus != nil {
		if err := s.bus.Publish(events.SubjectInsightsComputed, events.InsightsComputed{
			ReviewCount: result.ReviewCount,
			CardCount:   len(result.Cards),
		}); err != nil {
			slog.Warn("failed to publish insights.computed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}
