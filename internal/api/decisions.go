package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hindsight-labs/hindsight/internal/events"
	"github.com/hindsight-labs/hindsight/internal/journal"
)

// DecisionRequest is the create/update payload for a decision.
type DecisionRequest struct {
	Title          string `json:"title"`
	Reasoning      string `json:"reasoning"`
	Confidence     int    `json:"confidence"`
	DecisionType   string `json:"decision_type"`
	Importance     string `json:"importance"`
	DecisionSpeed  string `json:"decision_speed"`
	DecisionDriver string `json:"decision_driver,omitempty"`
}

func (req DecisionRequest) validate() error {
	if req.Title == "" {
		return fmt.Errorf("title is required")
	}
	if req.Confidence < 0 || req.Confidence > 100 {
		return fmt.Errorf("confidence must be in [0,100], got %d", req.Confidence)
	}
	if !journal.DecisionType(req.DecisionType).Valid() {
		return fmt.Errorf("unknown decision_type %q", req.DecisionType)
	}
	if !journal.Importance(req.Importance).Valid() {
		return fmt.Errorf("unknown importance %q", req.Importance)
	}
	if !journal.DecisionSpeed(req.DecisionSpeed).Valid() {
		return fmt.Errorf("unknown decision_speed %q", req.DecisionSpeed)
	}
	return nil
}

func (req DecisionRequest) toRecord() journal.Decision {
	return journal.Decision{
		Title:          req.Title,
		Reasoning:      req.Reasoning,
		Confidence:     req.Confidence,
		DecisionType:   journal.DecisionType(req.DecisionType),
		Importance:     journal.Importance(req.Importance),
		DecisionSpeed:  journal.DecisionSpeed(req.DecisionSpeed),
		DecisionDriver: req.DecisionDriver,
	}
}

// ReviewRequest is the create/update payload for a review.
type ReviewRequest struct {
	ExpectationComparison string `json:"expectation_comparison"`
	SurpriseScore         int    `json:"surprise_score"`
	WouldRepeat           string `json:"would_repeat"`
}

func (req ReviewRequest) validate() error {
	if !journal.ExpectationComparison(req.ExpectationComparison).Valid() {
		return fmt.Errorf("unknown expectation_comparison %q", req.ExpectationComparison)
	}
	if req.SurpriseScore < 0 || req.SurpriseScore > 100 {
		return fmt.Errorf("surprise_score must be in [0,100], got %d", req.SurpriseScore)
	}
	if !journal.WouldRepeat(req.WouldRepeat).Valid() {
		return fmt.Errorf("unknown would_repeat %q", req.WouldRepeat)
	}
	return nil
}

func (s *Server) createDecision(w http.ResponseWriter, r *http.Request) {
	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.store.CreateDecision(r.Context(), req.toRecord())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("create decision: %v", err))
		return
	}

	if s.bus != nil {
		if err := s.bus.Publish(events.SubjectDecisionCreated, events.DecisionCreated{
			DecisionID:   id.String(),
			DecisionType: req.DecisionType,
			Importance:   req.Importance,
			Confidence:   req.Confidence,
		}); err != nil {
			slog.Warn("failed to publish decision.created", "error", err, "decision_id", id)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) getDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := s.store.GetDecision(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("decision %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) listDecisions(w http.ResponseWriter, r *http.Request) {
	decisions, err := s.store.ListDecisions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("list decisions: %v", err))
		return
	}
	if decisions == nil {
		decisions = []journal.Decision{}
	}
	writeJSON(w, http.StatusOK, decisions)
}

func (s *Server) updateDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := req.toRecord()
	rec.ID = id
	if err := s.store.UpdateDecision(r.Context(), rec); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("update decision: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (s *Server) deleteDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteDecision(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("delete decision: %v", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	decisionID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.store.GetDecision(r.Context(), decisionID); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("decision %s not found", decisionID))
		return
	}

	id, err := s.store.CreateReview(r.Context(), journal.Review{
		DecisionID:            decisionID,
		ExpectationComparison: journal.ExpectationComparison(req.ExpectationComparison),
		SurpriseScore:         req.SurpriseScore,
		WouldRepeat:           journal.WouldRepeat(req.WouldRepeat),
	})
	if err != nil {
		// Most likely the unique decision_id index: the decision is
		// already reviewed.
		writeError(w, http.StatusConflict, fmt.Sprintf("create review: %v", err))
		return
	}

	if s.bus != nil {
		if err := s.bus.Publish(events.SubjectReviewCreated, events.ReviewCreated{
			ReviewID:              id.String(),
			DecisionID:            decisionID.String(),
			ExpectationComparison: req.ExpectationComparison,
			WouldRepeat:           req.WouldRepeat,
		}); err != nil {
			slog.Warn("failed to publish review.created", "error", err, "review_id", id)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) getReview(w http.ResponseWriter, r *http.Request) {
	decisionID, ok := pathID(w, r)
	if !ok {
		return
	}
	rev, err := s.store.GetReviewByDecision(r.Context(), decisionID)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no review for decision %s", decisionID))
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (s *Server) updateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.store.UpdateReview(r.Context(), journal.Review{
		ID:                    id,
		ExpectationComparison: journal.ExpectationComparison(req.ExpectationComparison),
		SurpriseScore:         req.SurpriseScore,
		WouldRepeat:           journal.WouldRepeat(req.WouldRepeat),
	})
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("update review: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteReview(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("delete review: %v", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} URL parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id: %v", err))
		return uuid.Nil, false
	}
	return id, true
}
