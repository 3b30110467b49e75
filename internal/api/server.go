package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/hindsight-labs/hindsight/internal/events"
	"github.com/hindsight-labs/hindsight/internal/journal"
)

// Journal is the storage surface the API depends on. *store.Store
// satisfies it; tests swap in an in-memory fake.
type Journal interface {
	CreateDecision(ctx context.Context, d journal.Decision) (uuid.UUID, error)
	GetDecision(ctx context.Context, id uuid.UUID) (*journal.Decision, error)
	ListDecisions(ctx context.Context) ([]journal.Decision, error)
	UpdateDecision(ctx context.Context, d journal.Decision) error
	DeleteDecision(ctx context.Context, id uuid.UUID) error

	CreateReview(ctx context.Context, r journal.Review) (uuid.UUID, error)
	GetReviewByDecision(ctx context.Context, decisionID uuid.UUID) (*journal.Review, error)
	ListReviews(ctx context.Context) ([]journal.Review, error)
	UpdateReview(ctx context.Context, r journal.Review) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type Server struct {
	router *chi.Mux
	port   int
	store  Journal
	bus    *events.Client // optional, nil when NATS is not configured
}

func NewServer(port int, apiToken string, db Journal, bus *events.Client) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		port:   port,
		store:  db,
		bus:    bus,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/hindsight/status", s.status)

	router.Route("/api/v1/decisions", func(r chi.Router) {
		r.Get("/", s.listDecisions)
		r.Get("/{id}", s.getDecision)
		r.Get("/{id}/review", s.getReview)
		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(apiToken))
			r.Post("/", s.createDecision)
			r.Put("/{id}", s.updateDecision)
			r.Delete("/{id}", s.deleteDecision)
			r.Post("/{id}/review", s.createReview)
		})
	})

	router.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Put("/{id}", s.updateReview)
		r.Delete("/{id}", s.deleteReview)
	})

	router.Get("/api/v1/insights", s.getInsights)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "hindsight",
		"status":  "ok",
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
