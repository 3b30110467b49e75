//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/hindsight-labs/hindsight/internal/journal"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_DecisionRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	d := journal.Decision{
		Title:         "integration test decision",
		Reasoning:     "testing the write path",
		Confidence:    75,
		DecisionType:  journal.TypeWork,
		Importance:    journal.ImportanceMedium,
		DecisionSpeed: journal.SpeedQuick,
	}

	id, err := s.CreateDecision(ctx, d)
	if err != nil {
		t.Fatalf("CreateDecision failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected non-nil decision ID")
	}
	t.Cleanup(func() {
		s.pool.Exec(ctx, "DELETE FROM decisions WHERE id = $1", id)
	})

	got, err := s.GetDecision(ctx, id)
	if err != nil {
		t.Fatalf("GetDecision failed: %v", err)
	}
	if got.Title != d.Title {
		t.Errorf("title = %q, want %q", got.Title, d.Title)
	}
	if got.Confidence != 75 {
		t.Errorf("confidence = %d, want 75", got.Confidence)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not defaulted")
	}

	got.Confidence = 40
	got.DecisionSpeed = journal.SpeedSlow
	if err := s.UpdateDecision(ctx, *got); err != nil {
		t.Fatalf("UpdateDecision failed: %v", err)
	}
	got, err = s.GetDecision(ctx, id)
	if err != nil {
		t.Fatalf("GetDecision after update failed: %v", err)
	}
	if got.Confidence != 40 || got.DecisionSpeed != journal.SpeedSlow {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestIntegration_ReviewUniquePerDecision(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	d := journal.Decision{
		Title:         "reviewed decision",
		Confidence:    60,
		DecisionType:  journal.TypeFinance,
		Importance:    journal.ImportanceHigh,
		DecisionSpeed: journal.SpeedModerate,
	}
	decisionID, err := s.CreateDecision(ctx, d)
	if err != nil {
		t.Fatalf("CreateDecision failed: %v", err)
	}
	t.Cleanup(func() {
		s.pool.Exec(ctx, "DELETE FROM decisions WHERE id = $1", decisionID)
	})

	r := journal.Review{
		DecisionID:            decisionID,
		ExpectationComparison: journal.SlightlyBetter,
		SurpriseScore:         35,
		WouldRepeat:           journal.RepeatYes,
	}
	if _, err := s.CreateReview(ctx, r); err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	// A second review for the same decision must be rejected.
	if _, err := s.CreateReview(ctx, r); err == nil {
		t.Error("expected unique violation on second review, got nil")
	}

	got, err := s.GetReviewByDecision(ctx, decisionID)
	if err != nil {
		t.Fatalf("GetReviewByDecision failed: %v", err)
	}
	if got.ExpectationComparison != journal.SlightlyBetter {
		t.Errorf("expectation_comparison = %q, want slightly_better", got.ExpectationComparison)
	}

	// Deleting the decision cascades to the review.
	if err := s.DeleteDecision(ctx, decisionID); err != nil {
		t.Fatalf("DeleteDecision failed: %v", err)
	}
	if _, err := s.GetReviewByDecision(ctx, decisionID); err == nil {
		t.Error("review survived decision delete")
	}
}
