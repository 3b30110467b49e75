package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hindsight-labs/hindsight/internal/journal"
)

// CreateReview inserts a review. The unique index on decision_id keeps
// the one-review-per-decision invariant; a second insert fails here.
func (s *Store) CreateReview(ctx context.Context, r journal.Review) (uuid.UUID, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO reviews (id, decision_id, expectation_comparison, surprise_score, would_repeat, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))`,
		r.ID, r.DecisionID, r.ExpectationComparison, r.SurpriseScore, r.WouldRepeat, nullTime(r.ReviewedAt),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert review: %w", err)
	}
	return r.ID, nil
}

// GetReviewByDecision fetches the review for a decision, if any.
func (s *Store) GetReviewByDecision(ctx context.Context, decisionID uuid.UUID) (*journal.Review, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, decision_id, expectation_comparison, surprise_score, would_repeat, reviewed_at
		FROM reviews WHERE decision_id = $1`, decisionID)

	var r journal.Review
	err := row.Scan(&r.ID, &r.DecisionID, &r.ExpectationComparison, &r.SurpriseScore, &r.WouldRepeat, &r.ReviewedAt)
	if err != nil {
		return nil, fmt.Errorf("fetch review: %w", err)
	}
	return &r, nil
}

// ListReviews returns every review, oldest first.
func (s *Store) ListReviews(ctx context.Context) ([]journal.Review, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, decision_id, expectation_comparison, surprise_score, would_repeat, reviewed_at
		FROM reviews ORDER BY reviewed_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []journal.Review
	for rows.Next() {
		var r journal.Review
		if err := rows.Scan(&r.ID, &r.DecisionID, &r.ExpectationComparison, &r.SurpriseScore, &r.WouldRepeat, &r.ReviewedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return reviews, nil
}

// UpdateReview replaces the mutable fields of a review.
func (s *Store) UpdateReview(ctx context.Context, r journal.Review) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE reviews
		SET expectation_comparison = $1, surprise_score = $2, would_repeat = $3
		WHERE id = $4`,
		r.ExpectationComparison, r.SurpriseScore, r.WouldRepeat, r.ID,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", r.ID)
	}
	return nil
}

// DeleteReview removes a review.
func (s *Store) DeleteReview(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id)
	}
	return nil
}
