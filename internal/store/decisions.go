package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hindsight-labs/hindsight/internal/journal"
)

// CreateDecision inserts a new decision. The caller supplies a fully
// validated record; ID and CreatedAt are assigned here if zero.
func (s *Store) CreateDecision(ctx context.Context, d journal.Decision) (uuid.UUID, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO decisions (id, title, reasoning, confidence, decision_type, importance, decision_speed, decision_driver, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, now()))`,
		d.ID, d.Title, d.Reasoning, d.Confidence, d.DecisionType, d.Importance, d.DecisionSpeed, d.DecisionDriver, nullTime(d.CreatedAt),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert decision: %w", err)
	}
	return d.ID, nil
}

// GetDecision fetches a decision by ID.
func (s *Store) GetDecision(ctx context.Context, id uuid.UUID) (*journal.Decision, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, reasoning, confidence, decision_type, importance, decision_speed, decision_driver, created_at
		FROM decisions WHERE id = $1`, id)

	var d journal.Decision
	err := row.Scan(&d.ID, &d.Title, &d.Reasoning, &d.Confidence, &d.DecisionType, &d.Importance, &d.DecisionSpeed, &d.DecisionDriver, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("fetch decision: %w", err)
	}
	return &d, nil
}

// ListDecisions returns every decision, oldest first.
func (s *Store) ListDecisions(ctx context.Context) ([]journal.Decision, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, reasoning, confidence, decision_type, importance, decision_speed, decision_driver, created_at
		FROM decisions ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var decisions []journal.Decision
	for rows.Next() {
		var d journal.Decision
		if err := rows.Scan(&d.ID, &d.Title, &d.Reasoning, &d.Confidence, &d.DecisionType, &d.Importance, &d.DecisionSpeed, &d.DecisionDriver, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return decisions, nil
}

// UpdateDecision replaces the mutable fields of a decision.
func (s *Store) UpdateDecision(ctx context.Context, d journal.Decision) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE decisions
		SET title = $1, reasoning = $2, confidence = $3, decision_type = $4, importance = $5, decision_speed = $6, decision_driver = $7
		WHERE id = $8`,
		d.Title, d.Reasoning, d.Confidence, d.DecisionType, d.Importance, d.DecisionSpeed, d.DecisionDriver, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("decision %s not found", d.ID)
	}
	return nil
}

// DeleteDecision removes a decision and, via the schema's cascade, its
// review.
func (s *Store) DeleteDecision(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM decisions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("decision %s not found", id)
	}
	return nil
}
