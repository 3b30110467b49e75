package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATS subjects published by hindsight.
const (
	SubjectDecisionCreated  = "hindsight.decision.created"
	SubjectReviewCreated    = "hindsight.review.created"
	SubjectInsightsComputed = "hindsight.insights.computed"
)

// DecisionCreated announces a newly logged decision.
type DecisionCreated struct {
	DecisionID   string `json:"decision_id"`
	DecisionType string `json:"decision_type"`
	Importance   string `json:"importance"`
	Confidence   int    `json:"confidence"`
}

// ReviewCreated announces a newly recorded review.
type ReviewCreated struct {
	ReviewID              string `json:"review_id"`
	DecisionID            string `json:"decision_id"`
	ExpectationComparison string `json:"expectation_comparison"`
	WouldRepeat           string `json:"would_repeat"`
}

// InsightsComputed announces an engine run, with just enough detail for
// listeners to decide whether to refetch.
type InsightsComputed struct {
	ReviewCount int `json:"review_count"`
	CardCount   int `json:"card_count"`
}

type Client struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Close() {
	c.conn.Close()
}
