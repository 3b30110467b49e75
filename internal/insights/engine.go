// Package insights turns a corpus of paired decision+review records into
// ranked, evidence-backed insight cards. Every function here is a pure,
// deterministic computation over its arguments: no I/O, no caching, no
// cross-call state, so concurrent calls need no synchronization.
package insights

import (
	"fmt"

	"github.com/hindsight-labs/hindsight/internal/journal"
)

// Result is the full output of one engine run. Cards are ordered
// {summary card, segment cards, trend cards}. The four summaries are nil
// when the corpus is too small for them.
type Result struct {
	Cards       []Card             `json:"cards"`
	Baseline    Baseline           `json:"baseline"`
	ReviewCount int                `json:"review_count"`
	Confidence  *ConfidenceSummary `json:"confidence_summary,omitempty"`
	Surprise    *SurpriseSummary   `json:"surprise_summary,omitempty"`
	Speed       *SpeedSummary      `json:"speed_summary,omitempty"`
	Repeat      *RepeatSummary     `json:"repeat_summary,omitempty"`
}

// Analyze runs the whole pipeline: derive pairs, compute the baseline,
// then run whichever stages the corpus size allows. It is total: empty
// or degenerate input yields a zero-valued result, never an error.
func Analyze(decisions []journal.Decision, reviews []journal.Review) Result {
	pairs := Derive(decisions, reviews)
	base := ComputeBaseline(pairs)

	res := Result{
		Cards:       []Card{},
		Baseline:    base,
		ReviewCount: len(pairs),
	}

	stages := EnabledStages(len(pairs))
	if !stages.Summaries {
		return res
	}

	res.Confidence = SummarizeConfidence(pairs)
	res.Surprise = SummarizeSurprise(pairs)
	res.Speed = SummarizeSpeed(pairs)
	res.Repeat = SummarizeRepeat(pairs)
	res.Cards = append(res.Cards, baselineCard(base, res.Confidence))

	if stages.Segments {
		res.Cards = append(res.Cards, MineSegments(pairs, base)...)
	}
	if stages.Trends {
		res.Cards = append(res.Cards, AnalyzeTrends(pairs)...)
	}
	return res
}

// baselineCard summarizes the overall track record. Emitted whenever the
// summary stage is enabled, so there is always at least one card once
// three reviews exist.
func baselineCard(base Baseline, conf *ConfidenceSummary) Card {
	msg := fmt.Sprintf(
		"Across %d reviewed decisions, outcomes average %.2f, surprise %.1f, calibration error %.2f.",
		base.ReviewCount, base.AvgOutcomeScore, base.AvgSurprise, base.AvgCalibrationError,
	)
	strength := StrengthWeak
	if base.ReviewCount >= minReviewsForSegments {
		strength = StrengthMedium
	}
	card := Card{
		ID:       "baseline",
		Title:    "Your track record so far",
		Message:  msg,
		Tags:     []string{"baseline"},
		Strength: strength,
		Evidence: []Evidence{
			{SampleSize: base.ReviewCount, Metric: "avg_outcome_score", Value: base.AvgOutcomeScore},
			{SampleSize: base.ReviewCount, Metric: "avg_surprise", Value: base.AvgSurprise},
			{SampleSize: base.ReviewCount, Metric: "avg_calibration_error", Value: base.AvgCalibrationError},
		},
	}
	if conf != nil {
		card.Evidence = append(card.Evidence, Evidence{
			SampleSize: base.ReviewCount,
			Metric:     "avg_confidence",
			Value:      conf.AvgConfidence,
		})
	}
	return card
}
