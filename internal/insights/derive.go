package insights

import (
	"bytes"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/hindsight-labs/hindsight/internal/journal"
)

// ConfidenceBand buckets stated confidence into four ranges.
type ConfidenceBand string

const (
	BandLow      ConfidenceBand = "low"       // 0-39
	BandMid      ConfidenceBand = "mid"       // 40-59
	BandHigh     ConfidenceBand = "high"      // 60-79
	BandVeryHigh ConfidenceBand = "very_high" // 80-100
)

// ConfidenceBands lists all bands in ascending order. This order is the
// fixed iteration order used when enumerating segments.
func ConfidenceBands() []ConfidenceBand {
	return []ConfidenceBand{BandLow, BandMid, BandHigh, BandVeryHigh}
}

// BandFor maps a 0-100 confidence value to its band.
func BandFor(confidence int) ConfidenceBand {
	switch {
	case confidence < 40:
		return BandLow
	case confidence < 60:
		return BandMid
	case confidence < 80:
		return BandHigh
	default:
		return BandVeryHigh
	}
}

// Prob is the probability proxy for a band: the rough chance the author
// implicitly assigned to a better-than-expected outcome.
func (b ConfidenceBand) Prob() float64 {
	switch b {
	case BandLow:
		return 0.3
	case BandMid:
		return 0.5
	case BandHigh:
		return 0.7
	case BandVeryHigh:
		return 0.9
	default:
		return 0.5
	}
}

// Pair is a decision joined to its review, plus the derived calibration
// fields every downstream analysis reads. Built fresh per engine call and
// never mutated.
type Pair struct {
	Decision journal.Decision
	Review   journal.Review

	OutcomeScore     int     // -2..2 ordinal of expectation_comparison
	Band             ConfidenceBand
	ConfidenceProb   float64 // band probability proxy
	OutcomeProb      float64 // 1.0 better, 0.5 as expected, 0.0 worse
	CalibrationError float64 // |ConfidenceProb - OutcomeProb|
}

// Derive joins each decision to its review and computes the derived
// fields. Decisions without a review are skipped. If a decision somehow
// has multiple reviews, the first encountered in input order wins.
// The result is sorted ascending by reviewed_at, ties broken by decision
// ID so the order is deterministic.
func Derive(decisions []journal.Decision, reviews []journal.Review) []Pair {
	byDecision := make(map[uuid.UUID]journal.Review, len(reviews))
	for _, r := range reviews {
		if _, ok := byDecision[r.DecisionID]; ok {
			continue
		}
		byDecision[r.DecisionID] = r
	}

	pairs := make([]Pair, 0, len(byDecision))
	for _, d := range decisions {
		r, ok := byDecision[d.ID]
		if !ok {
			continue
		}
		pairs = append(pairs, derivePair(d, r))
	}

	sort.Slice(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		if !a.Review.ReviewedAt.Equal(b.Review.ReviewedAt) {
			return a.Review.ReviewedAt.Before(b.Review.ReviewedAt)
		}
		return bytes.Compare(a.Decision.ID[:], b.Decision.ID[:]) < 0
	})
	return pairs
}

func derivePair(d journal.Decision, r journal.Review) Pair {
	score := r.ExpectationComparison.OutcomeScore()
	band := BandFor(d.Confidence)

	var outcomeProb float64
	switch {
	case score > 0:
		outcomeProb = 1.0
	case score == 0:
		outcomeProb = 0.5
	default:
		outcomeProb = 0.0
	}

	confProb := band.Prob()
	return Pair{
		Decision:         d,
		Review:           r,
		OutcomeScore:     score,
		Band:             band,
		ConfidenceProb:   confProb,
		OutcomeProb:      outcomeProb,
		CalibrationError: math.Abs(confProb - outcomeProb),
	}
}
