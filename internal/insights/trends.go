package insights

import (
	"fmt"
	"math"
)

// maxTrendWindow caps the comparison window at the 10 most recent reviews.
const maxTrendWindow = 10

// Trend thresholds: minimum mean-delta between the recent window and the
// preceding one for a card to be emitted, and the larger delta that
// upgrades it to strong.
const (
	outcomeTrendMin     = 0.5
	outcomeTrendStrong  = 1.0
	surpriseTrendMin    = 8.0
	surpriseTrendStrong = 15.0
	calErrTrendMin      = 0.05
	calErrTrendStrong   = 0.12
)

// AnalyzeTrends compares the most recent window of reviews against the
// window immediately before it and emits up to three cards: one each for
// outcome, surprise, and calibration error. Pairs must already be sorted
// by reviewed_at ascending, which Derive guarantees.
func AnalyzeTrends(pairs []Pair) []Card {
	window := len(pairs) / 2
	if window > maxTrendWindow {
		window = maxTrendWindow
	}
	if window < 1 || len(pairs) < 2*window {
		return nil
	}

	tail := pairs[len(pairs)-window:]
	prev := pairs[len(pairs)-2*window : len(pairs)-window]

	outcomeDelta := windowMean(tail, outcomeOf) - windowMean(prev, outcomeOf)
	surpriseDelta := windowMean(tail, surpriseOf) - windowMean(prev, surpriseOf)
	calErrDelta := windowMean(tail, calErrOf) - windowMean(prev, calErrOf)

	var cards []Card
	if math.Abs(outcomeDelta) >= outcomeTrendMin {
		cards = append(cards, trendCard(
			"outcome", outcomeDelta, window,
			math.Abs(outcomeDelta) > outcomeTrendStrong,
			"Recent outcomes are improving",
			"Recent outcomes are slipping",
			fmt.Sprintf("Your last %d reviewed decisions scored %+.2f on outcome vs the %d before them.", window, outcomeDelta, window),
		))
	}
	if math.Abs(surpriseDelta) >= surpriseTrendMin {
		cards = append(cards, trendCard(
			"surprise", surpriseDelta, window,
			math.Abs(surpriseDelta) > surpriseTrendStrong,
			"You're getting surprised more often",
			"You're getting surprised less often",
			fmt.Sprintf("Average surprise moved %+.1f points across your last %d reviews.", surpriseDelta, window),
		))
	}
	if math.Abs(calErrDelta) >= calErrTrendMin {
		cards = append(cards, trendCard(
			"calibration", calErrDelta, window,
			math.Abs(calErrDelta) > calErrTrendStrong,
			"Your confidence calibration is drifting",
			"Your confidence calibration is tightening",
			fmt.Sprintf("Calibration error moved %+.2f across your last %d reviews.", calErrDelta, window),
		))
	}
	return cards
}

// trendCard builds a card for one trending metric. upTitle is used for a
// positive delta, downTitle for a negative one.
func trendCard(metric string, delta float64, window int, strong bool, upTitle, downTitle, msg string) Card {
	title := upTitle
	if delta < 0 {
		title = downTitle
	}
	strength := StrengthMedium
	if strong {
		strength = StrengthStrong
	}
	return Card{
		ID:       "trend:" + metric,
		Title:    title,
		Message:  msg,
		Tags:     []string{"trend", metric},
		Strength: strength,
		Evidence: []Evidence{
			{SampleSize: window, Metric: metric + "_delta", Value: delta},
		},
	}
}

func windowMean(pairs []Pair, f func(Pair) float64) float64 {
	if len(pairs) == 0 {
		return 0
	}
	var sum float64
	for _, p := range pairs {
		sum += f(p)
	}
	return sum / float64(len(pairs))
}

func outcomeOf(p Pair) float64  { return float64(p.OutcomeScore) }
func surpriseOf(p Pair) float64 { return float64(p.Review.SurpriseScore) }
func calErrOf(p Pair) float64   { return p.CalibrationError }
