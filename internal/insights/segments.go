package insights

import (
	"fmt"
	"math"
	"sort"

	"github.com/hindsight-labs/hindsight/internal/journal"
)

const (
	// minSegmentSize is the smallest subpopulation worth reporting on.
	minSegmentSize = 5
	// maxSegmentCards caps how many segment cards a single run emits.
	maxSegmentCards = 6
)

// Interestingness thresholds: a segment becomes a card only if at least
// one of its lifts clears these, or its repeat rate falls below half.
const (
	outcomeLiftThreshold  = 0.5
	surpriseLiftThreshold = 12.0
	calErrLiftThreshold   = 0.15
	repeatRateThreshold   = 0.5
)

type segmentKey struct {
	Type       journal.DecisionType
	Importance journal.Importance
	Speed      journal.DecisionSpeed
	Band       ConfidenceBand
}

func (k segmentKey) label() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.Type, k.Importance, k.Speed, k.Band)
}

type segmentStats struct {
	key          segmentKey
	n            int
	avgOutcome   float64
	avgSurprise  float64
	avgCalErr    float64
	repeatRate   float64
	outcomeLift  float64
	surpriseLift float64
	calErrLift   float64
}

// MineSegments enumerates every (type, importance, speed, band)
// combination, scores the ones with enough samples against the baseline,
// and returns up to maxSegmentCards cards ranked by the sum of absolute
// lifts, descending. Ties are broken by segment label ascending so the
// ranking is deterministic. The candidate space is fixed at
// 5x3x3x4 = 180, so a brute-force scan is fine.
func MineSegments(pairs []Pair, base Baseline) []Card {
	if len(pairs) == 0 {
		return nil
	}

	var found []segmentStats
	for _, dt := range journal.DecisionTypes() {
		for _, imp := range journal.Importances() {
			for _, sp := range journal.DecisionSpeeds() {
				for _, band := range ConfidenceBands() {
					key := segmentKey{Type: dt, Importance: imp, Speed: sp, Band: band}
					stats, ok := scoreSegment(pairs, key, base)
					if !ok {
						continue
					}
					if !interesting(stats) {
						continue
					}
					found = append(found, stats)
				}
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		a, b := liftMagnitude(found[i]), liftMagnitude(found[j])
		if a != b {
			return a > b
		}
		return found[i].key.label() < found[j].key.label()
	})
	if len(found) > maxSegmentCards {
		found = found[:maxSegmentCards]
	}

	cards := make([]Card, 0, len(found))
	for _, s := range found {
		cards = append(cards, segmentCard(s, base))
	}
	return cards
}

func scoreSegment(pairs []Pair, key segmentKey, base Baseline) (segmentStats, bool) {
	var n, repeats int
	var outcomeSum, surpriseSum, calErrSum float64
	for _, p := range pairs {
		if p.Decision.DecisionType != key.Type ||
			p.Decision.Importance != key.Importance ||
			p.Decision.DecisionSpeed != key.Speed ||
			p.Band != key.Band {
			continue
		}
		n++
		outcomeSum += float64(p.OutcomeScore)
		surpriseSum += float64(p.Review.SurpriseScore)
		calErrSum += p.CalibrationError
		if p.Review.WouldRepeat == journal.RepeatYes {
			repeats++
		}
	}
	if n < minSegmentSize {
		return segmentStats{}, false
	}

	fn := float64(n)
	s := segmentStats{
		key:         key,
		n:           n,
		avgOutcome:  outcomeSum / fn,
		avgSurprise: surpriseSum / fn,
		avgCalErr:   calErrSum / fn,
		repeatRate:  float64(repeats) / fn,
	}
	s.outcomeLift = s.avgOutcome - base.AvgOutcomeScore
	s.surpriseLift = s.avgSurprise - base.AvgSurprise
	s.calErrLift = s.avgCalErr - base.AvgCalibrationError
	return s, true
}

func interesting(s segmentStats) bool {
	return math.Abs(s.outcomeLift) >= outcomeLiftThreshold ||
		math.Abs(s.surpriseLift) >= surpriseLiftThreshold ||
		math.Abs(s.calErrLift) >= calErrLiftThreshold ||
		s.repeatRate < repeatRateThreshold
}

func liftMagnitude(s segmentStats) float64 {
	return math.Abs(s.outcomeLift) + math.Abs(s.surpriseLift) + math.Abs(s.calErrLift)
}

func segmentStrength(s segmentStats) Strength {
	score := 2*math.Abs(s.outcomeLift) + math.Abs(s.surpriseLift)/10 + 3*math.Abs(s.calErrLift)
	if s.n >= 6 {
		score++
	}
	switch {
	case score > 3:
		return StrengthStrong
	case score > 1.2:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}

func segmentCard(s segmentStats, base Baseline) Card {
	label := s.key.label()
	msg := fmt.Sprintf(
		"%d decisions match this profile. Outcome averages %+.2f vs your baseline, surprise %+.1f, calibration error %+.2f. You'd repeat %.0f%% of them.",
		s.n, s.outcomeLift, s.surpriseLift, s.calErrLift, s.repeatRate*100,
	)

	var action string
	switch {
	case s.repeatRate < repeatRateThreshold:
		action = "You regret most decisions in this segment. Slow down or gather more input before the next one."
	case s.calErrLift >= calErrLiftThreshold:
		action = "Your confidence is off in this segment. Compare your stated confidence with the outcomes before deciding again."
	case s.outcomeLift <= -outcomeLiftThreshold:
		action = "Outcomes here run below your baseline. Look at what these decisions have in common."
	}

	return Card{
		ID:      "segment:" + label,
		Title:   fmt.Sprintf("Pattern in %s / %s importance / %s / %s confidence", s.key.Type, s.key.Importance, s.key.Speed, s.key.Band),
		Message: msg,
		Tags: []string{
			"segment",
			string(s.key.Type),
			string(s.key.Importance),
			string(s.key.Speed),
			string(s.key.Band),
		},
		Strength: segmentStrength(s),
		Evidence: []Evidence{
			{SampleSize: s.n, Metric: "avg_outcome", Value: s.avgOutcome, Baseline: ptr(base.AvgOutcomeScore), Lift: ptr(s.outcomeLift)},
			{SampleSize: s.n, Metric: "avg_surprise", Value: s.avgSurprise, Baseline: ptr(base.AvgSurprise), Lift: ptr(s.surpriseLift)},
			{SampleSize: s.n, Metric: "avg_calibration_error", Value: s.avgCalErr, Baseline: ptr(base.AvgCalibrationError), Lift: ptr(s.calErrLift)},
			{SampleSize: s.n, Metric: "repeat_rate", Value: s.repeatRate},
		},
		Action: action,
	}
}
