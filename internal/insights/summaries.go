package insights

import (
	"github.com/hindsight-labs/hindsight/internal/journal"
)

// wellCalibratedTolerance is the largest gap between the confidence and
// outcome probability proxies still counted as well calibrated.
const wellCalibratedTolerance = 0.15

// ConfidenceSummary reports how stated confidence lines up with outcomes.
type ConfidenceSummary struct {
	AvgConfidence       float64 `json:"avg_confidence"`
	WellCalibratedCount int     `json:"well_calibrated_count"`
	OverconfidentCount  int     `json:"overconfident_count"`
	UnderconfidentCount int     `json:"underconfident_count"`
}

// SummarizeConfidence classifies each pair as well calibrated,
// overconfident, or underconfident. Returns nil below the review gate.
func SummarizeConfidence(pairs []Pair) *ConfidenceSummary {
	if len(pairs) < minReviewsForSummaries {
		return nil
	}
	var s ConfidenceSummary
	var confSum float64
	for _, p := range pairs {
		confSum += float64(p.Decision.Confidence)
		gap := p.ConfidenceProb - p.OutcomeProb
		switch {
		case gap <= wellCalibratedTolerance && gap >= -wellCalibratedTolerance:
			s.WellCalibratedCount++
		case gap > 0:
			s.OverconfidentCount++
		default:
			s.UnderconfidentCount++
		}
	}
	s.AvgConfidence = round2(confSum / float64(len(pairs)))
	return &s
}

// SurpriseSummary reports which decision types surprise the author most
// and least.
type SurpriseSummary struct {
	AvgSurprise        float64              `json:"avg_surprise"`
	MostSurprisedType  journal.DecisionType `json:"most_surprised_type"`
	MostSurprisedAvg   float64              `json:"most_surprised_avg"`
	LeastSurprisedType journal.DecisionType `json:"least_surprised_type"`
	LeastSurprisedAvg  float64              `json:"least_surprised_avg"`
}

// SummarizeSurprise groups pairs by decision type and picks the groups
// with the highest and lowest mean surprise. Ties keep the earlier type
// in journal.DecisionTypes declaration order. Returns nil below the gate.
func SummarizeSurprise(pairs []Pair) *SurpriseSummary {
	if len(pairs) < minReviewsForSummaries {
		return nil
	}

	sums := make(map[journal.DecisionType]float64)
	counts := make(map[journal.DecisionType]int)
	var total float64
	for _, p := range pairs {
		t := p.Decision.DecisionType
		sums[t] += float64(p.Review.SurpriseScore)
		counts[t]++
		total += float64(p.Review.SurpriseScore)
	}

	s := SurpriseSummary{AvgSurprise: round2(total / float64(len(pairs)))}
	first := true
	for _, t := range journal.DecisionTypes() {
		n := counts[t]
		if n == 0 {
			continue
		}
		avg := round2(sums[t] / float64(n))
		if first || avg > s.MostSurprisedAvg {
			s.MostSurprisedType, s.MostSurprisedAvg = t, avg
		}
		if first || avg < s.LeastSurprisedAvg {
			s.LeastSurprisedType, s.LeastSurprisedAvg = t, avg
		}
		first = false
	}
	return &s
}

// SpeedSummary reports the regret rate per decision speed. A partition
// with no samples reports 0.
type SpeedSummary struct {
	QuickRegretRate    float64 `json:"quick_regret_rate"`
	ModerateRegretRate float64 `json:"moderate_regret_rate"`
	SlowRegretRate     float64 `json:"slow_regret_rate"`
}

// SummarizeSpeed computes the fraction of would-not-repeat reviews per
// decision speed. Returns nil below the gate.
func SummarizeSpeed(pairs []Pair) *SpeedSummary {
	if len(pairs) < minReviewsForSummaries {
		return nil
	}
	return &SpeedSummary{
		QuickRegretRate:    regretRate(pairs, journal.SpeedQuick),
		ModerateRegretRate: regretRate(pairs, journal.SpeedModerate),
		SlowRegretRate:     regretRate(pairs, journal.SpeedSlow),
	}
}

func regretRate(pairs []Pair, speed journal.DecisionSpeed) float64 {
	var n, regrets int
	for _, p := range pairs {
		if p.Decision.DecisionSpeed != speed {
			continue
		}
		n++
		if p.Review.WouldRepeat == journal.RepeatNo {
			regrets++
		}
	}
	if n == 0 {
		return 0
	}
	return round2(float64(regrets) / float64(n))
}

// RepeatSummary reports would-repeat counts and percentages over all
// reviewed decisions.
type RepeatSummary struct {
	YesCount    int     `json:"yes_count"`
	NoCount     int     `json:"no_count"`
	UnsureCount int     `json:"unsure_count"`
	YesPct      float64 `json:"yes_pct"`
	NoPct       float64 `json:"no_pct"`
	UnsurePct   float64 `json:"unsure_pct"`
}

// SummarizeRepeat counts would-repeat answers. Returns nil below the gate.
func SummarizeRepeat(pairs []Pair) *RepeatSummary {
	if len(pairs) < minReviewsForSummaries {
		return nil
	}
	var s RepeatSummary
	for _, p := range pairs {
		switch p.Review.WouldRepeat {
		case journal.RepeatYes:
			s.YesCount++
		case journal.RepeatNo:
			s.NoCount++
		default:
			s.UnsureCount++
		}
	}
	n := float64(len(pairs))
	s.YesPct = round2(float64(s.YesCount) / n * 100)
	s.NoPct = round2(float64(s.NoCount) / n * 100)
	s.UnsurePct = round2(float64(s.UnsureCount) / n * 100)
	return &s
}
