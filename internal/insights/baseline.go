package insights

import "math"

// Baseline holds the population-wide reference statistics every segment
// and trend is compared against. Recomputed on every engine call.
type Baseline struct {
	ReviewCount         int     `json:"review_count"`
	AvgOutcomeScore     float64 `json:"avg_outcome_score"`
	AvgSurprise         float64 `json:"avg_surprise"`
	AvgCalibrationError float64 `json:"avg_calibration_error"`
}

// ComputeBaseline averages the derived pairs. Empty input yields the
// zero baseline, never an error.
func ComputeBaseline(pairs []Pair) Baseline {
	if len(pairs) == 0 {
		return Baseline{}
	}

	var outcomeSum, surpriseSum, calErrSum float64
	for _, p := range pairs {
		outcomeSum += float64(p.OutcomeScore)
		surpriseSum += float64(p.Review.SurpriseScore)
		calErrSum += p.CalibrationError
	}

	n := float64(len(pairs))
	return Baseline{
		ReviewCount:         len(pairs),
		AvgOutcomeScore:     round2(outcomeSum / n),
		AvgSurprise:         round2(surpriseSum / n),
		AvgCalibrationError: round2(calErrSum / n),
	}
}

// round2 rounds to 2 decimal places using banker's rounding, so repeated
// aggregation over the same corpus is bit-for-bit reproducible.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
