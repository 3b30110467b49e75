package insights

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hindsight-labs/hindsight/internal/journal"
)

func TestAnalyze_EmptyCorpus(t *testing.T) {
	res := Analyze(nil, nil)

	if res.ReviewCount != 0 {
		t.Errorf("ReviewCount = %d, want 0", res.ReviewCount)
	}
	if len(res.Cards) != 0 {
		t.Errorf("got %d cards, want 0", len(res.Cards))
	}
	if res.Baseline != (Baseline{}) {
		t.Errorf("baseline not zero-valued: %+v", res.Baseline)
	}
	if res.Confidence != nil || res.Surprise != nil || res.Speed != nil || res.Repeat != nil {
		t.Error("summaries should all be absent for an empty corpus")
	}
}

func TestAnalyze_ThreeCalibratedReviews(t *testing.T) {
	var decisions []journal.Decision
	var reviews []journal.Review
	for i := 0; i < 3; i++ {
		d := testDecision(50, journal.TypeWork, journal.ImportanceMedium, journal.SpeedModerate)
		decisions = append(decisions, d)
		reviews = append(reviews, testReview(d, journal.AsExpected, 10, journal.RepeatYes, t0.Add(time.Duration(i)*time.Hour)))
	}

	res := Analyze(decisions, reviews)
	if res.ReviewCount != 3 {
		t.Fatalf("ReviewCount = %d, want 3", res.ReviewCount)
	}
	if !closeTo(res.Baseline.AvgOutcomeScore, 0.0) {
		t.Errorf("AvgOutcomeScore = %f, want 0.0", res.Baseline.AvgOutcomeScore)
	}
	if res.Confidence == nil {
		t.Fatal("confidence summary absent")
	}
	if res.Confidence.WellCalibratedCount != 3 {
		t.Errorf("WellCalibratedCount = %d, want 3", res.Confidence.WellCalibratedCount)
	}
	if len(res.Cards) != 1 || res.Cards[0].ID != "baseline" {
		t.Errorf("want exactly the baseline card, got %d cards", len(res.Cards))
	}
}

func TestAnalyze_NoCardsBelowGate(t *testing.T) {
	var decisions []journal.Decision
	var reviews []journal.Review
	for i := 0; i < 2; i++ {
		d := testDecision(90, journal.TypeWork, journal.ImportanceHigh, journal.SpeedQuick)
		decisions = append(decisions, d)
		reviews = append(reviews, testReview(d, journal.MuchWorse, 90, journal.RepeatNo, t0.Add(time.Duration(i)*time.Hour)))
	}

	res := Analyze(decisions, reviews)
	if res.ReviewCount != 2 {
		t.Fatalf("ReviewCount = %d, want 2", res.ReviewCount)
	}
	if len(res.Cards) != 0 {
		t.Errorf("got %d cards below the review gate, want 0", len(res.Cards))
	}
}

func TestAnalyze_ReviewCountNeverExceedsDecisions(t *testing.T) {
	d := testDecision(50, journal.TypeWork, journal.ImportanceMedium, journal.SpeedModerate)
	r1 := testReview(d, journal.AsExpected, 10, journal.RepeatYes, t0)
	r2 := testReview(d, journal.MuchWorse, 90, journal.RepeatNo, t0.Add(time.Hour))
	orphan := journal.Review{ID: r1.ID, DecisionID: testDecision(50, journal.TypeWork, journal.ImportanceMedium, journal.SpeedModerate).ID}

	res := Analyze([]journal.Decision{d}, []journal.Review{r1, r2, orphan})
	if res.ReviewCount != 1 {
		t.Errorf("ReviewCount = %d, want 1 (duplicates and orphans don't count)", res.ReviewCount)
	}
}

func TestAnalyze_OrderInsensitive(t *testing.T) {
	var decisions []journal.Decision
	var reviews []journal.Review
	cmps := []journal.ExpectationComparison{
		journal.MuchWorse, journal.AsExpected, journal.MuchBetter,
		journal.SlightlyWorse, journal.SlightlyBetter,
	}
	for i := 0; i < 15; i++ {
		d := testDecision((i*7)%101, journal.DecisionTypes()[i%5], journal.Importances()[i%3], journal.DecisionSpeeds()[i%3])
		decisions = append(decisions, d)
		reviews = append(reviews, testReview(d, cmps[i%5], (i*13)%101, journal.RepeatYes, t0.Add(time.Duration(i)*time.Hour)))
	}

	forward := Analyze(decisions, reviews)

	// Reverse both input slices.
	revDecisions := make([]journal.Decision, len(decisions))
	revReviews := make([]journal.Review, len(reviews))
	for i := range decisions {
		revDecisions[len(decisions)-1-i] = decisions[i]
	}
	for i := range reviews {
		revReviews[len(reviews)-1-i] = reviews[i]
	}
	backward := Analyze(revDecisions, revReviews)

	if !reflect.DeepEqual(forward, backward) {
		t.Errorf("results differ under input permutation:\nforward:  %+v\nbackward: %+v", forward, backward)
	}
}

func TestAnalyze_GatingIsMonotonic(t *testing.T) {
	var decisions []journal.Decision
	var reviews []journal.Review

	// A regret cluster that stays segment-eligible throughout.
	for i := 0; i < 5; i++ {
		d := testDecision(90, journal.TypeWork, journal.ImportanceHigh, journal.SpeedQuick)
		decisions = append(decisions, d)
		reviews = append(reviews, testReview(d, journal.MuchWorse, 80, journal.RepeatNo, t0.Add(time.Duration(i)*time.Hour)))
	}
	// Filler up to 7 reviews.
	for i := 5; i < 7; i++ {
		d := testDecision(50, journal.TypePersonal, journal.ImportanceLow, journal.SpeedSlow)
		decisions = append(decisions, d)
		reviews = append(reviews, testReview(d, journal.AsExpected, 20, journal.RepeatYes, t0.Add(time.Duration(i)*time.Hour)))
	}

	at7 := Analyze(decisions, reviews)
	if len(at7.Cards) != 1 {
		t.Fatalf("at 7 reviews: got %d cards, want only the baseline card", len(at7.Cards))
	}

	// One more review crosses the segment gate: cards are only added.
	d := testDecision(50, journal.TypePersonal, journal.ImportanceLow, journal.SpeedSlow)
	decisions = append(decisions, d)
	reviews = append(reviews, testReview(d, journal.AsExpected, 20, journal.RepeatYes, t0.Add(7*time.Hour)))

	at8 := Analyze(decisions, reviews)
	if len(at8.Cards) <= len(at7.Cards) {
		t.Fatalf("at 8 reviews: got %d cards, want more than %d", len(at8.Cards), len(at7.Cards))
	}
	if at8.Cards[0].ID != "baseline" {
		t.Errorf("first card = %q, want baseline still present", at8.Cards[0].ID)
	}
	var found bool
	for _, c := range at8.Cards {
		if c.ID == "segment:work/high/quick/very_high" {
			found = true
		}
	}
	if !found {
		t.Error("segment card missing after crossing the segment gate")
	}
}

func TestAnalyze_CardOrdering(t *testing.T) {
	var decisions []journal.Decision
	var reviews []journal.Review

	// Segment-worthy regret cluster.
	for i := 0; i < 6; i++ {
		d := testDecision(90, journal.TypeWork, journal.ImportanceHigh, journal.SpeedQuick)
		decisions = append(decisions, d)
		reviews = append(reviews, testReview(d, journal.MuchWorse, 80, journal.RepeatNo, t0.Add(time.Duration(i)*time.Hour)))
	}
	// Quiet stretch, then a surprise spike in the most recent window so
	// the trend stage fires too. 18 total reviews, window = 9.
	for i := 6; i < 12; i++ {
		d := testDecision(50, journal.TypePersonal, journal.ImportanceLow, journal.SpeedSlow)
		decisions = append(decisions, d)
		reviews = append(reviews, testReview(d, journal.AsExpected, 10, journal.RepeatYes, t0.Add(time.Duration(i)*time.Hour)))
	}
	for i := 12; i < 18; i++ {
		d := testDecision(50, journal.TypePersonal, journal.ImportanceLow, journal.SpeedSlow)
		decisions = append(decisions, d)
		reviews = append(reviews, testReview(d, journal.AsExpected, 90, journal.RepeatYes, t0.Add(time.Duration(i)*time.Hour)))
	}

	res := Analyze(decisions, reviews)
	if len(res.Cards) < 3 {
		t.Fatalf("got %d cards, want baseline + segment + trend", len(res.Cards))
	}
	if res.Cards[0].ID != "baseline" {
		t.Errorf("cards[0] = %q, want baseline first", res.Cards[0].ID)
	}

	// Segments must all come before trends.
	lastSegment, firstTrend := -1, -1
	for i, c := range res.Cards[1:] {
		switch {
		case strings.HasPrefix(c.ID, "segment:"):
			lastSegment = i
		case strings.HasPrefix(c.ID, "trend:") && firstTrend == -1:
			firstTrend = i
		}
	}
	if firstTrend != -1 && lastSegment > firstTrend {
		t.Errorf("segment card at %d after trend card at %d", lastSegment, firstTrend)
	}
	if firstTrend == -1 {
		t.Error("no trend card emitted")
	}
}

func TestEnabledStages(t *testing.T) {
	tests := []struct {
		count int
		want  Stages
	}{
		{0, Stages{}},
		{2, Stages{}},
		{3, Stages{Summaries: true}},
		{7, Stages{Summaries: true}},
		{8, Stages{Summaries: true, Segments: true}},
		{11, Stages{Summaries: true, Segments: true}},
		{12, Stages{Summaries: true, Segments: true, Trends: true}},
		{10000, Stages{Summaries: true, Segments: true, Trends: true}},
	}

	for _, tt := range tests {
		if got := EnabledStages(tt.count); got != tt.want {
			t.Errorf("EnabledStages(%d) = %+v, want %+v", tt.count, got, tt.want)
		}
	}
}
