package insights

// Minimum review counts for each analysis stage. These are fixed design
// constants, never inferred at runtime.
const (
	minReviewsForSummaries = 3
	minReviewsForSegments  = 8
	minReviewsForTrends    = 12
)

// Stages says which analyses run for a given corpus size.
type Stages struct {
	Summaries bool
	Segments  bool
	Trends    bool
}

// EnabledStages gates analyses purely on the number of reviewed
// decisions. Raising the count only ever enables more stages.
func EnabledStages(reviewCount int) Stages {
	return Stages{
		Summaries: reviewCount >= minReviewsForSummaries,
		Segments:  reviewCount >= minReviewsForSegments,
		Trends:    reviewCount >= minReviewsForTrends,
	}
}
