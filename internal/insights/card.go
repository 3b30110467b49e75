package insights

// Strength grades how much evidence backs an insight card.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// Evidence is one measured value backing a card. Baseline and Lift are
// set only for metrics compared against the population baseline.
type Evidence struct {
	SampleSize int      `json:"sample_size"`
	Metric     string   `json:"metric"`
	Value      float64  `json:"value"`
	Baseline   *float64 `json:"baseline,omitempty"`
	Lift       *float64 `json:"lift,omitempty"`
}

// Card is a single explainable insight: a human-readable finding with
// the numbers that justify it. Immutable once built.
type Card struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Tags     []string   `json:"tags"`
	Strength Strength   `json:"strength"`
	Evidence []Evidence `json:"evidence"`
	Action   string     `json:"action,omitempty"`
}

func ptr(v float64) *float64 { return &v }
