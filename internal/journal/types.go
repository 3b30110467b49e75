package journal

import (
	"time"

	"github.com/google/uuid"
)

// Decision is a logged choice: what was decided, the stated reasoning,
// and how confident the author felt at the time.
type Decision struct {
	ID             uuid.UUID     `json:"id"`
	Title          string        `json:"title"`
	Reasoning      string        `json:"reasoning"`
	Confidence     int           `json:"confidence"` // 0-100
	DecisionType   DecisionType  `json:"decision_type"`
	Importance     Importance    `json:"importance"`
	DecisionSpeed  DecisionSpeed `json:"decision_speed"`
	DecisionDriver string        `json:"decision_driver,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Review is the later assessment of a decision's outcome.
// At most one review exists per decision.
type Review struct {
	ID                    uuid.UUID             `json:"id"`
	DecisionID            uuid.UUID             `json:"decision_id"`
	ExpectationComparison ExpectationComparison `json:"expectation_comparison"`
	SurpriseScore         int                   `json:"surprise_score"` // 0-100
	WouldRepeat           WouldRepeat           `json:"would_repeat"`
	ReviewedAt            time.Time             `json:"reviewed_at"`
}

// DecisionType categorizes the area of life a decision belongs to.
type DecisionType string

const (
	TypePersonal DecisionType = "personal"
	TypeWork     DecisionType = "work"
	TypeFinance  DecisionType = "finance"
	TypeHealth   DecisionType = "health"
	TypeOther    DecisionType = "other"
)

// DecisionTypes lists all decision types in declaration order. This order
// is the fixed iteration order for tie-breaks in downstream analyses.
func DecisionTypes() []DecisionType {
	return []DecisionType{TypePersonal, TypeWork, TypeFinance, TypeHealth, TypeOther}
}

func (t DecisionType) Valid() bool {
	switch t {
	case TypePersonal, TypeWork, TypeFinance, TypeHealth, TypeOther:
		return true
	}
	return false
}

// Importance is the author's stated stakes for a decision.
type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

func Importances() []Importance {
	return []Importance{ImportanceLow, ImportanceMedium, ImportanceHigh}
}

func (i Importance) Valid() bool {
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh:
		return true
	}
	return false
}

// DecisionSpeed is how quickly the decision was made.
type DecisionSpeed string

const (
	SpeedQuick    DecisionSpeed = "quick"
	SpeedModerate DecisionSpeed = "moderate"
	SpeedSlow     DecisionSpeed = "slow"
)

func DecisionSpeeds() []DecisionSpeed {
	return []DecisionSpeed{SpeedQuick, SpeedModerate, SpeedSlow}
}

func (s DecisionSpeed) Valid() bool {
	switch s {
	case SpeedQuick, SpeedModerate, SpeedSlow:
		return true
	}
	return false
}

// ExpectationComparison records how the outcome compared to what the
// author expected when deciding.
type ExpectationComparison string

const (
	MuchWorse      ExpectationComparison = "much_worse"
	SlightlyWorse  ExpectationComparison = "slightly_worse"
	AsExpected     ExpectationComparison = "as_expected"
	SlightlyBetter ExpectationComparison = "slightly_better"
	MuchBetter     ExpectationComparison = "much_better"
)

// OutcomeScore maps the comparison to an ordinal in [-2, 2].
// Unknown values coerce to 0, matching as_expected.
func (e ExpectationComparison) OutcomeScore() int {
	switch e {
	case MuchWorse:
		return -2
	case SlightlyWorse:
		return -1
	case AsExpected:
		return 0
	case SlightlyBetter:
		return 1
	case MuchBetter:
		return 2
	default:
		return 0
	}
}

func (e ExpectationComparison) Valid() bool {
	switch e {
	case MuchWorse, SlightlyWorse, AsExpected, SlightlyBetter, MuchBetter:
		return true
	}
	return false
}

// WouldRepeat records whether the author would make the same choice again.
type WouldRepeat string

const (
	RepeatYes    WouldRepeat = "yes"
	RepeatNo     WouldRepeat = "no"
	RepeatUnsure WouldRepeat = "unsure"
)

func (w WouldRepeat) Valid() bool {
	switch w {
	case RepeatYes, RepeatNo, RepeatUnsure:
		return true
	}
	return false
}
