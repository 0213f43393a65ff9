package models

// PriorityLevel is a discrete priority label
type PriorityLevel string

const (
	PriorityCritical PriorityLevel = "Critical"
	PriorityHigh     PriorityLevel = "High"
	PriorityMedium   PriorityLevel = "Medium"
	PriorityLow      PriorityLevel = "Low"
)

// PriorityLevels lists the labels from highest to lowest
var PriorityLevels = []PriorityLevel{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// PriorityFromScore bands an engine total score (0-10 scale).
// Thresholds differ from PriorityFromAdminRating and must stay separate.
func PriorityFromScore(totalScore float64) PriorityLevel {
	switch {
	case totalScore >= 8:
		return PriorityCritical
	case totalScore >= 6:
		return PriorityHigh
	case totalScore >= 4:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// PriorityFromAdminRating bands an administrator-entered 1-10 priority
func PriorityFromAdminRating(priority int) PriorityLevel {
	switch {
	case priority >= 9:
		return PriorityCritical
	case priority >= 7:
		return PriorityHigh
	case priority >= 4:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// EvaluationScore represents the IDEA_EVALUATION table
type EvaluationScore struct {
	EvaluationID  string        `db:"EVALUATION_ID" json:"id"`
	IdeaID        string        `db:"IDEA_ID" json:"ideaId"`
	Impact        int           `db:"IMPACT" json:"impact"`
	Complexity    int           `db:"COMPLEXITY" json:"complexity"`
	Feasibility   int           `db:"FEASIBILITY" json:"feasibility"`
	TotalScore    float64       `db:"TOTAL_SCORE" json:"totalScore"`
	PriorityLevel PriorityLevel `db:"PRIORITY_LEVEL" json:"priorityLevel"`
	EvaluatedTime int64         `db:"EVALUATED_TIME" json:"evaluatedAt"`
	EvaluatedBy   string        `db:"EVALUATED_BY" json:"evaluatedBy"`
}

// Assessment bundles the engine-produced records of an idea
type Assessment struct {
	IdeaID         string           `json:"ideaId"`
	Classification *Classification  `json:"classification,omitempty"`
	Evaluation     *EvaluationScore `json:"evaluation,omitempty"`
	Degraded       bool             `json:"degraded,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
}
