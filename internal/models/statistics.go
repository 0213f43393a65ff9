package models

// Statistics holds aggregate counts over the current idea set
type Statistics struct {
	Total               int                   `json:"total"`
	ByStatus            map[IdeaStatus]int    `json:"byStatus"`
	ByDepartment        map[string]int        `json:"byDepartment"`
	ClassificationStats map[Category]int      `json:"classificationStats"`
	EvaluationStats     map[PriorityLevel]int `json:"evaluationStats"`
}

// NewStatistics returns statistics with every status present at zero
func NewStatistics() *Statistics {
	s := &Statistics{
		ByStatus:            make(map[IdeaStatus]int, len(IdeaStatuses)),
		ByDepartment:        make(map[string]int),
		ClassificationStats: make(map[Category]int),
		EvaluationStats:     make(map[PriorityLevel]int),
	}
	for _, status := range IdeaStatuses {
		s.ByStatus[status] = 0
	}
	return s
}

// EngineLabels holds the latest engine output for one idea. Empty fields
// mean the engine has no record.
type EngineLabels struct {
	Category      Category
	PriorityLevel PriorityLevel
}

// Add counts one idea. Administrator review fields take precedence over the
// engine labels.
func (s *Statistics) Add(idea *Idea, engine EngineLabels) {
	s.Total++
	s.ByStatus[idea.Status]++
	s.ByDepartment[idea.Department]++

	switch {
	case idea.Classification != nil:
		s.ClassificationStats[*idea.Classification]++
	case engine.Category != "":
		s.ClassificationStats[engine.Category]++
	}

	switch {
	case idea.Priority != nil:
		s.EvaluationStats[PriorityFromAdminRating(*idea.Priority)]++
	case engine.PriorityLevel != "":
		s.EvaluationStats[engine.PriorityLevel]++
	}
}
