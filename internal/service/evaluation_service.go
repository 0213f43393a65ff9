package service

import (
	"math"

	"github.com/wso2/idea-management-api/internal/models"
)

const defaultSubScore = 5

var impactByBenefit = map[string]int{
	models.BenefitCostReduction:        10,
	models.BenefitTimeSavings:          9,
	models.BenefitQualityImprovement:   8,
	models.BenefitCustomerSatisfaction: 8,
	models.BenefitRiskReduction:        7,
	models.BenefitEmployeeSatisfaction: 6,
}

var feasibilityByDepartment = map[string]int{
	models.DepartmentIT:              9,
	models.DepartmentOperations:      8,
	models.DepartmentFinance:         7,
	models.DepartmentHR:              7,
	models.DepartmentCustomerService: 7,
	models.DepartmentMarketing:       6,
	models.DepartmentSales:           6,
	models.DepartmentLegal:           5,
}

// Score holds the sub-scores and weighted total of an evaluation
type Score struct {
	Impact        int
	Complexity    int
	Feasibility   int
	TotalScore    float64
	PriorityLevel models.PriorityLevel
}

// EvaluationService scores ideas. It is a pure function over the idea fields.
type EvaluationService struct{}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

// Evaluate scores an idea from its expected benefit, description and department
func (s *EvaluationService) Evaluate(expectedBenefit, description, department string) Score {
	impact := lookup(impactByBenefit, expectedBenefit)
	complexity := complexityOf(description)
	feasibility := lookup(feasibilityByDepartment, department)

	raw := float64(impact)*0.4 + float64(10-complexity)*0.3 + float64(feasibility)*0.3
	total := math.Round(raw*10) / 10

	return Score{
		Impact:        impact,
		Complexity:    complexity,
		Feasibility:   feasibility,
		TotalScore:    total,
		PriorityLevel: models.PriorityFromScore(total),
	}
}

// complexityOf estimates complexity from description length in characters
func complexityOf(description string) int {
	n := len([]rune(description))
	switch {
	case n > 500:
		return 8
	case n > 300:
		return 6
	case n > 100:
		return 4
	default:
		return 3
	}
}

func lookup(table map[string]int, key string) int {
	if v, ok := table[key]; ok {
		return v
	}
	return defaultSubScore
}
