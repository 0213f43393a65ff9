package models

// Category is the classification assigned to an idea
type Category string

const (
	CategoryAutomation             Category = "Automation"
	CategoryProcessImprovement     Category = "Process Improvement"
	CategoryOperationalEnhancement Category = "Operational Enhancement"
)

// Categories lists all classification categories
var Categories = []Category{
	CategoryAutomation,
	CategoryProcessImprovement,
	CategoryOperationalEnhancement,
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Classification represents the IDEA_CLASSIFICATION table
type Classification struct {
	ClassificationID string   `db:"CLASSIFICATION_ID" json:"id"`
	IdeaID           string   `db:"IDEA_ID" json:"ideaId"`
	Category         Category `db:"CATEGORY" json:"category"`
	ClassifiedTime   int64    `db:"CLASSIFIED_TIME" json:"classifiedAt"`
	ClassifiedBy     string   `db:"CLASSIFIED_BY" json:"classifiedBy"`
}
