package service

import (
	"strings"

	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/models"
)

// Default keyword lists. Matching is substring based on lower-cased text.
var (
	DefaultAutomationKeywords = []string{"automate", "automation", "bot", "rpa", "script", "automatic", "workflow automation"}
	DefaultProcessKeywords    = []string{"process", "streamline", "simplify", "reduce steps", "efficiency", "optimize"}
)

// ClassificationService assigns a category to an idea from its text.
// It holds no mutable state and is safe for concurrent use.
type ClassificationService struct {
	automationKeywords []string
	processKeywords    []string
}

// NewClassificationService creates a classifier. Empty keyword lists in cfg
// fall back to the defaults.
func NewClassificationService(cfg config.ClassificationConfig) *ClassificationService {
	s := &ClassificationService{
		automationKeywords: DefaultAutomationKeywords,
		processKeywords:    DefaultProcessKeywords,
	}
	if len(cfg.AutomationKeywords) > 0 {
		s.automationKeywords = lowerAll(cfg.AutomationKeywords)
	}
	if len(cfg.ProcessKeywords) > 0 {
		s.processKeywords = lowerAll(cfg.ProcessKeywords)
	}
	return s
}

// Classify returns the category for the idea's title and description.
// Automation keywords are checked before process keywords.
func (s *ClassificationService) Classify(title, description string) models.Category {
	text := strings.ToLower(title + " " + description)

	if containsAny(text, s.automationKeywords) {
		return models.CategoryAutomation
	}
	if containsAny(text, s.processKeywords) {
		return models.CategoryProcessImprovement
	}
	return models.CategoryOperationalEnhancement
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
