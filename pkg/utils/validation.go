package utils

import "fmt"

// ValidateIdeaID validates idea reference format
func ValidateIdeaID(ideaID string) error {
	if ideaID == "" {
		return fmt.Errorf("idea ID cannot be empty")
	}
	if len(ideaID) > 64 {
		return fmt.Errorf("idea ID too long (max 64 characters)")
	}
	return nil
}

// ValidateRange validates that an integer lies within [min, max]
func ValidateRange(fieldName string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d", fieldName, min, max)
	}
	return nil
}
