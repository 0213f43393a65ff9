package models

import "strings"

// IdeaSubmitRequest represents the submission form payload
type IdeaSubmitRequest struct {
	Title              string  `json:"title" binding:"required,max=255"`
	Description        string  `json:"description" binding:"required"`
	Department         string  `json:"department" binding:"required,max=64"`
	Country            string  `json:"country" binding:"required,max=64"`
	ExpectedBenefit    string  `json:"expectedBenefit" binding:"required,max=64"`
	Frequency          string  `json:"frequency" binding:"required,max=64"`
	SubmitterFirstName string  `json:"submitterFirstName" binding:"required,max=128"`
	SubmitterLastName  string  `json:"submitterLastName" binding:"required,max=128"`
	SubmitterEmail     string  `json:"submitterEmail" binding:"required,email"`
	CurrentProcess     *string `json:"currentProcess,omitempty"`
	IsManualProcess    *bool   `json:"isManualProcess,omitempty"`
	TimeSpent          *string `json:"timeSpent,omitempty" binding:"omitempty,max=64"`
}

// Sanitize trims surrounding whitespace from all text fields
func (r *IdeaSubmitRequest) Sanitize() {
	for _, f := range []*string{
		&r.Title, &r.Description, &r.Department, &r.Country, &r.ExpectedBenefit,
		&r.Frequency, &r.SubmitterFirstName, &r.SubmitterLastName, &r.SubmitterEmail,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// ReviewPatch carries optional review fields applied with a status change.
// A nil field is a no-op, never a clear.
type ReviewPatch struct {
	Classification *Category
	Priority       *int
	Remarks        *string
}

// StatusUpdateRequest represents the review form payload
type StatusUpdateRequest struct {
	Status         string  `json:"status" binding:"required"`
	Classification *string `json:"classification,omitempty"`
	Priority       *int    `json:"priority,omitempty" binding:"omitempty,min=1,max=10"`
	Remarks        *string `json:"remarks,omitempty"`
}

// ToReviewPatch converts the request into a review patch
func (r *StatusUpdateRequest) ToReviewPatch() ReviewPatch {
	patch := ReviewPatch{
		Priority: r.Priority,
		Remarks:  r.Remarks,
	}
	if r.Classification != nil {
		c := Category(strings.TrimSpace(*r.Classification))
		patch.Classification = &c
	}
	return patch
}

// AssignReviewerRequest represents a reviewer assignment payload
type AssignReviewerRequest struct {
	Reviewer string `json:"reviewer" binding:"required,max=128"`
}

// IdeaResult is returned by write operations. Degraded is set when the
// primary change was committed but a best-effort side effect (audit entry,
// event notification) failed.
type IdeaResult struct {
	Idea     *Idea    `json:"idea"`
	Degraded bool     `json:"degraded"`
	Warnings []string `json:"warnings,omitempty"`
}

// AddWarning records a failed best-effort side effect
func (r *IdeaResult) AddWarning(message string) {
	r.Degraded = true
	r.Warnings = append(r.Warnings, message)
}
