package models

import "strings"

// IdeaStatus is the lifecycle state of an idea
type IdeaStatus string

const (
	IdeaStatusSubmitted   IdeaStatus = "Submitted"
	IdeaStatusUnderReview IdeaStatus = "Under Review"
	IdeaStatusApproved    IdeaStatus = "Approved"
	IdeaStatusRejected    IdeaStatus = "Rejected"
)

// IdeaStatuses lists every status in lifecycle order
var IdeaStatuses = []IdeaStatus{
	IdeaStatusSubmitted,
	IdeaStatusUnderReview,
	IdeaStatusApproved,
	IdeaStatusRejected,
}

// ideaTransitions holds the legal edges of the idea state machine.
// Terminal states have no entry.
var ideaTransitions = map[IdeaStatus][]IdeaStatus{
	IdeaStatusSubmitted:   {IdeaStatusUnderReview},
	IdeaStatusUnderReview: {IdeaStatusApproved, IdeaStatusRejected},
}

// IsValid reports whether s is a known status
func (s IdeaStatus) IsValid() bool {
	for _, known := range IdeaStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions
func (s IdeaStatus) IsTerminal() bool {
	return s == IdeaStatusApproved || s == IdeaStatusRejected
}

// CanTransitionTo reports whether moving from s to next is a legal edge
func (s IdeaStatus) CanTransitionTo(next IdeaStatus) bool {
	for _, allowed := range ideaTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseIdeaStatus matches a status name case-insensitively.
// Underscores and hyphens are accepted in place of spaces (UNDER_REVIEW).
func ParseIdeaStatus(value string) (IdeaStatus, bool) {
	normalized := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(value))
	for _, s := range IdeaStatuses {
		if strings.EqualFold(string(s), normalized) {
			return s, true
		}
	}
	return "", false
}

// Known departments. Ideas from other departments are accepted and scored
// with the default feasibility.
const (
	DepartmentIT              = "IT"
	DepartmentHR              = "HR"
	DepartmentCosting         = "Costing"
	DepartmentLogistics       = "Logistics"
	DepartmentPlanning        = "Planning"
	DepartmentPurchasing      = "Purchasing"
	DepartmentAdmin           = "Admin"
	DepartmentOperations      = "Operations"
	DepartmentFinance         = "Finance"
	DepartmentMarketing       = "Marketing"
	DepartmentSales           = "Sales"
	DepartmentCustomerService = "Customer Service"
	DepartmentLegal           = "Legal"
)

// Known expected benefits
const (
	BenefitTimeSavings          = "Time Savings"
	BenefitCostReduction        = "Cost Reduction"
	BenefitQualityImprovement   = "Quality Improvement"
	BenefitRiskReduction        = "Risk Reduction"
	BenefitCustomerSatisfaction = "Customer Satisfaction"
	BenefitEmployeeSatisfaction = "Employee Satisfaction"
)

// Idea represents the IDEA table
type Idea struct {
	IdeaID             string     `db:"IDEA_ID" json:"id"`
	Title              string     `db:"TITLE" json:"title"`
	Description        string     `db:"DESCRIPTION" json:"description"`
	Department         string     `db:"DEPARTMENT" json:"department"`
	Country            string     `db:"COUNTRY" json:"country"`
	ExpectedBenefit    string     `db:"EXPECTED_BENEFIT" json:"expectedBenefit"`
	Frequency          string     `db:"FREQUENCY" json:"frequency"`
	SubmitterFirstName string     `db:"SUBMITTER_FIRST_NAME" json:"submitterFirstName"`
	SubmitterLastName  string     `db:"SUBMITTER_LAST_NAME" json:"submitterLastName"`
	SubmitterEmail     string     `db:"SUBMITTER_EMAIL" json:"submitterEmail"`
	CurrentProcess     *string    `db:"CURRENT_PROCESS" json:"currentProcess,omitempty"`
	IsManualProcess    *bool      `db:"IS_MANUAL_PROCESS" json:"isManualProcess,omitempty"`
	TimeSpent          *string    `db:"TIME_SPENT" json:"timeSpent,omitempty"`
	Status             IdeaStatus `db:"STATUS" json:"status"`
	Classification     *Category  `db:"CLASSIFICATION" json:"classification,omitempty"`
	Priority           *int       `db:"PRIORITY" json:"priority,omitempty"`
	AdminRemarks       *string    `db:"ADMIN_REMARKS" json:"adminRemarks,omitempty"`
	SubmittedTime      int64      `db:"SUBMITTED_TIME" json:"dateSubmitted"`
	UpdatedTime        int64      `db:"UPDATED_TIME" json:"updatedTime"`
}

// SubmitterName returns the submitter's display name
func (i *Idea) SubmitterName() string {
	return strings.TrimSpace(i.SubmitterFirstName + " " + i.SubmitterLastName)
}

// PriorityLabel returns the administrator banding of the idea's priority,
// or an empty label when no priority has been set
func (i *Idea) PriorityLabel() PriorityLevel {
	if i.Priority == nil {
		return ""
	}
	return PriorityFromAdminRating(*i.Priority)
}

// Clone returns a deep copy of the idea
func (i *Idea) Clone() *Idea {
	c := *i
	c.CurrentProcess = cloneString(i.CurrentProcess)
	c.TimeSpent = cloneString(i.TimeSpent)
	c.AdminRemarks = cloneString(i.AdminRemarks)
	if i.IsManualProcess != nil {
		v := *i.IsManualProcess
		c.IsManualProcess = &v
	}
	if i.Classification != nil {
		v := *i.Classification
		c.Classification = &v
	}
	if i.Priority != nil {
		v := *i.Priority
		c.Priority = &v
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
