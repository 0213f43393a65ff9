package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/wso2/idea-management-api/pkg/utils"
)

// Date range shortcuts used by the admin log view
const (
	DateRangeAll   = "all"
	DateRangeToday = "today"
	DateRangeWeek  = "week"
	DateRangeMonth = "month"
)

// IdeaFilter narrows an idea listing. Zero values mean no constraint.
type IdeaFilter struct {
	Status     IdeaStatus
	Department string
	// Query matches title, submitter name or id, case-insensitively
	Query string
	// DateRange is one of all, today, week, month. It is resolved into
	// SubmittedFrom by Normalize.
	DateRange     string
	SubmittedFrom *int64
	SubmittedTo   *int64
}

// Normalize validates the filter and resolves DateRange relative to now
func (f *IdeaFilter) Normalize(now time.Time) error {
	if f.Status != "" && !f.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", f.Status)
	}

	var from int64
	switch f.DateRange {
	case "", DateRangeAll:
		return nil
	case DateRangeToday:
		from = utils.StartOfDayMillis(now)
	case DateRangeWeek:
		from = utils.DaysAgoMillis(now, 7)
	case DateRangeMonth:
		from = utils.DaysAgoMillis(now, 30)
	default:
		return fmt.Errorf("invalid date range: %s", f.DateRange)
	}
	if f.SubmittedFrom == nil || *f.SubmittedFrom < from {
		f.SubmittedFrom = &from
	}
	return nil
}

// Matches reports whether the idea satisfies every constraint of the filter.
// DateRange must already be resolved by Normalize.
func (f *IdeaFilter) Matches(idea *Idea) bool {
	if f.Status != "" && idea.Status != f.Status {
		return false
	}
	if f.Department != "" && !strings.EqualFold(idea.Department, f.Department) {
		return false
	}
	if f.SubmittedFrom != nil && idea.SubmittedTime < *f.SubmittedFrom {
		return false
	}
	if f.SubmittedTo != nil && idea.SubmittedTime > *f.SubmittedTo {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(idea.Title), q) ||
			strings.Contains(strings.ToLower(idea.SubmitterName()), q) ||
			strings.Contains(strings.ToLower(idea.IdeaID), q)
	}
	return true
}
