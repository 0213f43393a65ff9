package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeaStatus_CanTransitionTo(t *testing.T) {
	legal := map[IdeaStatus]map[IdeaStatus]bool{
		IdeaStatusSubmitted:   {IdeaStatusUnderReview: true},
		IdeaStatusUnderReview: {IdeaStatusApproved: true, IdeaStatusRejected: true},
	}

	for _, from := range IdeaStatuses {
		for _, to := range IdeaStatuses {
			expected := legal[from][to]
			assert.Equal(t, expected, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestIdeaStatus_TerminalHaveNoEdges(t *testing.T) {
	for _, s := range []IdeaStatus{IdeaStatusApproved, IdeaStatusRejected} {
		assert.True(t, s.IsTerminal())
		for _, to := range IdeaStatuses {
			assert.False(t, s.CanTransitionTo(to))
		}
	}
	assert.False(t, IdeaStatusSubmitted.IsTerminal())
	assert.False(t, IdeaStatusUnderReview.IsTerminal())
}

func TestParseIdeaStatus(t *testing.T) {
	tests := []struct {
		in       string
		expected IdeaStatus
		ok       bool
	}{
		{"Submitted", IdeaStatusSubmitted, true},
		{"under review", IdeaStatusUnderReview, true},
		{"UNDER_REVIEW", IdeaStatusUnderReview, true},
		{" approved ", IdeaStatusApproved, true},
		{"Rejected", IdeaStatusRejected, true},
		{"Closed", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseIdeaStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPriorityBanding(t *testing.T) {
	assert.Equal(t, PriorityCritical, PriorityFromScore(8.0))
	assert.Equal(t, PriorityHigh, PriorityFromScore(7.9))
	assert.Equal(t, PriorityHigh, PriorityFromScore(6.0))
	assert.Equal(t, PriorityMedium, PriorityFromScore(4.0))
	assert.Equal(t, PriorityLow, PriorityFromScore(3.9))

	assert.Equal(t, PriorityCritical, PriorityFromAdminRating(9))
	assert.Equal(t, PriorityHigh, PriorityFromAdminRating(8))
	assert.Equal(t, PriorityHigh, PriorityFromAdminRating(7))
	assert.Equal(t, PriorityMedium, PriorityFromAdminRating(4))
	assert.Equal(t, PriorityLow, PriorityFromAdminRating(3))

	// the same number bands differently on the two scales
	assert.NotEqual(t, PriorityFromScore(8), PriorityFromAdminRating(8))
}

func TestIdea_CloneIsDeep(t *testing.T) {
	cat := CategoryAutomation
	prio := 7
	remarks := "ok"
	idea := &Idea{IdeaID: "IDEA-ABCDEFGHJK", Classification: &cat, Priority: &prio, AdminRemarks: &remarks}

	c := idea.Clone()
	*c.Priority = 2
	*c.AdminRemarks = "changed"

	assert.Equal(t, 7, *idea.Priority)
	assert.Equal(t, "ok", *idea.AdminRemarks)
	assert.Equal(t, PriorityHigh, idea.PriorityLabel())
}

func TestIdeaFilter_NormalizeAndMatch(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	idea := &Idea{
		IdeaID:             "IDEA-ABCDEFGHJK",
		Title:              "Automate invoices",
		Department:         DepartmentFinance,
		SubmitterFirstName: "Jane",
		SubmitterLastName:  "Doe",
		Status:             IdeaStatusSubmitted,
		SubmittedTime:      now.Add(-2 * time.Hour).UnixMilli(),
	}

	f := IdeaFilter{DateRange: DateRangeToday, Query: "jane doe", Department: "finance"}
	require.NoError(t, f.Normalize(now))
	require.NotNil(t, f.SubmittedFrom)
	assert.True(t, f.Matches(idea))

	old := idea.Clone()
	old.SubmittedTime = now.Add(-48 * time.Hour).UnixMilli()
	assert.False(t, f.Matches(old))

	f = IdeaFilter{Status: IdeaStatusApproved}
	require.NoError(t, f.Normalize(now))
	assert.False(t, f.Matches(idea))

	bad := IdeaFilter{DateRange: "year"}
	assert.Error(t, bad.Normalize(now))
	bad = IdeaFilter{Status: "Closed"}
	assert.Error(t, bad.Normalize(now))
}

func TestStatistics_IncludesEveryStatus(t *testing.T) {
	s := NewStatistics()
	assert.Len(t, s.ByStatus, len(IdeaStatuses))

	cat := CategoryProcessImprovement
	prio := 9
	s.Add(&Idea{Status: IdeaStatusApproved, Department: DepartmentIT, Classification: &cat, Priority: &prio},
		EngineLabels{Category: CategoryAutomation, PriorityLevel: PriorityLow})
	s.Add(&Idea{Status: IdeaStatusSubmitted, Department: DepartmentIT},
		EngineLabels{Category: CategoryAutomation, PriorityLevel: PriorityHigh})
	s.Add(&Idea{Status: IdeaStatusSubmitted, Department: DepartmentHR}, EngineLabels{})

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.ByStatus[IdeaStatusApproved])
	assert.Equal(t, 0, s.ByStatus[IdeaStatusRejected])
	assert.Equal(t, 2, s.ByDepartment[DepartmentIT])

	// review fields win over the engine; unassessed ideas count nowhere
	assert.Equal(t, map[Category]int{CategoryProcessImprovement: 1, CategoryAutomation: 1}, s.ClassificationStats)
	assert.Equal(t, map[PriorityLevel]int{PriorityCritical: 1, PriorityHigh: 1}, s.EvaluationStats)
}
