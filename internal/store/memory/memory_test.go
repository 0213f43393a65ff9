package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
)

func newIdea(id string, submitted int64) *models.Idea {
	return &models.Idea{
		IdeaID:        id,
		Title:         "Idea " + id,
		Department:    models.DepartmentIT,
		Status:        models.IdeaStatusSubmitted,
		SubmittedTime: submitted,
		UpdatedTime:   submitted,
	}
}

func TestStore_IdeaRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	idea := newIdea("IDEA-AAAAAAAAAA", 100)
	require.NoError(t, s.Ideas().Create(ctx, idea))
	assert.ErrorIs(t, s.Ideas().Create(ctx, idea), store.ErrDuplicate)

	// callers cannot mutate stored state through their copy
	idea.Title = "changed"
	got, err := s.Ideas().Get(ctx, "IDEA-AAAAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, "Idea IDEA-AAAAAAAAAA", got.Title)

	exists, err := s.Ideas().Exists(ctx, "IDEA-AAAAAAAAAA")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = s.Ideas().Get(ctx, "IDEA-MISSING000")
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.ErrorIs(t, s.Ideas().Update(ctx, newIdea("IDEA-MISSING000", 1)), store.ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Ideas().Create(ctx, newIdea("IDEA-AAAAAAAAAA", 100)))
	require.NoError(t, s.Ideas().Create(ctx, newIdea("IDEA-BBBBBBBBBB", 300)))
	require.NoError(t, s.Ideas().Create(ctx, newIdea("IDEA-CCCCCCCCCC", 200)))

	ideas, err := s.Ideas().List(ctx, models.IdeaFilter{})
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, "IDEA-BBBBBBBBBB", ideas[0].IdeaID)
	assert.Equal(t, "IDEA-CCCCCCCCCC", ideas[1].IdeaID)
	assert.Equal(t, "IDEA-AAAAAAAAAA", ideas[2].IdeaID)

	from := int64(150)
	ideas, err = s.Ideas().List(ctx, models.IdeaFilter{SubmittedFrom: &from})
	require.NoError(t, err)
	assert.Len(t, ideas, 2)
}

func TestStore_InTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx store.Store) error {
		require.NoError(t, tx.Ideas().Create(ctx, newIdea("IDEA-AAAAAAAAAA", 1)))
		require.NoError(t, tx.Workflows().Create(ctx, &models.Workflow{IdeaID: "IDEA-AAAAAAAAAA"}))
		require.NoError(t, tx.AuditLogs().Create(ctx, &models.AuditLog{IdeaID: "IDEA-AAAAAAAAAA"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, _ := s.Ideas().Exists(ctx, "IDEA-AAAAAAAAAA")
	assert.False(t, exists)
	_, err = s.Workflows().GetByIdeaID(ctx, "IDEA-AAAAAAAAAA")
	assert.ErrorIs(t, err, store.ErrNotFound)
	logs, _ := s.AuditLogs().ListAll(ctx)
	assert.Empty(t, logs)
}

func TestStore_InTxCommits(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.InTx(ctx, func(tx store.Store) error {
		if err := tx.Ideas().Create(ctx, newIdea("IDEA-AAAAAAAAAA", 1)); err != nil {
			return err
		}
		// nested transactions join the outer one
		return tx.InTx(ctx, func(inner store.Store) error {
			return inner.Classifications().Create(ctx, &models.Classification{IdeaID: "IDEA-AAAAAAAAAA", Category: models.CategoryAutomation})
		})
	})
	require.NoError(t, err)

	exists, _ := s.Ideas().Exists(ctx, "IDEA-AAAAAAAAAA")
	assert.True(t, exists)
	c, err := s.Classifications().GetLatest(ctx, "IDEA-AAAAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryAutomation, c.Category)
}

func TestStore_AuditLogsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.AuditLogs().Create(ctx, &models.AuditLog{AuditID: "a1", IdeaID: "X", PerformedTime: 10}))
	require.NoError(t, s.AuditLogs().Create(ctx, &models.AuditLog{AuditID: "a2", IdeaID: "Y", PerformedTime: 20}))
	require.NoError(t, s.AuditLogs().Create(ctx, &models.AuditLog{AuditID: "a3", IdeaID: "X", PerformedTime: 20}))

	all, err := s.AuditLogs().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a3", "a2", "a1"}, []string{all[0].AuditID, all[1].AuditID, all[2].AuditID})

	forX, err := s.AuditLogs().ListByIdeaID(ctx, "X")
	require.NoError(t, err)
	require.Len(t, forX, 2)
	assert.Equal(t, "a3", forX[0].AuditID)
}

func TestStore_LatestRecordWins(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Evaluations().Create(ctx, &models.EvaluationScore{EvaluationID: "e1", IdeaID: "X", TotalScore: 5}))
	require.NoError(t, s.Evaluations().Create(ctx, &models.EvaluationScore{EvaluationID: "e2", IdeaID: "X", TotalScore: 7}))

	e, err := s.Evaluations().GetLatest(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, "e2", e.EvaluationID)

	_, err = s.Evaluations().GetLatest(ctx, "Y")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_LatestLabelsPerIdea(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Classifications().Create(ctx, &models.Classification{ClassificationID: "c1", IdeaID: "X", Category: models.CategoryAutomation}))
	require.NoError(t, s.Classifications().Create(ctx, &models.Classification{ClassificationID: "c2", IdeaID: "Y", Category: models.CategoryAutomation}))
	require.NoError(t, s.Classifications().Create(ctx, &models.Classification{ClassificationID: "c3", IdeaID: "X", Category: models.CategoryProcessImprovement}))
	require.NoError(t, s.Evaluations().Create(ctx, &models.EvaluationScore{EvaluationID: "e1", IdeaID: "X", PriorityLevel: models.PriorityLow}))
	require.NoError(t, s.Evaluations().Create(ctx, &models.EvaluationScore{EvaluationID: "e2", IdeaID: "X", PriorityLevel: models.PriorityHigh}))

	categories, err := s.Classifications().LatestCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]models.Category{"X": models.CategoryProcessImprovement, "Y": models.CategoryAutomation}, categories)

	levels, err := s.Evaluations().LatestPriorityLevels(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]models.PriorityLevel{"X": models.PriorityHigh}, levels)
}
