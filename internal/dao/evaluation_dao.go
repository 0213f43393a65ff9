package dao

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
)

// EvaluationDAO handles database operations for evaluation records
type EvaluationDAO struct {
	db queryer
}

var _ store.EvaluationStore = (*EvaluationDAO)(nil)

// NewEvaluationDAO creates a new EvaluationDAO instance
func NewEvaluationDAO(db queryer) *EvaluationDAO {
	return &EvaluationDAO{db: db}
}

// Create inserts a new evaluation record
func (dao *EvaluationDAO) Create(ctx context.Context, e *models.EvaluationScore) error {
	query := `
		INSERT INTO IDEA_EVALUATION (
			EVALUATION_ID, IDEA_ID, IMPACT, COMPLEXITY, FEASIBILITY,
			TOTAL_SCORE, PRIORITY_LEVEL, EVALUATED_TIME, EVALUATED_BY
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		e.EvaluationID,
		e.IdeaID,
		e.Impact,
		e.Complexity,
		e.Feasibility,
		e.TotalScore,
		e.PriorityLevel,
		e.EvaluatedTime,
		e.EvaluatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent evaluation of an idea
func (dao *EvaluationDAO) GetLatest(ctx context.Context, ideaID string) (*models.EvaluationScore, error) {
	query := `
		SELECT EVALUATION_ID, IDEA_ID, IMPACT, COMPLEXITY, FEASIBILITY,
		       TOTAL_SCORE, PRIORITY_LEVEL, EVALUATED_TIME, EVALUATED_BY
		FROM IDEA_EVALUATION
		WHERE IDEA_ID = ?
		ORDER BY EVALUATED_TIME DESC, SEQ_ID DESC
		LIMIT 1
	`

	var e models.EvaluationScore
	if err := sqlx.GetContext(ctx, dao.db, &e, query, ideaID); err != nil {
		return nil, notFound(err, "evaluation for idea %s", ideaID)
	}

	return &e, nil
}

// LatestPriorityLevels returns the latest priority level of every evaluated idea
func (dao *EvaluationDAO) LatestPriorityLevels(ctx context.Context) (map[string]models.PriorityLevel, error) {
	query := `
		SELECT e.IDEA_ID, e.PRIORITY_LEVEL
		FROM IDEA_EVALUATION e
		WHERE e.SEQ_ID = (
			SELECT l.SEQ_ID FROM IDEA_EVALUATION l
			WHERE l.IDEA_ID = e.IDEA_ID
			ORDER BY l.EVALUATED_TIME DESC, l.SEQ_ID DESC
			LIMIT 1
		)
	`

	var rows []struct {
		IdeaID        string               `db:"IDEA_ID"`
		PriorityLevel models.PriorityLevel `db:"PRIORITY_LEVEL"`
	}
	if err := sqlx.SelectContext(ctx, dao.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list latest evaluations: %w", err)
	}

	latest := make(map[string]models.PriorityLevel, len(rows))
	for _, row := range rows {
		latest[row.IdeaID] = row.PriorityLevel
	}
	return latest, nil
}
