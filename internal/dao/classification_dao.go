package dao

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
)

// ClassificationDAO handles database operations for classification records
type ClassificationDAO struct {
	db queryer
}

var _ store.ClassificationStore = (*ClassificationDAO)(nil)

// NewClassificationDAO creates a new ClassificationDAO instance
func NewClassificationDAO(db queryer) *ClassificationDAO {
	return &ClassificationDAO{db: db}
}

// Create inserts a new classification record
func (dao *ClassificationDAO) Create(ctx context.Context, c *models.Classification) error {
	query := `
		INSERT INTO IDEA_CLASSIFICATION (
			CLASSIFICATION_ID, IDEA_ID, CATEGORY, CLASSIFIED_TIME, CLASSIFIED_BY
		) VALUES (?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(ctx, query, c.ClassificationID, c.IdeaID, c.Category, c.ClassifiedTime, c.ClassifiedBy)
	if err != nil {
		return fmt.Errorf("failed to create classification: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent classification of an idea
func (dao *ClassificationDAO) GetLatest(ctx context.Context, ideaID string) (*models.Classification, error) {
	query := `
		SELECT CLASSIFICATION_ID, IDEA_ID, CATEGORY, CLASSIFIED_TIME, CLASSIFIED_BY
		FROM IDEA_CLASSIFICATION
		WHERE IDEA_ID = ?
		ORDER BY CLASSIFIED_TIME DESC, SEQ_ID DESC
		LIMIT 1
	`

	var c models.Classification
	if err := sqlx.GetContext(ctx, dao.db, &c, query, ideaID); err != nil {
		return nil, notFound(err, "classification for idea %s", ideaID)
	}

	return &c, nil
}

// LatestCategories returns the latest category of every classified idea.
// Latest follows the GetLatest ordering.
func (dao *ClassificationDAO) LatestCategories(ctx context.Context) (map[string]models.Category, error) {
	query := `
		SELECT c.IDEA_ID, c.CATEGORY
		FROM IDEA_CLASSIFICATION c
		WHERE c.SEQ_ID = (
			SELECT l.SEQ_ID FROM IDEA_CLASSIFICATION l
			WHERE l.IDEA_ID = c.IDEA_ID
			ORDER BY l.CLASSIFIED_TIME DESC, l.SEQ_ID DESC
			LIMIT 1
		)
	`

	var rows []struct {
		IdeaID   string          `db:"IDEA_ID"`
		Category models.Category `db:"CATEGORY"`
	}
	if err := sqlx.SelectContext(ctx, dao.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list latest classifications: %w", err)
	}

	latest := make(map[string]models.Category, len(rows))
	for _, row := range rows {
		latest[row.IdeaID] = row.Category
	}
	return latest, nil
}
