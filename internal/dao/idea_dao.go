package dao

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/store"
)

var ideaColumns = []string{
	"IDEA_ID", "TITLE", "DESCRIPTION", "DEPARTMENT", "COUNTRY", "EXPECTED_BENEFIT",
	"FREQUENCY", "SUBMITTER_FIRST_NAME", "SUBMITTER_LAST_NAME", "SUBMITTER_EMAIL",
	"CURRENT_PROCESS", "IS_MANUAL_PROCESS", "TIME_SPENT", "STATUS", "CLASSIFICATION",
	"PRIORITY", "ADMIN_REMARKS", "SUBMITTED_TIME", "UPDATED_TIME",
}

// IdeaDAO handles database operations for ideas
type IdeaDAO struct {
	db queryer
}

var _ store.IdeaStore = (*IdeaDAO)(nil)

// NewIdeaDAO creates a new IdeaDAO instance
func NewIdeaDAO(db queryer) *IdeaDAO {
	return &IdeaDAO{db: db}
}

// Create inserts a new idea
func (dao *IdeaDAO) Create(ctx context.Context, idea *models.Idea) error {
	query := `
		INSERT INTO IDEA (
			IDEA_ID, TITLE, DESCRIPTION, DEPARTMENT, COUNTRY, EXPECTED_BENEFIT,
			FREQUENCY, SUBMITTER_FIRST_NAME, SUBMITTER_LAST_NAME, SUBMITTER_EMAIL,
			CURRENT_PROCESS, IS_MANUAL_PROCESS, TIME_SPENT, STATUS, CLASSIFICATION,
			PRIORITY, ADMIN_REMARKS, SUBMITTED_TIME, UPDATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		idea.IdeaID,
		idea.Title,
		idea.Description,
		idea.Department,
		idea.Country,
		idea.ExpectedBenefit,
		idea.Frequency,
		idea.SubmitterFirstName,
		idea.SubmitterLastName,
		idea.SubmitterEmail,
		idea.CurrentProcess,
		idea.IsManualProcess,
		idea.TimeSpent,
		idea.Status,
		idea.Classification,
		idea.Priority,
		idea.AdminRemarks,
		idea.SubmittedTime,
		idea.UpdatedTime,
	)
	if err != nil {
		return createFailed(err, "idea")
	}

	return nil
}

// Get retrieves an idea by ID
func (dao *IdeaDAO) Get(ctx context.Context, ideaID string) (*models.Idea, error) {
	query := "SELECT " + strings.Join(ideaColumns, ", ") + " FROM IDEA WHERE IDEA_ID = ?"

	var idea models.Idea
	if err := sqlx.GetContext(ctx, dao.db, &idea, query, ideaID); err != nil {
		return nil, notFound(err, "idea %s", ideaID)
	}

	return &idea, nil
}

// Exists checks whether an idea with the given ID exists
func (dao *IdeaDAO) Exists(ctx context.Context, ideaID string) (bool, error) {
	query := `SELECT COUNT(*) FROM IDEA WHERE IDEA_ID = ?`

	var count int
	if err := sqlx.GetContext(ctx, dao.db, &count, query, ideaID); err != nil {
		return false, fmt.Errorf("failed to check idea existence: %w", err)
	}

	return count > 0, nil
}

// Update overwrites the mutable fields of an idea
func (dao *IdeaDAO) Update(ctx context.Context, idea *models.Idea) error {
	query := `
		UPDATE IDEA
		SET STATUS = ?, CLASSIFICATION = ?, PRIORITY = ?, ADMIN_REMARKS = ?, UPDATED_TIME = ?
		WHERE IDEA_ID = ?
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		idea.Status,
		idea.Classification,
		idea.Priority,
		idea.AdminRemarks,
		idea.UpdatedTime,
		idea.IdeaID,
	)
	if err != nil {
		return fmt.Errorf("failed to update idea: %w", err)
	}

	return nil
}

// List retrieves ideas matching the filter, newest submission first
func (dao *IdeaDAO) List(ctx context.Context, filter models.IdeaFilter) ([]models.Idea, error) {
	query, args, err := buildIdeaListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build idea query: %w", err)
	}

	ideas := []models.Idea{}
	if err := sqlx.SelectContext(ctx, dao.db, &ideas, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}

	return ideas, nil
}

func buildIdeaListQuery(filter models.IdeaFilter) sq.SelectBuilder {
	query := sq.Select(ideaColumns...).From("IDEA")

	if filter.Status != "" {
		query = query.Where(sq.Eq{"STATUS": filter.Status})
	}
	if filter.Department != "" {
		query = query.Where(sq.Eq{"LOWER(DEPARTMENT)": strings.ToLower(filter.Department)})
	}
	if filter.SubmittedFrom != nil {
		query = query.Where(sq.GtOrEq{"SUBMITTED_TIME": *filter.SubmittedFrom})
	}
	if filter.SubmittedTo != nil {
		query = query.Where(sq.LtOrEq{"SUBMITTED_TIME": *filter.SubmittedTo})
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		pattern := "%" + q + "%"
		query = query.Where(sq.Or{
			sq.Like{"LOWER(TITLE)": pattern},
			sq.Like{"LOWER(CONCAT(SUBMITTER_FIRST_NAME, ' ', SUBMITTER_LAST_NAME))": pattern},
			sq.Like{"LOWER(IDEA_ID)": pattern},
		})
	}

	return query.OrderBy("SUBMITTED_TIME DESC", "IDEA_ID ASC")
}
