package repository

import (
	"context"
	"errors"

	"fintrack/internal/ledger"
	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var goalColumns = []string{
	"id", "user_id", "category_id", "name", "description", "target_amount",
	"current_amount", "currency", "deadline", "status", "is_completed",
	"created_at", "updated_at",
}

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var g models.Goal
	err := row.Scan(
		&g.ID, &g.UserID, &g.CategoryID, &g.Name, &g.Description, &g.TargetAmount,
		&g.CurrentAmount, &g.Currency, &g.Deadline, &g.Status, &g.IsCompleted,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

var contributionColumns = []string{
	"id", "user_id", "goal_id", "account_id", "transaction_id", "amount",
	"date", "description", "created_at",
}

func scanContribution(row pgx.Row) (*models.GoalContribution, error) {
	var c models.GoalContribution
	err := row.Scan(
		&c.ID, &c.UserID, &c.GoalID, &c.AccountID, &c.TransactionID, &c.Amount,
		&c.Date, &c.Description, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GoalRepository) Create(ctx context.Context, g *models.Goal) error {
	query := squirrel.Insert("goals").
		Columns(goalColumns...).
		Values(g.ID, g.UserID, g.CategoryID, g.Name, g.Description, g.TargetAmount,
			g.CurrentAmount, g.Currency, g.Deadline, g.Status, g.IsCompleted,
			g.CreatedAt, g.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	query := squirrel.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	goal, err := scanGoal(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error) {
	query := squirrel.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.CategoryID, &g.Name, &g.Description, &g.TargetAmount,
			&g.CurrentAmount, &g.Currency, &g.Deadline, &g.Status, &g.IsCompleted,
			&g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, &g)
	}

	return goals, rows.Err()
}

// UpdateDetails writes the user-editable fields; current_amount and the
// completion flags belong to the ledger engine.
func (r *GoalRepository) UpdateDetails(ctx context.Context, g *models.Goal) error {
	query := squirrel.Update("goals").
		Set("category_id", g.CategoryID).
		Set("name", g.Name).
		Set("description", g.Description).
		Set("target_amount", g.TargetAmount).
		Set("deadline", g.Deadline).
		Set("status", g.Status).
		Set("is_completed", g.IsCompleted).
		Set("updated_at", g.UpdatedAt).
		Where(squirrel.Eq{"id": g.ID, "user_id": g.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrGoalNotFound
	}
	return nil
}

// Delete removes the goal; its contributions cascade in the schema.
func (r *GoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	sql, args, err := squirrel.Delete("goals").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrGoalNotFound
	}
	return nil
}

func (r *GoalRepository) ListContributions(ctx context.Context, userID, goalID uuid.UUID) ([]*models.GoalContribution, error) {
	query := squirrel.Select(contributionColumns...).
		From("goal_contributions").
		Where(squirrel.Eq{"user_id": userID, "goal_id": goalID}).
		OrderBy("date DESC, created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contributions []*models.GoalContribution
	for rows.Next() {
		var c models.GoalContribution
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.GoalID, &c.AccountID, &c.TransactionID, &c.Amount,
			&c.Date, &c.Description, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		contributions = append(contributions, &c)
	}

	return contributions, rows.Err()
}
