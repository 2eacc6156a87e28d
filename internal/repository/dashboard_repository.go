package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type DashboardRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDashboardRepository(db *pgxpool.Pool, logger *zap.Logger) *DashboardRepository {
	return &DashboardRepository{
		db:     db,
		logger: logger,
	}
}

// NetWorth sums current balances over the user's active accounts.
func (r *DashboardRepository) NetWorth(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	query := squirrel.Select("COALESCE(SUM(current_balance), 0)").
		From("accounts").
		Where(squirrel.Eq{"user_id": userID, "is_active": true}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumByType totals transaction amounts of one type in [from, to).
func (r *DashboardRepository) SumByType(ctx context.Context, userID uuid.UUID, txType string, from, to time.Time) (decimal.Decimal, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID, "type": txType}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// GoalProgress returns totals saved and targeted across the user's goals.
func (r *DashboardRepository) GoalProgress(ctx context.Context, userID uuid.UUID) (saved, target decimal.Decimal, err error) {
	query := squirrel.Select("COALESCE(SUM(current_amount), 0)", "COALESCE(SUM(target_amount), 0)").
		From("goals").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&saved, &target); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return saved, target, nil
}
