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

var transferColumns = []string{
	"id", "user_id", "from_account_id", "to_account_id", "amount", "currency",
	"date", "description", "created_at", "updated_at",
}

func scanTransfer(row pgx.Row) (*models.Transfer, error) {
	var t models.Transfer
	err := row.Scan(
		&t.ID, &t.UserID, &t.FromAccountID, &t.ToAccountID, &t.Amount,
		&t.Currency, &t.Date, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type TransferRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransferRepository(db *pgxpool.Pool, logger *zap.Logger) *TransferRepository {
	return &TransferRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransferRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Transfer, error) {
	query := squirrel.Select(transferColumns...).
		From("transfers").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	t, err := scanTransfer(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrTransferNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TransferRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Transfer, error) {
	query := squirrel.Select(transferColumns...).
		From("transfers").
		Where(squirrel.Eq{"user_id": userID}).
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

	var transfers []*models.Transfer
	for rows.Next() {
		var t models.Transfer
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.FromAccountID, &t.ToAccountID, &t.Amount,
			&t.Currency, &t.Date, &t.Description, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transfers = append(transfers, &t)
	}

	return transfers, rows.Err()
}
