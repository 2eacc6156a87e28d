package repository

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/ledger"
	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerStore implements ledger.Store on Postgres. Each unit of work is one
// database transaction; account and goal rows are locked with FOR UPDATE so
// read-check-mutate sequences serialize per row.
type LedgerStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewLedgerStore(db *pgxpool.Pool, logger *zap.Logger) *LedgerStore {
	return &LedgerStore{
		db:     db,
		logger: logger,
	}
}

func (s *LedgerStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &ledgerTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type ledgerTx struct {
	tx pgx.Tx
}

var accountColumns = []string{
	"id", "user_id", "name", "type", "institution", "initial_balance",
	"current_balance", "currency", "color", "is_active", "created_at", "updated_at",
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.Type, &a.Institution, &a.InitialBalance,
		&a.CurrentBalance, &a.Currency, &a.Color, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (t *ledgerTx) AccountForUpdate(ctx context.Context, userID, accountID uuid.UUID) (*models.Account, error) {
	query := squirrel.Select(accountColumns...).
		From("accounts").
		Where(squirrel.Eq{"id": accountID, "user_id": userID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	account, err := scanAccount(t.tx.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (t *ledgerTx) AdjustAccountBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error {
	query := squirrel.Update("accounts").
		Set("current_balance", squirrel.Expr("current_balance + ?", delta)).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func (t *ledgerTx) InsertTransaction(ctx context.Context, tr *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns("id", "user_id", "account_id", "category_id", "type", "amount",
			"currency", "date", "description", "payment_method", "recurrence",
			"notes", "created_at", "updated_at").
		Values(tr.ID, tr.UserID, tr.AccountID, tr.CategoryID, tr.Type, tr.Amount,
			tr.Currency, tr.Date, tr.Description, tr.PaymentMethod, tr.Recurrence,
			tr.Notes, tr.CreatedAt, tr.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx, sql, args...)
	return err
}

func (t *ledgerTx) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	tr, err := scanTransaction(t.tx.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return tr, nil
}

func (t *ledgerTx) UpdateTransaction(ctx context.Context, tr *models.Transaction) error {
	query := squirrel.Update("transactions").
		Set("account_id", tr.AccountID).
		Set("category_id", tr.CategoryID).
		Set("type", tr.Type).
		Set("amount", tr.Amount).
		Set("currency", tr.Currency).
		Set("date", tr.Date).
		Set("description", tr.Description).
		Set("payment_method", tr.PaymentMethod).
		Set("recurrence", tr.Recurrence).
		Set("notes", tr.Notes).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": tr.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx, sql, args...)
	return err
}

func (t *ledgerTx) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	sql, args, err := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrTransactionNotFound
	}
	return nil
}

func (t *ledgerTx) InsertTransfer(ctx context.Context, tr *models.Transfer) error {
	query := squirrel.Insert("transfers").
		Columns("id", "user_id", "from_account_id", "to_account_id", "amount",
			"currency", "date", "description", "created_at", "updated_at").
		Values(tr.ID, tr.UserID, tr.FromAccountID, tr.ToAccountID, tr.Amount,
			tr.Currency, tr.Date, tr.Description, tr.CreatedAt, tr.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx, sql, args...)
	return err
}

func (t *ledgerTx) GetTransfer(ctx context.Context, userID, id uuid.UUID) (*models.Transfer, error) {
	query := squirrel.Select(transferColumns...).
		From("transfers").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	tr, err := scanTransfer(t.tx.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrTransferNotFound
	}
	if err != nil {
		return nil, err
	}
	return tr, nil
}

func (t *ledgerTx) UpdateTransfer(ctx context.Context, tr *models.Transfer) error {
	query := squirrel.Update("transfers").
		Set("from_account_id", tr.FromAccountID).
		Set("to_account_id", tr.ToAccountID).
		Set("amount", tr.Amount).
		Set("currency", tr.Currency).
		Set("date", tr.Date).
		Set("description", tr.Description).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": tr.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx, sql, args...)
	return err
}

func (t *ledgerTx) DeleteTransfer(ctx context.Context, id uuid.UUID) error {
	sql, args, err := squirrel.Delete("transfers").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrTransferNotFound
	}
	return nil
}

func (t *ledgerTx) GoalForUpdate(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, error) {
	query := squirrel.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"id": goalID, "user_id": userID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	goal, err := scanGoal(t.tx.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (t *ledgerTx) SetGoalProgress(ctx context.Context, goalID uuid.UUID, current decimal.Decimal, status models.GoalStatus, completed bool) error {
	query := squirrel.Update("goals").
		Set("current_amount", current).
		Set("status", status).
		Set("is_completed", completed).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": goalID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrGoalNotFound
	}
	return nil
}

func (t *ledgerTx) InsertContribution(ctx context.Context, c *models.GoalContribution) error {
	query := squirrel.Insert("goal_contributions").
		Columns("id", "user_id", "goal_id", "account_id", "transaction_id",
			"amount", "date", "description", "created_at").
		Values(c.ID, c.UserID, c.GoalID, c.AccountID, c.TransactionID,
			c.Amount, c.Date, c.Description, c.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx, sql, args...)
	return err
}

func (t *ledgerTx) GetContribution(ctx context.Context, userID, id uuid.UUID) (*models.GoalContribution, error) {
	query := squirrel.Select(contributionColumns...).
		From("goal_contributions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanContribution(t.tx.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrContributionNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (t *ledgerTx) DeleteContribution(ctx context.Context, id uuid.UUID) error {
	sql, args, err := squirrel.Delete("goal_contributions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrContributionNotFound
	}
	return nil
}
