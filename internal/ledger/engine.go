// Package ledger keeps account balances consistent with the money-moving
// records they derive from. Every event (transaction, transfer, goal
// contribution) mutates its record and the affected balances inside one
// atomic unit; updates always reverse the old effect before applying the
// new one.
package ledger

import (
	"bytes"
	"context"
	"sort"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store opens atomic units of work.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the set of persistence operations available inside one atomic unit.
// All lookups are scoped by owner; a miss or a foreign owner yields the
// matching NotFound error. AccountForUpdate and GoalForUpdate must lock the
// row for the remainder of the unit.
type Tx interface {
	AccountForUpdate(ctx context.Context, userID, accountID uuid.UUID) (*models.Account, error)
	AdjustAccountBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error

	InsertTransaction(ctx context.Context, t *models.Transaction) error
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	InsertTransfer(ctx context.Context, t *models.Transfer) error
	GetTransfer(ctx context.Context, userID, id uuid.UUID) (*models.Transfer, error)
	UpdateTransfer(ctx context.Context, t *models.Transfer) error
	DeleteTransfer(ctx context.Context, id uuid.UUID) error

	GoalForUpdate(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, error)
	SetGoalProgress(ctx context.Context, goalID uuid.UUID, current decimal.Decimal, status models.GoalStatus, completed bool) error

	InsertContribution(ctx context.Context, c *models.GoalContribution) error
	GetContribution(ctx context.Context, userID, id uuid.UUID) (*models.GoalContribution, error)
	DeleteContribution(ctx context.Context, id uuid.UUID) error
}

type Engine struct {
	store  Store
	logger *zap.Logger
}

func NewEngine(store Store, logger *zap.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
	}
}

// signedAmount is the balance effect of a transaction on its account.
func signedAmount(t *models.Transaction) decimal.Decimal {
	if t.Type == models.TransactionIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// lockAccounts locks the given accounts in a fixed UUID order so two
// concurrent events touching the same pair cannot deadlock. Duplicate ids
// are locked once.
func lockAccounts(ctx context.Context, tx Tx, userID uuid.UUID, ids ...uuid.UUID) (map[uuid.UUID]*models.Account, error) {
	order := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		return bytes.Compare(order[i][:], order[j][:]) < 0
	})

	accounts := make(map[uuid.UUID]*models.Account, len(order))
	for _, id := range order {
		account, err := tx.AccountForUpdate(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		accounts[id] = account
	}
	return accounts, nil
}
