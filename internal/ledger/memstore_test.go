package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/ledger"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var errStorage = errors.New("storage failure")

// memStore is an in-memory ledger.Store. WithinTx snapshots all state up
// front and restores it when the unit fails, mirroring a database rollback.
type memStore struct {
	accounts      map[uuid.UUID]models.Account
	transactions  map[uuid.UUID]models.Transaction
	transfers     map[uuid.UUID]models.Transfer
	goals         map[uuid.UUID]models.Goal
	contributions map[uuid.UUID]models.GoalContribution

	// failAdjustAt makes the Nth AdjustAccountBalance call of the current
	// unit fail, to exercise mid-unit rollback.
	failAdjustAt int
}

func newMemStore() *memStore {
	return &memStore{
		accounts:      make(map[uuid.UUID]models.Account),
		transactions:  make(map[uuid.UUID]models.Transaction),
		transfers:     make(map[uuid.UUID]models.Transfer),
		goals:         make(map[uuid.UUID]models.Goal),
		contributions: make(map[uuid.UUID]models.GoalContribution),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	accounts := cloneMap(s.accounts)
	transactions := cloneMap(s.transactions)
	transfers := cloneMap(s.transfers)
	goals := cloneMap(s.goals)
	contributions := cloneMap(s.contributions)

	if err := fn(ctx, &memTx{store: s}); err != nil {
		s.accounts = accounts
		s.transactions = transactions
		s.transfers = transfers
		s.goals = goals
		s.contributions = contributions
		return err
	}
	return nil
}

type memTx struct {
	store       *memStore
	adjustCalls int
}

func (t *memTx) AccountForUpdate(ctx context.Context, userID, accountID uuid.UUID) (*models.Account, error) {
	a, ok := t.store.accounts[accountID]
	if !ok || a.UserID != userID {
		return nil, ledger.ErrAccountNotFound
	}
	return &a, nil
}

func (t *memTx) AdjustAccountBalance(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error {
	t.adjustCalls++
	if t.store.failAdjustAt > 0 && t.adjustCalls == t.store.failAdjustAt {
		return errStorage
	}
	a, ok := t.store.accounts[accountID]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	a.CurrentBalance = a.CurrentBalance.Add(delta)
	t.store.accounts[accountID] = a
	return nil
}

func (t *memTx) InsertTransaction(ctx context.Context, tr *models.Transaction) error {
	t.store.transactions[tr.ID] = *tr
	return nil
}

func (t *memTx) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	tr, ok := t.store.transactions[id]
	if !ok || tr.UserID != userID {
		return nil, ledger.ErrTransactionNotFound
	}
	return &tr, nil
}

func (t *memTx) UpdateTransaction(ctx context.Context, tr *models.Transaction) error {
	if _, ok := t.store.transactions[tr.ID]; !ok {
		return ledger.ErrTransactionNotFound
	}
	t.store.transactions[tr.ID] = *tr
	return nil
}

func (t *memTx) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, ok := t.store.transactions[id]; !ok {
		return ledger.ErrTransactionNotFound
	}
	delete(t.store.transactions, id)
	return nil
}

func (t *memTx) InsertTransfer(ctx context.Context, tr *models.Transfer) error {
	t.store.transfers[tr.ID] = *tr
	return nil
}

func (t *memTx) GetTransfer(ctx context.Context, userID, id uuid.UUID) (*models.Transfer, error) {
	tr, ok := t.store.transfers[id]
	if !ok || tr.UserID != userID {
		return nil, ledger.ErrTransferNotFound
	}
	return &tr, nil
}

func (t *memTx) UpdateTransfer(ctx context.Context, tr *models.Transfer) error {
	if _, ok := t.store.transfers[tr.ID]; !ok {
		return ledger.ErrTransferNotFound
	}
	t.store.transfers[tr.ID] = *tr
	return nil
}

func (t *memTx) DeleteTransfer(ctx context.Context, id uuid.UUID) error {
	if _, ok := t.store.transfers[id]; !ok {
		return ledger.ErrTransferNotFound
	}
	delete(t.store.transfers, id)
	return nil
}

func (t *memTx) GoalForUpdate(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, error) {
	g, ok := t.store.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, ledger.ErrGoalNotFound
	}
	return &g, nil
}

func (t *memTx) SetGoalProgress(ctx context.Context, goalID uuid.UUID, current decimal.Decimal, status models.GoalStatus, completed bool) error {
	g, ok := t.store.goals[goalID]
	if !ok {
		return ledger.ErrGoalNotFound
	}
	g.CurrentAmount = current
	g.Status = status
	g.IsCompleted = completed
	t.store.goals[goalID] = g
	return nil
}

func (t *memTx) InsertContribution(ctx context.Context, c *models.GoalContribution) error {
	t.store.contributions[c.ID] = *c
	return nil
}

func (t *memTx) GetContribution(ctx context.Context, userID, id uuid.UUID) (*models.GoalContribution, error) {
	c, ok := t.store.contributions[id]
	if !ok || c.UserID != userID {
		return nil, ledger.ErrContributionNotFound
	}
	return &c, nil
}

func (t *memTx) DeleteContribution(ctx context.Context, id uuid.UUID) error {
	if _, ok := t.store.contributions[id]; !ok {
		return ledger.ErrContributionNotFound
	}
	delete(t.store.contributions, id)
	return nil
}

// Test fixtures.

func newEngine(store *memStore) *ledger.Engine {
	return ledger.NewEngine(store, zap.NewNop())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func addAccount(store *memStore, userID uuid.UUID, balance string) uuid.UUID {
	id := uuid.New()
	store.accounts[id] = models.Account{
		ID:             id,
		UserID:         userID,
		Name:           "account",
		Type:           models.AccountChecking,
		InitialBalance: dec(balance),
		CurrentBalance: dec(balance),
		Currency:       "USD",
		IsActive:       true,
	}
	return id
}

func addGoal(store *memStore, userID uuid.UUID, current, target string) uuid.UUID {
	id := uuid.New()
	store.goals[id] = models.Goal{
		ID:            id,
		UserID:        userID,
		Name:          "goal",
		TargetAmount:  dec(target),
		CurrentAmount: dec(current),
		Currency:      "USD",
		Status:        models.GoalActive,
	}
	return id
}

func newTransaction(userID, accountID uuid.UUID, txType models.TransactionType, amount string) *models.Transaction {
	now := time.Now()
	return &models.Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		AccountID:  accountID,
		Type:       txType,
		Amount:     dec(amount),
		Currency:   "USD",
		Date:       now,
		Recurrence: models.RecurrenceNone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func newTransfer(userID, fromID, toID uuid.UUID, amount string) *models.Transfer {
	now := time.Now()
	return &models.Transfer{
		ID:            uuid.New(),
		UserID:        userID,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        dec(amount),
		Currency:      "USD",
		Date:          now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func newContribution(userID, goalID uuid.UUID, accountID *uuid.UUID, amount string) *models.GoalContribution {
	now := time.Now()
	return &models.GoalContribution{
		ID:        uuid.New(),
		UserID:    userID,
		GoalID:    goalID,
		AccountID: accountID,
		Amount:    dec(amount),
		Date:      now,
		CreatedAt: now,
	}
}

func balance(t *testing.T, store *memStore, accountID uuid.UUID) decimal.Decimal {
	t.Helper()
	a, ok := store.accounts[accountID]
	if !ok {
		t.Fatalf("account %s not found", accountID)
	}
	return a.CurrentBalance
}

func requireBalance(t *testing.T, store *memStore, accountID uuid.UUID, want string) {
	t.Helper()
	got := balance(t, store, accountID)
	if !got.Equal(dec(want)) {
		t.Fatalf("balance = %s, want %s", got, want)
	}
}
