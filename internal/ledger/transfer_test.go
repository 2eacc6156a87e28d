package ledger_test

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestTransferLifecycle(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountA := addAccount(store, userID, "500")
	accountB := addAccount(store, userID, "100")
	engine := newEngine(store)
	ctx := context.Background()

	tr := newTransfer(userID, accountA, accountB, "200")
	if err := engine.CreateTransfer(ctx, tr); err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	requireBalance(t, store, accountA, "300")
	requireBalance(t, store, accountB, "300")

	tr.Amount = dec("50")
	if err := engine.UpdateTransfer(ctx, tr); err != nil {
		t.Fatalf("UpdateTransfer: %v", err)
	}
	requireBalance(t, store, accountA, "450")
	requireBalance(t, store, accountB, "150")

	if err := engine.DeleteTransfer(ctx, userID, tr.ID); err != nil {
		t.Fatalf("DeleteTransfer: %v", err)
	}
	requireBalance(t, store, accountA, "500")
	requireBalance(t, store, accountB, "100")
	if len(store.transfers) != 0 {
		t.Fatal("transfer record should be gone")
	}
}

func TestTransferRejectsSameAccount(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountA := addAccount(store, userID, "500")
	engine := newEngine(store)

	tr := newTransfer(userID, accountA, accountA, "50")
	err := engine.CreateTransfer(context.Background(), tr)
	if !errors.Is(err, ledger.ErrSameAccount) {
		t.Fatalf("err = %v, want ErrSameAccount", err)
	}
	requireBalance(t, store, accountA, "500")
	if len(store.transfers) != 0 {
		t.Fatal("no record should be persisted")
	}
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountA := addAccount(store, userID, "500")
	accountB := addAccount(store, userID, "100")
	engine := newEngine(store)

	tr := newTransfer(userID, accountA, accountB, "0")
	err := engine.CreateTransfer(context.Background(), tr)
	if !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	requireBalance(t, store, accountA, "500")
	requireBalance(t, store, accountB, "100")
}

func TestTransferRejectsForeignAccount(t *testing.T) {
	store := newMemStore()
	owner := uuid.New()
	other := uuid.New()
	accountA := addAccount(store, owner, "500")
	accountB := addAccount(store, other, "100")
	engine := newEngine(store)

	tr := newTransfer(owner, accountA, accountB, "50")
	err := engine.CreateTransfer(context.Background(), tr)
	if !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
	requireBalance(t, store, accountA, "500")
	requireBalance(t, store, accountB, "100")
}

func TestUpdateTransferRedirectsAccounts(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountA := addAccount(store, userID, "500")
	accountB := addAccount(store, userID, "100")
	accountC := addAccount(store, userID, "0")
	engine := newEngine(store)
	ctx := context.Background()

	tr := newTransfer(userID, accountA, accountB, "200")
	if err := engine.CreateTransfer(ctx, tr); err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}

	tr.ToAccountID = accountC
	tr.Amount = dec("120")
	if err := engine.UpdateTransfer(ctx, tr); err != nil {
		t.Fatalf("UpdateTransfer: %v", err)
	}

	requireBalance(t, store, accountA, "380")
	requireBalance(t, store, accountB, "100")
	requireBalance(t, store, accountC, "120")
}

// Transfers move money, they never mint or destroy it.
func TestTransfersAreZeroSum(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	ids := []uuid.UUID{
		addAccount(store, userID, "1000"),
		addAccount(store, userID, "750.50"),
		addAccount(store, userID, "0"),
	}
	engine := newEngine(store)
	ctx := context.Background()

	total := func() decimal.Decimal {
		sum := decimal.Zero
		for _, id := range ids {
			sum = sum.Add(store.accounts[id].CurrentBalance)
		}
		return sum
	}
	initial := total()

	first := newTransfer(userID, ids[0], ids[1], "333.33")
	second := newTransfer(userID, ids[1], ids[2], "500")
	if err := engine.CreateTransfer(ctx, first); err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if err := engine.CreateTransfer(ctx, second); err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	second.Amount = dec("250")
	second.FromAccountID = ids[0]
	if err := engine.UpdateTransfer(ctx, second); err != nil {
		t.Fatalf("UpdateTransfer: %v", err)
	}
	if err := engine.DeleteTransfer(ctx, userID, first.ID); err != nil {
		t.Fatalf("DeleteTransfer: %v", err)
	}

	if got := total(); !got.Equal(initial) {
		t.Fatalf("total across accounts = %s, want %s", got, initial)
	}
}

func TestCreateTransferRollsBackOnStorageFailure(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountA := addAccount(store, userID, "500")
	accountB := addAccount(store, userID, "100")
	// Fail between the debit and the credit, the worst possible point.
	store.failAdjustAt = 2
	engine := newEngine(store)

	tr := newTransfer(userID, accountA, accountB, "200")
	err := engine.CreateTransfer(context.Background(), tr)
	if !errors.Is(err, errStorage) {
		t.Fatalf("err = %v, want storage failure", err)
	}

	requireBalance(t, store, accountA, "500")
	requireBalance(t, store, accountB, "100")
	if len(store.transfers) != 0 {
		t.Fatal("record must not survive a failed unit")
	}
}
