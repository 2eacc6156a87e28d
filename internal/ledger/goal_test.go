package ledger_test

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/ledger"
	"fintrack/internal/models"

	"github.com/google/uuid"
)

func TestAddContributionDebitsAccountAndCreditsGoal(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountID := addAccount(store, userID, "1000")
	goalID := addGoal(store, userID, "0", "5000")
	engine := newEngine(store)

	c := newContribution(userID, goalID, &accountID, "250")
	if err := engine.AddContribution(context.Background(), c); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}

	requireBalance(t, store, accountID, "750")
	goal := store.goals[goalID]
	if !goal.CurrentAmount.Equal(dec("250")) {
		t.Fatalf("goal amount = %s, want 250", goal.CurrentAmount)
	}
	if goal.Status != models.GoalActive || goal.IsCompleted {
		t.Fatalf("goal should stay active, got status=%s completed=%v", goal.Status, goal.IsCompleted)
	}
}

func TestAddContributionCompletesGoal(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountID := addAccount(store, userID, "1000")
	goalID := addGoal(store, userID, "900", "1000")
	engine := newEngine(store)

	c := newContribution(userID, goalID, &accountID, "150")
	if err := engine.AddContribution(context.Background(), c); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}

	requireBalance(t, store, accountID, "850")
	goal := store.goals[goalID]
	if !goal.CurrentAmount.Equal(dec("1050")) {
		t.Fatalf("goal amount = %s, want 1050", goal.CurrentAmount)
	}
	if goal.Status != models.GoalCompleted || !goal.IsCompleted {
		t.Fatalf("goal should be completed, got status=%s completed=%v", goal.Status, goal.IsCompleted)
	}
}

func TestAddContributionInsufficientBalance(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountID := addAccount(store, userID, "100")
	goalID := addGoal(store, userID, "0", "5000")
	engine := newEngine(store)

	c := newContribution(userID, goalID, &accountID, "100.01")
	err := engine.AddContribution(context.Background(), c)
	if !errors.Is(err, ledger.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	// Nothing may have moved.
	requireBalance(t, store, accountID, "100")
	goal := store.goals[goalID]
	if !goal.CurrentAmount.Equal(dec("0")) {
		t.Fatalf("goal amount = %s, want 0", goal.CurrentAmount)
	}
	if len(store.contributions) != 0 {
		t.Fatal("no contribution record should be persisted")
	}
}

func TestAddContributionExactBalanceSucceeds(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountID := addAccount(store, userID, "100")
	goalID := addGoal(store, userID, "0", "5000")
	engine := newEngine(store)

	c := newContribution(userID, goalID, &accountID, "100")
	if err := engine.AddContribution(context.Background(), c); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}
	requireBalance(t, store, accountID, "0")
}

func TestAddContributionWithoutAccount(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	goalID := addGoal(store, userID, "0", "500")
	engine := newEngine(store)

	c := newContribution(userID, goalID, nil, "200")
	if err := engine.AddContribution(context.Background(), c); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}

	goal := store.goals[goalID]
	if !goal.CurrentAmount.Equal(dec("200")) {
		t.Fatalf("goal amount = %s, want 200", goal.CurrentAmount)
	}
}

func TestAddContributionRejectsForeignGoal(t *testing.T) {
	store := newMemStore()
	owner := uuid.New()
	intruder := uuid.New()
	accountID := addAccount(store, intruder, "1000")
	goalID := addGoal(store, owner, "0", "500")
	engine := newEngine(store)

	c := newContribution(intruder, goalID, &accountID, "100")
	err := engine.AddContribution(context.Background(), c)
	if !errors.Is(err, ledger.ErrGoalNotFound) {
		t.Fatalf("err = %v, want ErrGoalNotFound", err)
	}
	requireBalance(t, store, accountID, "1000")
}

// Removing any contribution drops the goal back to active even when the
// remaining amount still meets the target.
func TestRemoveContributionUncompletesGoal(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountID := addAccount(store, userID, "5000")
	goalID := addGoal(store, userID, "0", "1000")
	engine := newEngine(store)
	ctx := context.Background()

	first := newContribution(userID, goalID, &accountID, "1000")
	second := newContribution(userID, goalID, &accountID, "1000")
	if err := engine.AddContribution(ctx, first); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}
	if err := engine.AddContribution(ctx, second); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}
	if goal := store.goals[goalID]; goal.Status != models.GoalCompleted {
		t.Fatalf("goal should be completed before removal")
	}

	if err := engine.RemoveContribution(ctx, userID, second.ID); err != nil {
		t.Fatalf("RemoveContribution: %v", err)
	}

	goal := store.goals[goalID]
	// 1000 remaining still meets the 1000 target, status resets regardless.
	if !goal.CurrentAmount.Equal(dec("1000")) {
		t.Fatalf("goal amount = %s, want 1000", goal.CurrentAmount)
	}
	if goal.Status != models.GoalActive || goal.IsCompleted {
		t.Fatalf("goal should be active after removal, got status=%s completed=%v", goal.Status, goal.IsCompleted)
	}
	requireBalance(t, store, accountID, "4000")
}

func TestRemoveContributionRestoresFunds(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountID := addAccount(store, userID, "1000")
	goalID := addGoal(store, userID, "0", "5000")
	engine := newEngine(store)
	ctx := context.Background()

	c := newContribution(userID, goalID, &accountID, "300")
	if err := engine.AddContribution(ctx, c); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}
	if err := engine.RemoveContribution(ctx, userID, c.ID); err != nil {
		t.Fatalf("RemoveContribution: %v", err)
	}

	requireBalance(t, store, accountID, "1000")
	goal := store.goals[goalID]
	if !goal.CurrentAmount.Equal(dec("0")) {
		t.Fatalf("goal amount = %s, want 0", goal.CurrentAmount)
	}
	if len(store.contributions) != 0 {
		t.Fatal("contribution record should be gone")
	}
}

func TestRemoveContributionFloorsAtZero(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	goalID := addGoal(store, userID, "0", "500")
	engine := newEngine(store)
	ctx := context.Background()

	c := newContribution(userID, goalID, nil, "200")
	if err := engine.AddContribution(ctx, c); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}

	// Simulate drift: the goal was edited below the contribution total.
	goal := store.goals[goalID]
	goal.CurrentAmount = dec("150")
	store.goals[goalID] = goal

	if err := engine.RemoveContribution(ctx, userID, c.ID); err != nil {
		t.Fatalf("RemoveContribution: %v", err)
	}
	if got := store.goals[goalID].CurrentAmount; !got.Equal(dec("0")) {
		t.Fatalf("goal amount = %s, want 0 (floored)", got)
	}
}

func TestRemoveContributionNotFound(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	engine := newEngine(store)

	err := engine.RemoveContribution(context.Background(), userID, uuid.New())
	if !errors.Is(err, ledger.ErrContributionNotFound) {
		t.Fatalf("err = %v, want ErrContributionNotFound", err)
	}
}

func TestAddContributionRejectsNonPositiveAmount(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountID := addAccount(store, userID, "1000")
	goalID := addGoal(store, userID, "0", "500")
	engine := newEngine(store)

	c := newContribution(userID, goalID, &accountID, "0")
	err := engine.AddContribution(context.Background(), c)
	if !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
}

func TestAddContributionRollsBackOnStorageFailure(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	accountID := addAccount(store, userID, "1000")
	goalID := addGoal(store, userID, "900", "1000")
	store.failAdjustAt = 1
	engine := newEngine(store)

	c := newContribution(userID, goalID, &accountID, "150")
	err := engine.AddContribution(context.Background(), c)
	if !errors.Is(err, errStorage) {
		t.Fatalf("err = %v, want storage failure", err)
	}

	requireBalance(t, store, accountID, "1000")
	goal := store.goals[goalID]
	if !goal.CurrentAmount.Equal(dec("900")) || goal.Status != models.GoalActive {
		t.Fatalf("goal must be untouched after rollback, got amount=%s status=%s", goal.CurrentAmount, goal.Status)
	}
	if len(store.contributions) != 0 {
		t.Fatal("record must not survive a failed unit")
	}
}
