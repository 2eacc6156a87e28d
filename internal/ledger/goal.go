package ledger

import (
	"context"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddContribution checks the source account's balance, records the
// contribution, debits the account, credits the goal and re-evaluates its
// completion, all in one atomic unit. The balance check runs against the
// locked row, so concurrent contributions from one account serialize.
func (e *Engine) AddContribution(ctx context.Context, c *models.GoalContribution) error {
	if !c.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	err := e.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		if c.AccountID != nil {
			account, err := tx.AccountForUpdate(ctx, c.UserID, *c.AccountID)
			if err != nil {
				return err
			}
			if c.Amount.GreaterThan(account.CurrentBalance) {
				return ErrInsufficientBalance
			}
		}

		goal, err := tx.GoalForUpdate(ctx, c.UserID, c.GoalID)
		if err != nil {
			return err
		}

		if err := tx.InsertContribution(ctx, c); err != nil {
			return err
		}
		if c.AccountID != nil {
			if err := tx.AdjustAccountBalance(ctx, *c.AccountID, c.Amount.Neg()); err != nil {
				return err
			}
		}

		newAmount := goal.CurrentAmount.Add(c.Amount)
		status := models.GoalActive
		completed := false
		if newAmount.GreaterThanOrEqual(goal.TargetAmount) {
			status = models.GoalCompleted
			completed = true
		}
		return tx.SetGoalProgress(ctx, c.GoalID, newAmount, status, completed)
	})
	if err != nil {
		return err
	}

	e.logger.Debug("contribution applied",
		zap.String("contribution_id", c.ID.String()),
		zap.String("goal_id", c.GoalID.String()),
	)
	return nil
}

// RemoveContribution restores the contributed amount to the linked account
// (if any), deletes the record and debits the goal, flooring its amount at
// zero. The goal always drops back to active, even when the remaining
// amount still meets the target.
func (e *Engine) RemoveContribution(ctx context.Context, userID, id uuid.UUID) error {
	return e.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		c, err := tx.GetContribution(ctx, userID, id)
		if err != nil {
			return err
		}

		if c.AccountID != nil {
			if _, err := tx.AccountForUpdate(ctx, userID, *c.AccountID); err != nil {
				return err
			}
			if err := tx.AdjustAccountBalance(ctx, *c.AccountID, c.Amount); err != nil {
				return err
			}
		}

		goal, err := tx.GoalForUpdate(ctx, userID, c.GoalID)
		if err != nil {
			return err
		}
		if err := tx.DeleteContribution(ctx, id); err != nil {
			return err
		}

		newAmount := goal.CurrentAmount.Sub(c.Amount)
		if newAmount.IsNegative() {
			newAmount = decimal.Zero
		}
		return tx.SetGoalProgress(ctx, c.GoalID, newAmount, models.GoalActive, false)
	})
}
