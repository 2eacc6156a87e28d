package ledger

import (
	"context"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateTransaction inserts the record and applies its signed amount to the
// account balance in one atomic unit.
func (e *Engine) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if err := validateTransaction(t); err != nil {
		return err
	}

	err := e.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		account, err := tx.AccountForUpdate(ctx, t.UserID, t.AccountID)
		if err != nil {
			return err
		}
		if t.Currency == "" {
			t.Currency = account.Currency
		}
		if err := tx.InsertTransaction(ctx, t); err != nil {
			return err
		}
		return tx.AdjustAccountBalance(ctx, t.AccountID, signedAmount(t))
	})
	if err != nil {
		return err
	}

	e.logger.Debug("transaction applied",
		zap.String("transaction_id", t.ID.String()),
		zap.String("account_id", t.AccountID.String()),
	)
	return nil
}

// UpdateTransaction reverses the stored transaction's effect and applies the
// updated one, handling a changed account reference.
func (e *Engine) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	if err := validateTransaction(t); err != nil {
		return err
	}

	return e.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		old, err := tx.GetTransaction(ctx, t.UserID, t.ID)
		if err != nil {
			return err
		}

		if _, err := lockAccounts(ctx, tx, t.UserID, old.AccountID, t.AccountID); err != nil {
			return err
		}
		if err := tx.AdjustAccountBalance(ctx, old.AccountID, signedAmount(old).Neg()); err != nil {
			return err
		}
		if err := tx.AdjustAccountBalance(ctx, t.AccountID, signedAmount(t)); err != nil {
			return err
		}
		return tx.UpdateTransaction(ctx, t)
	})
}

// DeleteTransaction removes the record and reverses its balance effect.
func (e *Engine) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	return e.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		t, err := tx.GetTransaction(ctx, userID, id)
		if err != nil {
			return err
		}
		if _, err := tx.AccountForUpdate(ctx, userID, t.AccountID); err != nil {
			return err
		}
		if err := tx.AdjustAccountBalance(ctx, t.AccountID, signedAmount(t).Neg()); err != nil {
			return err
		}
		return tx.DeleteTransaction(ctx, id)
	})
}

func validateTransaction(t *models.Transaction) error {
	if !models.ValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
