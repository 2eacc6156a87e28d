package ledger

import (
	"context"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateTransfer debits the source account and credits the destination in
// one atomic unit.
func (e *Engine) CreateTransfer(ctx context.Context, t *models.Transfer) error {
	if err := validateTransfer(t); err != nil {
		return err
	}

	err := e.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		accounts, err := lockAccounts(ctx, tx, t.UserID, t.FromAccountID, t.ToAccountID)
		if err != nil {
			return err
		}
		if t.Currency == "" {
			t.Currency = accounts[t.FromAccountID].Currency
		}
		if err := tx.InsertTransfer(ctx, t); err != nil {
			return err
		}
		if err := tx.AdjustAccountBalance(ctx, t.FromAccountID, t.Amount.Neg()); err != nil {
			return err
		}
		return tx.AdjustAccountBalance(ctx, t.ToAccountID, t.Amount)
	})
	if err != nil {
		return err
	}

	e.logger.Debug("transfer applied",
		zap.String("transfer_id", t.ID.String()),
		zap.String("from_account_id", t.FromAccountID.String()),
		zap.String("to_account_id", t.ToAccountID.String()),
	)
	return nil
}

// UpdateTransfer reverses the stored transfer's pair of mutations and
// applies the updated pair, handling changes to either account reference.
func (e *Engine) UpdateTransfer(ctx context.Context, t *models.Transfer) error {
	if err := validateTransfer(t); err != nil {
		return err
	}

	return e.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		old, err := tx.GetTransfer(ctx, t.UserID, t.ID)
		if err != nil {
			return err
		}

		_, err = lockAccounts(ctx, tx, t.UserID,
			old.FromAccountID, old.ToAccountID, t.FromAccountID, t.ToAccountID)
		if err != nil {
			return err
		}

		// Reverse old pair: credit old source, debit old destination.
		if err := tx.AdjustAccountBalance(ctx, old.FromAccountID, old.Amount); err != nil {
			return err
		}
		if err := tx.AdjustAccountBalance(ctx, old.ToAccountID, old.Amount.Neg()); err != nil {
			return err
		}

		// Apply new pair.
		if err := tx.AdjustAccountBalance(ctx, t.FromAccountID, t.Amount.Neg()); err != nil {
			return err
		}
		if err := tx.AdjustAccountBalance(ctx, t.ToAccountID, t.Amount); err != nil {
			return err
		}
		return tx.UpdateTransfer(ctx, t)
	})
}

// DeleteTransfer removes the record, crediting the source back and debiting
// the destination.
func (e *Engine) DeleteTransfer(ctx context.Context, userID, id uuid.UUID) error {
	return e.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		t, err := tx.GetTransfer(ctx, userID, id)
		if err != nil {
			return err
		}
		if _, err := lockAccounts(ctx, tx, userID, t.FromAccountID, t.ToAccountID); err != nil {
			return err
		}
		if err := tx.AdjustAccountBalance(ctx, t.FromAccountID, t.Amount); err != nil {
			return err
		}
		if err := tx.AdjustAccountBalance(ctx, t.ToAccountID, t.Amount.Neg()); err != nil {
			return err
		}
		return tx.DeleteTransfer(ctx, id)
	})
}

func validateTransfer(t *models.Transfer) error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
