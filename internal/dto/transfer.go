package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
}

type UpdateTransferRequest struct {
	FromAccountID *string          `json:"from_account_id"`
	ToAccountID   *string          `json:"to_account_id"`
	Amount        *decimal.Decimal `json:"amount"`
	Date          *time.Time       `json:"date"`
	Description   *string          `json:"description"`
}

type TransferResponse struct {
	ID            string `json:"id"`
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Date          string `json:"date"`
	Description   string `json:"description"`
	CreatedAt     string `json:"created_at"`
}
