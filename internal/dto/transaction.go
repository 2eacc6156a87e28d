package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	AccountID     string          `json:"account_id"`
	CategoryID    *string         `json:"category_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
	Recurrence    string          `json:"recurrence"`
	Notes         string          `json:"notes"`
}

type UpdateTransactionRequest struct {
	AccountID     *string          `json:"account_id"`
	CategoryID    *string          `json:"category_id"`
	Type          *string          `json:"type"`
	Amount        *decimal.Decimal `json:"amount"`
	Date          *time.Time       `json:"date"`
	Description   *string          `json:"description"`
	PaymentMethod *string          `json:"payment_method"`
	Recurrence    *string          `json:"recurrence"`
	Notes         *string          `json:"notes"`
}

type TransactionResponse struct {
	ID            string  `json:"id"`
	AccountID     string  `json:"account_id"`
	CategoryID    *string `json:"category_id,omitempty"`
	Type          string  `json:"type"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	PaymentMethod string  `json:"payment_method"`
	Recurrence    string  `json:"recurrence"`
	Notes         string  `json:"notes"`
	CreatedAt     string  `json:"created_at"`
}
