package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountWallet     AccountType = "wallet"
	AccountCreditCard AccountType = "credit_card"
)

// Account is a ledger bucket with a running balance. CurrentBalance is
// written only by the ledger engine, never by a user-facing edit.
type Account struct {
	ID             uuid.UUID       `db:"id"`
	UserID         uuid.UUID       `db:"user_id"`
	Name           string          `db:"name"`
	Type           AccountType     `db:"type"`
	Institution    string          `db:"institution"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	Currency       string          `db:"currency"`
	Color          string          `db:"color"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountChecking, AccountSavings, AccountWallet, AccountCreditCard:
		return true
	}
	return false
}
