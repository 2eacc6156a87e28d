package dto

import "github.com/shopspring/decimal"

type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Institution    string          `json:"institution"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Currency       string          `json:"currency"`
	Color          string          `json:"color"`
}

// UpdateAccountRequest carries the cosmetic fields only; balances are never
// user-editable after creation.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Institution *string `json:"institution"`
	Color       *string `json:"color"`
	IsActive    *bool   `json:"is_active"`
}

type AccountResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Institution    string `json:"institution"`
	InitialBalance string `json:"initial_balance"`
	CurrentBalance string `json:"current_balance"`
	Currency       string `json:"currency"`
	Color          string `json:"color"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
}
