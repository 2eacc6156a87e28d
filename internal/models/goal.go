package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

// Goal is a savings target. CurrentAmount is written only by contribution
// add/remove; IsCompleted always mirrors Status == completed.
type Goal struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	CategoryID    *uuid.UUID      `db:"category_id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	Currency      string          `db:"currency"`
	Deadline      *time.Time      `db:"deadline"`
	Status        GoalStatus      `db:"status"`
	IsCompleted   bool            `db:"is_completed"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

type GoalContribution struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	GoalID        uuid.UUID       `db:"goal_id"`
	AccountID     *uuid.UUID      `db:"account_id"`
	TransactionID *uuid.UUID      `db:"transaction_id"`
	Amount        decimal.Decimal `db:"amount"`
	Date          time.Time       `db:"date"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
}
