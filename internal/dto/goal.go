package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateGoalRequest struct {
	CategoryID    *string         `json:"category_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Currency      string          `json:"currency"`
	Deadline      *time.Time      `json:"deadline"`
}

type UpdateGoalRequest struct {
	CategoryID   *string          `json:"category_id"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	Deadline     *time.Time       `json:"deadline"`
	Status       *string          `json:"status"`
}

type GoalResponse struct {
	ID            string  `json:"id"`
	CategoryID    *string `json:"category_id,omitempty"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	TargetAmount  string  `json:"target_amount"`
	CurrentAmount string  `json:"current_amount"`
	Currency      string  `json:"currency"`
	Deadline      *string `json:"deadline,omitempty"`
	Status        string  `json:"status"`
	IsCompleted   bool    `json:"is_completed"`
	CreatedAt     string  `json:"created_at"`
}

type AddContributionRequest struct {
	AccountID   *string         `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

type ContributionResponse struct {
	ID          string  `json:"id"`
	GoalID      string  `json:"goal_id"`
	AccountID   *string `json:"account_id,omitempty"`
	Amount      string  `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
}
