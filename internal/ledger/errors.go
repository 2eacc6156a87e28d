package ledger

import "errors"

var (
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")
	ErrSameAccount            = errors.New("transfer source and destination accounts must differ")
	ErrInsufficientBalance    = errors.New("insufficient balance")

	ErrAccountNotFound      = errors.New("account not found")
	ErrGoalNotFound         = errors.New("goal not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrTransferNotFound     = errors.New("transfer not found")
	ErrContributionNotFound = errors.New("contribution not found")
)
