package models

import (
	"time"

	"github.com/google/uuid"
)

type CategoryKind string

const (
	CategoryIncome  CategoryKind = "income"
	CategoryExpense CategoryKind = "expense"
)

type Category struct {
	ID        uuid.UUID    `db:"id"`
	UserID    uuid.UUID    `db:"user_id"`
	Name      string       `db:"name"`
	Kind      CategoryKind `db:"kind"`
	Color     string       `db:"color"`
	CreatedAt time.Time    `db:"created_at"`
}
