package service

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Validation must reject bad input before any repository or engine call, so
// these services are constructed with nil dependencies on purpose.

func TestAccountServiceRejectsInvalidType(t *testing.T) {
	s := NewAccountService(nil, zap.NewNop())

	_, err := s.Create(context.Background(), uuid.New(), &dto.CreateAccountRequest{
		Name: "Main",
		Type: "offshore",
	})
	if !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("err = %v, want ErrInvalidAccountType", err)
	}
}

func TestTransactionServiceRejectsBadAccountID(t *testing.T) {
	s := NewTransactionService(nil, nil, zap.NewNop())

	_, err := s.Create(context.Background(), uuid.New(), &dto.CreateTransactionRequest{
		AccountID: "not-a-uuid",
		Type:      string(models.TransactionIncome),
		Amount:    decimal.NewFromInt(10),
	})
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
}

func TestTransferServiceRejectsBadAccountID(t *testing.T) {
	s := NewTransferService(nil, nil, zap.NewNop())

	_, err := s.Create(context.Background(), uuid.New(), &dto.CreateTransferRequest{
		FromAccountID: uuid.New().String(),
		ToAccountID:   "nope",
		Amount:        decimal.NewFromInt(10),
	})
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
}

func TestGoalServiceRejectsNonPositiveTarget(t *testing.T) {
	s := NewGoalService(nil, nil, zap.NewNop())

	_, err := s.Create(context.Background(), uuid.New(), &dto.CreateGoalRequest{
		Name:         "Vacation",
		TargetAmount: decimal.Zero,
	})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("err = %v, want ErrInvalidTarget", err)
	}
}

func TestCategoryServiceRejectsBadKind(t *testing.T) {
	s := NewCategoryService(nil, zap.NewNop())

	_, err := s.Create(context.Background(), uuid.New(), &dto.CreateCategoryRequest{
		Name: "Rent",
		Kind: "liability",
	})
	if !errors.Is(err, ErrInvalidCategoryKind) {
		t.Fatalf("err = %v, want ErrInvalidCategoryKind", err)
	}
}

func TestParseOptionalID(t *testing.T) {
	if id, err := parseOptionalID(nil); err != nil || id != nil {
		t.Fatalf("nil input: got %v, %v", id, err)
	}

	empty := ""
	if id, err := parseOptionalID(&empty); err != nil || id != nil {
		t.Fatalf("empty input: got %v, %v", id, err)
	}

	valid := uuid.New().String()
	id, err := parseOptionalID(&valid)
	if err != nil || id == nil || id.String() != valid {
		t.Fatalf("valid input: got %v, %v", id, err)
	}

	bad := "bad"
	if _, err := parseOptionalID(&bad); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("bad input: err = %v, want ErrInvalidID", err)
	}
}
