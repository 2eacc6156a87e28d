package service

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidID = errors.New("invalid id")

type TransactionService struct {
	engine *ledger.Engine
	txRepo *repository.TransactionRepository
	logger *zap.Logger
}

func NewTransactionService(engine *ledger.Engine, txRepo *repository.TransactionRepository, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		engine: engine,
		txRepo: txRepo,
		logger: logger,
	}
}

func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, ErrInvalidID
	}
	categoryID, err := parseOptionalID(req.CategoryID)
	if err != nil {
		return nil, err
	}

	recurrence := models.Recurrence(req.Recurrence)
	if req.Recurrence == "" {
		recurrence = models.RecurrenceNone
	}
	if !models.ValidRecurrence(recurrence) {
		return nil, ErrInvalidID
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	now := time.Now()
	transaction := &models.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		AccountID:     accountID,
		CategoryID:    categoryID,
		Type:          models.TransactionType(req.Type),
		Amount:        req.Amount,
		Currency:      req.Currency,
		Date:          date,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		Recurrence:    recurrence,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.engine.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}
	return transactionToResponse(transaction), nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	transaction, err := s.txRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.AccountID != nil {
		accountID, err := uuid.Parse(*req.AccountID)
		if err != nil {
			return nil, ErrInvalidID
		}
		transaction.AccountID = accountID
	}
	if req.CategoryID != nil {
		categoryID, err := parseOptionalID(req.CategoryID)
		if err != nil {
			return nil, err
		}
		transaction.CategoryID = categoryID
	}
	if req.Type != nil {
		transaction.Type = models.TransactionType(*req.Type)
	}
	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.Date != nil {
		transaction.Date = *req.Date
	}
	if req.Description != nil {
		transaction.Description = *req.Description
	}
	if req.PaymentMethod != nil {
		transaction.PaymentMethod = *req.PaymentMethod
	}
	if req.Recurrence != nil {
		recurrence := models.Recurrence(*req.Recurrence)
		if !models.ValidRecurrence(recurrence) {
			return nil, ErrInvalidID
		}
		transaction.Recurrence = recurrence
	}
	if req.Notes != nil {
		transaction.Notes = *req.Notes
	}
	transaction.UpdatedAt = time.Now()

	if err := s.engine.UpdateTransaction(ctx, transaction); err != nil {
		return nil, err
	}
	return transactionToResponse(transaction), nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.engine.DeleteTransaction(ctx, userID, id)
}

func (s *TransactionService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.TransactionResponse, error) {
	transaction, err := s.txRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return transactionToResponse(transaction), nil
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]*dto.TransactionResponse, error) {
	transactions, err := s.txRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, transactionToResponse(t))
	}
	return responses, nil
}

func parseOptionalID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, ErrInvalidID
	}
	return &id, nil
}

func optionalIDString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func transactionToResponse(t *models.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:            t.ID.String(),
		AccountID:     t.AccountID.String(),
		CategoryID:    optionalIDString(t.CategoryID),
		Type:          string(t.Type),
		Amount:        t.Amount.StringFixed(2),
		Currency:      t.Currency,
		Date:          t.Date.Format(time.RFC3339),
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
		Recurrence:    string(t.Recurrence),
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}
