package service

import (
	"context"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransferService struct {
	engine       *ledger.Engine
	transferRepo *repository.TransferRepository
	logger       *zap.Logger
}

func NewTransferService(engine *ledger.Engine, transferRepo *repository.TransferRepository, logger *zap.Logger) *TransferService {
	return &TransferService{
		engine:       engine,
		transferRepo: transferRepo,
		logger:       logger,
	}
}

func (s *TransferService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	fromID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		return nil, ErrInvalidID
	}
	toID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		return nil, ErrInvalidID
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	now := time.Now()
	transfer := &models.Transfer{
		ID:            uuid.New(),
		UserID:        userID,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Date:          date,
		Description:   req.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.engine.CreateTransfer(ctx, transfer); err != nil {
		return nil, err
	}
	return transferToResponse(transfer), nil
}

func (s *TransferService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateTransferRequest) (*dto.TransferResponse, error) {
	transfer, err := s.transferRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.FromAccountID != nil {
		fromID, err := uuid.Parse(*req.FromAccountID)
		if err != nil {
			return nil, ErrInvalidID
		}
		transfer.FromAccountID = fromID
	}
	if req.ToAccountID != nil {
		toID, err := uuid.Parse(*req.ToAccountID)
		if err != nil {
			return nil, ErrInvalidID
		}
		transfer.ToAccountID = toID
	}
	if req.Amount != nil {
		transfer.Amount = *req.Amount
	}
	if req.Date != nil {
		transfer.Date = *req.Date
	}
	if req.Description != nil {
		transfer.Description = *req.Description
	}
	transfer.UpdatedAt = time.Now()

	if err := s.engine.UpdateTransfer(ctx, transfer); err != nil {
		return nil, err
	}
	return transferToResponse(transfer), nil
}

func (s *TransferService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.engine.DeleteTransfer(ctx, userID, id)
}

func (s *TransferService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.TransferResponse, error) {
	transfer, err := s.transferRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return transferToResponse(transfer), nil
}

func (s *TransferService) List(ctx context.Context, userID uuid.UUID) ([]*dto.TransferResponse, error) {
	transfers, err := s.transferRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		responses = append(responses, transferToResponse(t))
	}
	return responses, nil
}

func transferToResponse(t *models.Transfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:            t.ID.String(),
		FromAccountID: t.FromAccountID.String(),
		ToAccountID:   t.ToAccountID.String(),
		Amount:        t.Amount.StringFixed(2),
		Currency:      t.Currency,
		Date:          t.Date.Format(time.RFC3339),
		Description:   t.Description,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}
