package service

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidAccountType = errors.New("invalid account type")

type AccountService struct {
	accountRepo *repository.AccountRepository
	logger      *zap.Logger
}

func NewAccountService(accountRepo *repository.AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func (s *AccountService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	accountType := models.AccountType(req.Type)
	if !models.ValidAccountType(accountType) {
		return nil, ErrInvalidAccountType
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	account := &models.Account{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           req.Name,
		Type:           accountType,
		Institution:    req.Institution,
		InitialBalance: req.InitialBalance,
		CurrentBalance: req.InitialBalance,
		Currency:       currency,
		Color:          req.Color,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("account_id", account.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return accountToResponse(account), nil
}

func (s *AccountService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return accountToResponse(account), nil
}

func (s *AccountService) List(ctx context.Context, userID uuid.UUID) ([]*dto.AccountResponse, error) {
	accounts, err := s.accountRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, accountToResponse(a))
	}
	return responses, nil
}

func (s *AccountService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Institution != nil {
		account.Institution = *req.Institution
	}
	if req.Color != nil {
		account.Color = *req.Color
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.UpdatedAt = time.Now()

	if err := s.accountRepo.UpdateDetails(ctx, account); err != nil {
		return nil, err
	}
	return accountToResponse(account), nil
}

func (s *AccountService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.accountRepo.Delete(ctx, userID, id)
}

func accountToResponse(a *models.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:             a.ID.String(),
		Name:           a.Name,
		Type:           string(a.Type),
		Institution:    a.Institution,
		InitialBalance: a.InitialBalance.StringFixed(2),
		CurrentBalance: a.CurrentBalance.StringFixed(2),
		Currency:       a.Currency,
		Color:          a.Color,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}
