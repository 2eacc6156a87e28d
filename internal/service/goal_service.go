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

var (
	ErrInvalidGoalStatus = errors.New("invalid goal status")
	ErrInvalidTarget     = errors.New("target amount must be positive")
)

type GoalService struct {
	engine   *ledger.Engine
	goalRepo *repository.GoalRepository
	logger   *zap.Logger
}

func NewGoalService(engine *ledger.Engine, goalRepo *repository.GoalRepository, logger *zap.Logger) *GoalService {
	return &GoalService{
		engine:   engine,
		goalRepo: goalRepo,
		logger:   logger,
	}
}

func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	if !req.TargetAmount.IsPositive() {
		return nil, ErrInvalidTarget
	}
	if req.CurrentAmount.IsNegative() {
		return nil, ledger.ErrInvalidAmount
	}
	categoryID, err := parseOptionalID(req.CategoryID)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	status := models.GoalActive
	completed := false
	if req.CurrentAmount.GreaterThanOrEqual(req.TargetAmount) {
		status = models.GoalCompleted
		completed = true
	}

	now := time.Now()
	goal := &models.Goal{
		ID:            uuid.New(),
		UserID:        userID,
		CategoryID:    categoryID,
		Name:          req.Name,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Currency:      currency,
		Deadline:      req.Deadline,
		Status:        status,
		IsCompleted:   completed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("goal created",
		zap.String("goal_id", goal.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return goalToResponse(goal), nil
}

func (s *GoalService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.GoalResponse, error) {
	goal, err := s.goalRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return goalToResponse(goal), nil
}

func (s *GoalService) List(ctx context.Context, userID uuid.UUID) ([]*dto.GoalResponse, error) {
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.GoalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, goalToResponse(g))
	}
	return responses, nil
}

func (s *GoalService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.goalRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		categoryID, err := parseOptionalID(req.CategoryID)
		if err != nil {
			return nil, err
		}
		goal.CategoryID = categoryID
	}
	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			return nil, ErrInvalidTarget
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.Deadline != nil {
		goal.Deadline = req.Deadline
	}
	if req.Status != nil {
		status := models.GoalStatus(*req.Status)
		switch status {
		case models.GoalActive, models.GoalCompleted, models.GoalPaused:
			goal.Status = status
		default:
			return nil, ErrInvalidGoalStatus
		}
	}
	// IsCompleted always mirrors the status.
	goal.IsCompleted = goal.Status == models.GoalCompleted
	goal.UpdatedAt = time.Now()

	if err := s.goalRepo.UpdateDetails(ctx, goal); err != nil {
		return nil, err
	}
	return goalToResponse(goal), nil
}

func (s *GoalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.goalRepo.Delete(ctx, userID, id)
}

func (s *GoalService) AddContribution(ctx context.Context, userID, goalID uuid.UUID, req *dto.AddContributionRequest) (*dto.ContributionResponse, error) {
	accountID, err := parseOptionalID(req.AccountID)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	contribution := &models.GoalContribution{
		ID:          uuid.New(),
		UserID:      userID,
		GoalID:      goalID,
		AccountID:   accountID,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.engine.AddContribution(ctx, contribution); err != nil {
		return nil, err
	}
	return contributionToResponse(contribution), nil
}

func (s *GoalService) RemoveContribution(ctx context.Context, userID, id uuid.UUID) error {
	return s.engine.RemoveContribution(ctx, userID, id)
}

func (s *GoalService) ListContributions(ctx context.Context, userID, goalID uuid.UUID) ([]*dto.ContributionResponse, error) {
	if _, err := s.goalRepo.GetByID(ctx, userID, goalID); err != nil {
		return nil, err
	}

	contributions, err := s.goalRepo.ListContributions(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ContributionResponse, 0, len(contributions))
	for _, c := range contributions {
		responses = append(responses, contributionToResponse(c))
	}
	return responses, nil
}

func goalToResponse(g *models.Goal) *dto.GoalResponse {
	var deadline *string
	if g.Deadline != nil {
		d := g.Deadline.Format(time.RFC3339)
		deadline = &d
	}
	return &dto.GoalResponse{
		ID:            g.ID.String(),
		CategoryID:    optionalIDString(g.CategoryID),
		Name:          g.Name,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount.StringFixed(2),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Currency:      g.Currency,
		Deadline:      deadline,
		Status:        string(g.Status),
		IsCompleted:   g.IsCompleted,
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
	}
}

func contributionToResponse(c *models.GoalContribution) *dto.ContributionResponse {
	return &dto.ContributionResponse{
		ID:          c.ID.String(),
		GoalID:      c.GoalID.String(),
		AccountID:   optionalIDString(c.AccountID),
		Amount:      c.Amount.StringFixed(2),
		Date:        c.Date.Format(time.RFC3339),
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}
