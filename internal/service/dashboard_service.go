package service

import (
	"context"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DashboardService struct {
	dashRepo *repository.DashboardRepository
	logger   *zap.Logger
}

func NewDashboardService(dashRepo *repository.DashboardRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		dashRepo: dashRepo,
		logger:   logger,
	}
}

// Summary aggregates net worth, current-month income/expense and overall
// goal progress.
func (s *DashboardService) Summary(ctx context.Context, userID uuid.UUID) (*dto.DashboardSummaryResponse, error) {
	netWorth, err := s.dashRepo.NetWorth(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	income, err := s.dashRepo.SumByType(ctx, userID, "income", monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	expense, err := s.dashRepo.SumByType(ctx, userID, "expense", monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	saved, target, err := s.dashRepo.GoalProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryResponse{
		NetWorth:     netWorth.StringFixed(2),
		MonthIncome:  income.StringFixed(2),
		MonthExpense: expense.StringFixed(2),
		GoalsSaved:   saved.StringFixed(2),
		GoalsTarget:  target.StringFixed(2),
	}, nil
}
