package dto

type DashboardSummaryResponse struct {
	NetWorth     string `json:"net_worth"`
	MonthIncome  string `json:"month_income"`
	MonthExpense string `json:"month_expense"`
	GoalsSaved   string `json:"goals_saved"`
	GoalsTarget  string `json:"goals_target"`
}
