package budget

import (
	"github.com/frahmantamala/budget-tracker/internal/alert"
	budgetdm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/budget"
)

// Spending status relative to a limit.
const (
	StatusOK       = "ok"
	StatusWarning  = "warning"
	StatusExceeded = "exceeded"
)

// CategoryLimitView is the API-facing shape of one category ceiling.
type CategoryLimitView struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	LimitCents   int64  `json:"limitCents"`
}

// BudgetView is the API-facing shape of a monthly budget.
type BudgetView struct {
	ID                  string              `json:"id"`
	Month               string              `json:"month"`
	TotalLimitCents     int64               `json:"totalLimitCents"`
	WarningThresholdPct int                 `json:"warningThresholdPct"`
	CategoryLimits      []CategoryLimitView `json:"categoryLimits"`
}

// SummaryCategory is one row of a month's spend-vs-limit breakdown.
// LimitCents is zero for categories with spend but no configured limit.
type SummaryCategory struct {
	CategoryID     string `json:"categoryId"`
	CategoryName   string `json:"categoryName"`
	LimitCents     int64  `json:"limitCents"`
	SpendCents     int64  `json:"spendCents"`
	RemainingCents int64  `json:"remainingCents"`
	Status         string `json:"status"`
}

// Summary is the month's spend-vs-limit report.
type Summary struct {
	Month               string            `json:"month"`
	TotalLimitCents     int64             `json:"totalLimitCents"`
	TotalSpendCents     int64             `json:"totalSpendCents"`
	RemainingCents      int64             `json:"remainingCents"`
	WarningThresholdPct int               `json:"warningThresholdPct"`
	Status              string            `json:"status"`
	Categories          []SummaryCategory `json:"categories"`
}

// Repository persists budgets. It also serves the alert evaluator's
// read side, so both paths see the same rows.
type Repository interface {
	alert.BudgetReader
	Upsert(budget *budgetdm.Budget, limits []*budgetdm.CategoryLimit) error
}

// CategoryReader verifies that referenced categories exist and belong
// to the caller. Satisfied by the category repository.
type CategoryReader interface {
	Exists(userID, categoryID string) (bool, error)
}

// ServiceAPI is what the HTTP handler needs from the budget service.
type ServiceAPI interface {
	SaveBudget(userID, month string, dto SaveBudgetDTO) (BudgetView, error)
	GetBudget(userID, month string) (BudgetView, error)
	GetSummary(userID, month string) (Summary, error)
}
