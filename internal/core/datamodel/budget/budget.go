package budget

import "time"

// Budget is the monthly overall spending ceiling for one user.
// There is exactly one row per (user_id, month); saves after the first
// update it in place.
type Budget struct {
	ID                  string    `json:"id" gorm:"primaryKey"`
	UserID              string    `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_budgets_user_month"`
	Month               string    `json:"month" gorm:"not null;uniqueIndex:idx_budgets_user_month"` // YYYY-MM
	TotalLimitCents     int64     `json:"total_limit_cents" gorm:"column:total_limit_cents;not null"`
	WarningThresholdPct int       `json:"warning_threshold_pct" gorm:"column:warning_threshold_pct;not null;default:80"`
	CreatedAt           time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt           time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Budget) TableName() string {
	return "budgets"
}

// CategoryLimit is an optional sub-ceiling for one category inside a
// budget. A limit of zero cents means "no limit set" and is never
// evaluated.
type CategoryLimit struct {
	ID         string `json:"id" gorm:"primaryKey"`
	BudgetID   string `json:"budget_id" gorm:"column:budget_id;not null;uniqueIndex:idx_category_limits_budget_category"`
	CategoryID string `json:"category_id" gorm:"column:category_id;not null;uniqueIndex:idx_category_limits_budget_category"`
	LimitCents int64  `json:"limit_cents" gorm:"column:limit_cents;not null"`
}

func (CategoryLimit) TableName() string {
	return "category_limits"
}
