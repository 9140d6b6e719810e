package expense

import "time"

// Expense is an immutable ledger row. BudgetMonth is denormalized from
// ExpenseDate so month-scoped aggregation stays a single indexed filter.
type Expense struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"column:user_id;not null;index:idx_expenses_user_month"`
	BudgetMonth string    `json:"budget_month" gorm:"column:budget_month;not null;index:idx_expenses_user_month"` // YYYY-MM
	CategoryID  string    `json:"category_id" gorm:"column:category_id;not null"`
	AmountCents int64     `json:"amount_cents" gorm:"column:amount_cents;not null"`
	Description *string   `json:"description,omitempty"`
	ExpenseDate string    `json:"expense_date" gorm:"column:expense_date;not null"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Expense) TableName() string {
	return "expenses"
}
