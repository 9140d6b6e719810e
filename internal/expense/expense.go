package expense

import (
	"time"

	expensedm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/expense"
	notificationdm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
)

// Expense is the API-facing view of a ledger row.
type Expense struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName,omitempty"`
	AmountCents  int64     `json:"amountCents"`
	Description  *string   `json:"description,omitempty"`
	ExpenseDate  string    `json:"expenseDate"`
	BudgetMonth  string    `json:"budgetMonth"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateResult is the synchronous response to an expense write: the
// stored row plus whatever notifications this write triggered. Alerts
// ride the response so the client sees them without waiting for the
// push channel.
type CreateResult struct {
	Expense       Expense                        `json:"expense"`
	Notifications []*notificationdm.Notification `json:"notifications"`
}

// ExpenseRow is an expense joined with its category name for listing.
type ExpenseRow struct {
	expensedm.Expense
	CategoryName string `json:"category_name"`
}

// Repository defines the data access methods for expenses.
type Repository interface {
	Create(expense *expensedm.Expense) error
	ListByUser(userID, month string, limit, offset int) ([]ExpenseRow, error)
}

// CategoryReader verifies category ownership before a write is accepted.
type CategoryReader interface {
	Exists(userID, categoryID string) (bool, error)
}

// AlertEvaluator runs the budget check after a ledger write. It is the
// alert service behind an interface so tests can observe the call.
type AlertEvaluator interface {
	EvaluateAndNotify(userID, month string) ([]*notificationdm.Notification, error)
}

// ServiceAPI is what the HTTP handler needs from the expense service.
type ServiceAPI interface {
	CreateExpense(userID string, dto CreateExpenseDTO) (CreateResult, error)
	ListExpenses(userID string, params ListParams) ([]Expense, error)
}
