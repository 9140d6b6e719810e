package alert

import (
	"fmt"
	"time"

	budgetDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/budget"
	notificationDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
)

// Scope identifies what a candidate alert is about: the whole monthly
// budget or a single category limit.
type Scope string

const (
	ScopeOverall  Scope = "overall"
	ScopeCategory Scope = "category"
)

// Alert is a transient, computed signal. It is never persisted as-is;
// candidates that survive deduplication become notifications.
type Alert struct {
	Scope      Scope
	CategoryID string // empty for overall scope
	Type       string // notification type constant
	Message    string
}

// CategorySpend is one row of a month's per-category aggregation.
// Categories with no expenses that month are present with SpendCents 0.
type CategorySpend struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	SpendCents   int64  `json:"spend_cents"`
}

// Aggregates is the spend snapshot for one (user, month).
type Aggregates struct {
	TotalSpendCents int64           `json:"total_spend_cents"`
	PerCategory     []CategorySpend `json:"per_category"`
}

// CategoryLimit pairs a budget's category limit with the category name
// needed for message rendering and deterministic ordering.
type CategoryLimit struct {
	CategoryID   string
	CategoryName string
	LimitCents   int64
}

// AggregationReader computes the spend snapshot from the ledger.
// Implementations must read a consistent snapshot: concurrent writes to
// the same user's ledger may not be interleaved into one pass.
type AggregationReader interface {
	Aggregate(userID, month string) (*Aggregates, error)
}

// BudgetReader supplies the evaluation inputs owned by the budget module.
type BudgetReader interface {
	// BudgetForMonth returns nil, nil when the user has no budget for
	// the month; evaluation is opt-in.
	BudgetForMonth(userID, month string) (*budgetDatamodel.Budget, error)
	LimitsForBudget(budgetID string) ([]CategoryLimit, error)
}

// NotificationStore persists notifications and answers the dedup query.
type NotificationStore interface {
	ExistsSince(userID, month, notifType, message string, since time.Time) (bool, error)
	Create(n *notificationDatamodel.Notification) error
}

// FormatMoney renders integer cents as a dollar string, e.g. 4500 →
// "$45.00". All money stays in minor units until display.
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
