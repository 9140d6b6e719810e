package events

import (
	"time"

	"github.com/google/uuid"

	notificationDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
)

const (
	EventTypeExpenseCreated      = "expense.created"
	EventTypeNotificationCreated = "notification.created"
	EventTypeBudgetUpdated       = "budget.updated"
)

// ExpenseCreatedEvent announces a new ledger row to the owning user's
// live sessions.
type ExpenseCreatedEvent struct {
	BaseEvent
	ExpenseID string `json:"expense_id"`
	Month     string `json:"month"`
}

func NewExpenseCreatedEvent(userID, expenseID, month string) *ExpenseCreatedEvent {
	return &ExpenseCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpenseCreated,
			User:      userID,
			Timestamp: time.Now(),
		},
		ExpenseID: expenseID,
		Month:     month,
	}
}

// NotificationCreatedEvent carries a freshly persisted notification.
type NotificationCreatedEvent struct {
	BaseEvent
	Notification *notificationDatamodel.Notification `json:"notification"`
}

func NewNotificationCreatedEvent(userID string, n *notificationDatamodel.Notification) *NotificationCreatedEvent {
	return &NotificationCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeNotificationCreated,
			User:      userID,
			Timestamp: time.Now(),
		},
		Notification: n,
	}
}

// BudgetUpdatedEvent tells live sessions to refresh the month's budget
// view. Saving a budget never re-runs alert evaluation.
type BudgetUpdatedEvent struct {
	BaseEvent
	Month string `json:"month"`
}

func NewBudgetUpdatedEvent(userID, month string) *BudgetUpdatedEvent {
	return &BudgetUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeBudgetUpdated,
			User:      userID,
			Timestamp: time.Now(),
		},
		Month: month,
	}
}
