package realtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/budget-tracker/internal/core/events"
)

// Wire event names pushed to live sessions.
const (
	PushExpenseCreated      = "expense:created"
	PushNotificationCreated = "notification:created"
	PushBudgetUpdated       = "budget:updated"
)

// Fanout bridges the domain event bus to the connection registry. It
// runs on the bus's async handler goroutines, off the request path:
// delivery is best-effort, at-most-once, and a failure for one session
// never reaches the publisher.
type Fanout struct {
	registry *Registry
	logger   *slog.Logger
}

func NewFanout(registry *Registry, logger *slog.Logger) *Fanout {
	return &Fanout{
		registry: registry,
		logger:   logger,
	}
}

func (f *Fanout) HandleExpenseCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ExpenseCreatedEvent)
	if !ok {
		return fmt.Errorf("expected ExpenseCreatedEvent, got %T", event)
	}

	f.push(e.UserID(), Envelope{
		Type: PushExpenseCreated,
		Payload: map[string]string{
			"id":    e.ExpenseID,
			"month": e.Month,
		},
	})
	return nil
}

func (f *Fanout) HandleNotificationCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.NotificationCreatedEvent)
	if !ok {
		return fmt.Errorf("expected NotificationCreatedEvent, got %T", event)
	}

	f.push(e.UserID(), Envelope{
		Type:    PushNotificationCreated,
		Payload: e.Notification,
	})
	return nil
}

func (f *Fanout) HandleBudgetUpdated(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.BudgetUpdatedEvent)
	if !ok {
		return fmt.Errorf("expected BudgetUpdatedEvent, got %T", event)
	}

	f.push(e.UserID(), Envelope{
		Type:    PushBudgetUpdated,
		Payload: map[string]string{"month": e.Month},
	})
	return nil
}

func (f *Fanout) push(userID string, env Envelope) {
	sessions := f.registry.SessionCount(userID)
	if sessions == 0 {
		// Nobody attached; the client reconciles on its next full refresh.
		return
	}

	delivered := f.registry.Broadcast(userID, env)
	if delivered < sessions {
		f.logger.Warn("dropped push to slow sessions",
			"user_id", userID,
			"event", env.Type,
			"delivered", delivered,
			"sessions", sessions)
	}
}

func (f *Fanout) RegisterEventHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeExpenseCreated, f.HandleExpenseCreated)
	bus.Subscribe(events.EventTypeNotificationCreated, f.HandleNotificationCreated)
	bus.Subscribe(events.EventTypeBudgetUpdated, f.HandleBudgetUpdated)

	f.logger.Info("realtime event handlers registered",
		"handlers", []string{
			events.EventTypeExpenseCreated,
			events.EventTypeNotificationCreated,
			events.EventTypeBudgetUpdated,
		})
}
