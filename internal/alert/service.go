package alert

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
	notificationDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
)

// Service runs the alert pipeline for one (user, month): aggregate the
// ledger, evaluate thresholds, suppress recently raised candidates and
// persist the survivors. It is invoked synchronously from ledger
// mutations; delivery to live sessions is the caller's concern.
type Service struct {
	aggregates    AggregationReader
	budgets       BudgetReader
	notifications NotificationStore
	window        time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

func NewService(aggregates AggregationReader, budgets BudgetReader, notifications NotificationStore, window time.Duration, logger *slog.Logger) *Service {
	if window <= 0 {
		window = internal.DefaultDedupWindow
	}
	return &Service{
		aggregates:    aggregates,
		budgets:       budgets,
		notifications: notifications,
		window:        window,
		logger:        logger,
		now:           time.Now,
	}
}

// EvaluateAndNotify computes candidate alerts for the month and persists
// the ones not raised within the trailing dedup window. The returned
// slice holds only newly created notifications, in evaluation order; it
// is empty (not an error) when everything was suppressed or no budget
// exists.
//
// Suppression is a pure time-window rule keyed on (user, month, type,
// message): an identical candidate is dropped if a matching
// notification was created less than one window ago, regardless of
// whether spend dipped back under the threshold in between.
func (s *Service) EvaluateAndNotify(userID, month string) ([]*notificationDatamodel.Notification, error) {
	budget, err := s.budgets.BudgetForMonth(userID, month)
	if err != nil {
		s.logger.Error("failed to load budget for evaluation", "error", err, "user_id", userID, "month", month)
		return nil, err
	}
	if budget == nil {
		// No budget for the month means no alerting; not an error.
		return []*notificationDatamodel.Notification{}, nil
	}

	limits, err := s.budgets.LimitsForBudget(budget.ID)
	if err != nil {
		s.logger.Error("failed to load category limits", "error", err, "budget_id", budget.ID)
		return nil, err
	}

	agg, err := s.aggregates.Aggregate(userID, month)
	if err != nil {
		s.logger.Error("failed to aggregate spend", "error", err, "user_id", userID, "month", month)
		return nil, err
	}

	candidates := Evaluate(budget, limits, agg)
	if len(candidates) == 0 {
		return []*notificationDatamodel.Notification{}, nil
	}

	evaluatedAt := s.now()
	since := evaluatedAt.Add(-s.window)
	created := make([]*notificationDatamodel.Notification, 0, len(candidates))

	for _, candidate := range candidates {
		exists, err := s.notifications.ExistsSince(userID, month, candidate.Type, candidate.Message, since)
		if err != nil {
			s.logger.Error("dedup lookup failed", "error", err, "user_id", userID, "type", candidate.Type)
			return nil, err
		}
		if exists {
			s.logger.Debug("suppressing duplicate alert",
				"user_id", userID,
				"month", month,
				"type", candidate.Type)
			continue
		}

		n := &notificationDatamodel.Notification{
			ID:        internal.NewID("ntf"),
			UserID:    userID,
			Month:     month,
			Type:      candidate.Type,
			Message:   candidate.Message,
			CreatedAt: evaluatedAt,
		}
		if err := s.notifications.Create(n); err != nil {
			s.logger.Error("failed to persist notification", "error", err, "user_id", userID, "type", candidate.Type)
			return nil, err
		}
		created = append(created, n)
	}

	if len(created) > 0 {
		s.logger.Info("alerts raised",
			"user_id", userID,
			"month", month,
			"created", len(created),
			"candidates", len(candidates))
	}

	return created, nil
}
