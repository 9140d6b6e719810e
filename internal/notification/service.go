package notification

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
)

const (
	DefaultListLimit = 100
)

// ValidationError represents a simple validation error.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Service handles notification reads and the read-marking write.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ListNotifications returns the caller's notifications, newest first.
func (s *Service) ListNotifications(userID string, params ListParams) ([]Notification, error) {
	if params.Month != "" && !internal.ValidMonth(params.Month) {
		return nil, ValidationError{Msg: "month must be in YYYY-MM format"}
	}
	if params.Limit <= 0 || params.Limit > DefaultListLimit {
		params.Limit = DefaultListLimit
	}

	records, err := s.repo.ListByUser(userID, params.Month, params.Limit)
	if err != nil {
		s.logger.Error("failed to list notifications", "error", err, "user_id", userID)
		return nil, err
	}

	notifications := make([]Notification, 0, len(records))
	for _, r := range records {
		notifications = append(notifications, fromDatamodel(r))
	}
	return notifications, nil
}

// MarkRead marks a notification as read. Marking twice is a no-op that
// keeps the original read time. A notification owned by someone else is
// reported as not found, not as forbidden.
func (s *Service) MarkRead(userID, notificationID string) (Notification, error) {
	record, err := s.repo.GetByIDForUser(userID, notificationID)
	if err != nil {
		s.logger.Error("failed to load notification", "error", err, "user_id", userID)
		return Notification{}, err
	}
	if record == nil {
		return Notification{}, internal.ErrNotificationNotFound
	}

	if record.ReadAt != nil {
		return fromDatamodel(record), nil
	}

	readAt := s.now().UTC()
	if err := s.repo.MarkRead(record.ID, readAt); err != nil {
		s.logger.Error("failed to mark notification read", "error", err, "notification_id", record.ID)
		return Notification{}, err
	}

	record.ReadAt = &readAt
	return fromDatamodel(record), nil
}
