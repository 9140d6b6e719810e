package notification

import (
	"time"

	notificationdm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
)

// Notification is the API-facing view of a stored alert.
type Notification struct {
	ID        string     `json:"id"`
	Month     string     `json:"month"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// ListParams filters the notification listing.
type ListParams struct {
	Month string // optional YYYY-MM filter
	Limit int
}

// Repository defines the data access methods for notifications.
type Repository interface {
	ListByUser(userID, month string, limit int) ([]*notificationdm.Notification, error)
	GetByIDForUser(userID, notificationID string) (*notificationdm.Notification, error)
	MarkRead(notificationID string, readAt time.Time) error
}

// ServiceAPI is what the HTTP handler needs from the notification service.
type ServiceAPI interface {
	ListNotifications(userID string, params ListParams) ([]Notification, error)
	MarkRead(userID, notificationID string) (Notification, error)
}

func fromDatamodel(n *notificationdm.Notification) Notification {
	return Notification{
		ID:        n.ID,
		Month:     n.Month,
		Type:      n.Type,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
	}
}
