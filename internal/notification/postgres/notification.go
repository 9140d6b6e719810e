package notification

import (
	"errors"
	"time"

	notificationdm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) ListByUser(userID, month string, limit int) ([]*notificationdm.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if month != "" {
		query = query.Where("month = ?", month)
	}

	var notifications []*notificationdm.Notification
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetByIDForUser returns nil, nil when the notification does not exist
// or belongs to another user; callers cannot tell the two apart.
func (r *Repository) GetByIDForUser(userID, notificationID string) (*notificationdm.Notification, error) {
	var notification notificationdm.Notification
	err := r.db.Where("user_id = ? AND id = ?", userID, notificationID).First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkRead only fills read_at when it is still null, so a concurrent
// double-mark keeps the earliest timestamp.
func (r *Repository) MarkRead(notificationID string, readAt time.Time) error {
	return r.db.Model(&notificationdm.Notification{}).
		Where("id = ? AND read_at IS NULL", notificationID).
		Update("read_at", readAt).Error
}
