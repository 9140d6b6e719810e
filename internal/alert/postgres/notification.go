package postgres

import (
	"time"

	"github.com/frahmantamala/budget-tracker/internal/alert"
	notificationDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
	"gorm.io/gorm"
)

// NotificationRepository is the dedup-side store for the alert
// pipeline: window lookups and inserts only. Listing and mark-read live
// in the notification module's repository.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) alert.NotificationStore {
	return &NotificationRepository{db: db}
}

// ExistsSince reports whether an identical notification was created at
// or after the window start. The comparison is real timestamp
// arithmetic, not string matching on formatted dates.
func (r *NotificationRepository) ExistsSince(userID, month, notifType, message string, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&notificationDatamodel.Notification{}).
		Where("user_id = ? AND month = ? AND type = ? AND message = ? AND created_at >= ?",
			userID, month, notifType, message, since).
		Count(&count).Error
	return count > 0, err
}

func (r *NotificationRepository) Create(n *notificationDatamodel.Notification) error {
	return r.db.Create(n).Error
}
