package notification

import "time"

// Notification types mirror the alert types that produce them.
const (
	TypeBudgetWarning    = "budget_warning"
	TypeBudgetExceeded   = "budget_exceeded"
	TypeCategoryWarning  = "category_warning"
	TypeCategoryExceeded = "category_exceeded"
)

// Notification is a persisted, user-visible record of an alert that
// survived deduplication. Rows are never deleted; the only mutation is
// setting ReadAt once.
type Notification struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"column:user_id;not null;index:idx_notifications_user_month"`
	Month     string     `json:"month" gorm:"not null;index:idx_notifications_user_month"` // YYYY-MM
	Type      string     `json:"type" gorm:"not null"`
	Message   string     `json:"message" gorm:"not null"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty" gorm:"column:read_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
