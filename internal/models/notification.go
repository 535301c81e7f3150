package models

import "time"

const (
	NotificationTypeInfo    = "info"
	NotificationTypeSuccess = "success"
	NotificationTypeWarning = "warning"
	NotificationTypeError   = "error"
)

// Notification 用户通知表
type Notification struct {
	ID        string    `gorm:"primarykey;type:varchar(64)" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_notification_user_read" json:"user_id"`
	Type      string    `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Read      bool      `gorm:"column:is_read;not null;default:false;index:idx_notification_user_read" json:"read"`
	Link      string    `gorm:"type:varchar(500)" json:"link"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
