package entities

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes notifications shown to users
type NotificationType string

const (
	NotificationTypeCallAnalyzed NotificationType = "call_analyzed"
	NotificationTypeCallReminder NotificationType = "call_reminder"
	NotificationTypeSystem       NotificationType = "system"
)

// Notification represents an in-app notification for a user
type Notification struct {
	ID             uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	OrganizationID *uuid.UUID       `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	Type           NotificationType `json:"type" gorm:"type:varchar(50);not null;default:'system'"`
	Title          string           `json:"title" gorm:"type:varchar(255);not null"`
	Message        string           `json:"message" gorm:"type:text"`
	IsRead         bool             `json:"is_read" gorm:"default:false;not null;index"`
	CreatedAt      time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a new unread notification
func NewNotification(userID uuid.UUID, typ NotificationType, title, message string) *Notification {
	return &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	}
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	n.IsRead = true
	n.UpdatedAt = time.Now()
}
