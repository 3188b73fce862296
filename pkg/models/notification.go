package models

import "time"

// GlobalAudience addresses a notification to every user
const GlobalAudience = "global"

// SystemNotification is a message pushed to one user or to everyone
type SystemNotification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}

// NotificationType is the category tag of a notification
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeAlert   NotificationType = "alert"
)

// IsGlobal reports whether the notification targets every user
func (n *SystemNotification) IsGlobal() bool {
	return n.UserID == GlobalAudience
}

// IsFor reports whether userID is in the notification's audience
func (n *SystemNotification) IsFor(userID string) bool {
	return n.IsGlobal() || n.UserID == userID
}
