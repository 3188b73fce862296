package store

import (
	"strings"

	"github.com/therealutkarshpriyadarshi/nexus/internal/persistence"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// SendNotification appends an unread notification addressed to one user
// or to models.GlobalAudience.
func (s *Store) SendNotification(userID, title, message string, notificationType models.NotificationType) (notification models.SystemNotification, err error) {
	defer func() {
		s.record("send_notification", err, map[string]interface{}{"audience": userID})
	}()

	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return models.SystemNotification{}, ErrValidationFailed
	}
	if userID != models.GlobalAudience && s.userIndex(userID) < 0 {
		return models.SystemNotification{}, ErrNotFound
	}
	if notificationType == "" {
		notificationType = models.NotificationTypeInfo
	}

	return s.pushNotification(userID, title, message, notificationType), nil
}

func (s *Store) pushNotification(userID, title, message string, notificationType models.NotificationType) models.SystemNotification {
	notification := models.SystemNotification{
		ID:        s.newID(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notificationType,
		Timestamp: s.now(),
	}

	s.notifications = prepend(s.notifications, notification)
	s.persist(persistence.KeyNotifications)
	return notification
}

// MarkNotificationRead flags a notification as read
func (s *Store) MarkNotificationRead(id string) error {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			s.persist(persistence.KeyNotifications)
			s.record("mark_notification_read", nil, nil)
			return nil
		}
	}

	s.record("mark_notification_read", ErrNotFound, map[string]interface{}{"notification_id": id})
	return ErrNotFound
}

// Notifications returns copies of the notifications addressed to userID,
// most recent first
func (s *Store) Notifications(userID string) []models.SystemNotification {
	out := make([]models.SystemNotification, 0)
	for i := range s.notifications {
		if s.notifications[i].IsFor(userID) {
			out = append(out, s.notifications[i])
		}
	}
	return out
}
