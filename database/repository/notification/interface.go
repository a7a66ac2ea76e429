package notificationRepo

import "handimatch/models"

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	// Insert stores a notification record.
	Insert(n *models.Notification) error
	// ListByUser returns a user's notifications, newest first.
	ListByUser(userID string) ([]models.Notification, error)
	// CountUnread counts a user's unread notifications.
	CountUnread(userID string) (int64, error)
	// MarkRead marks one notification read, scoped to its owner.
	// Returns false when no matching notification exists.
	MarkRead(notificationID, userID string) (bool, error)
	// MarkAllRead marks all of a user's notifications read and returns
	// the number modified.
	MarkAllRead(userID string) (int64, error)
}
