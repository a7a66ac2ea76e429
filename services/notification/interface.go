package notification

import (
	notificationRepo "handimatch/database/repository/notification"
	"handimatch/models"
	"handimatch/services/workflow"

	"github.com/hibiken/asynq"
)

// Inbox is a user's notification list with its unread count.
type Inbox struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

// NotificationService stores in-app notifications and dispatches
// best-effort FCM pushes mirroring them. It implements
// workflow.Notifier.
type NotificationService interface {
	workflow.Notifier
	Inbox(userID string) (*Inbox, error)
	MarkRead(notificationID, userID string) (bool, error)
	MarkAllRead(userID string) (int64, error)
}

// DefaultNotificationService is the production implementation. Queue
// may be nil, in which case pushes are skipped and only the in-app
// record is stored.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Queue *asynq.Client
}
