package notification

import (
	"context"
	"fmt"
	"time"

	"handimatch/models"
	"handimatch/services/tasks"
	"handimatch/services/workflow"
	"handimatch/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notify stores one notification per intent and enqueues a push task
// for each. Failures are logged and dropped; no workflow action ever
// fails because a notification could not be delivered.
func (s *DefaultNotificationService) Notify(ctx context.Context, intents ...workflow.NotificationIntent) {
	logger := utils.GetLogger().Named("notification")

	for _, intent := range intents {
		n := &models.Notification{
			ID:            uuid.NewString(),
			UserID:        intent.UserID,
			Type:          intent.Type,
			Title:         intent.Title,
			Message:       intent.Message,
			RequestID:     intent.RequestID,
			RelatedUserID: intent.RelatedUserID,
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.Repo.Insert(n); err != nil {
			logger.Warn("failed to store notification",
				zap.String("userID", intent.UserID),
				zap.String("type", intent.Type),
				zap.Error(err))
			continue
		}
		s.enqueuePush(ctx, logger, n)
	}
}

func (s *DefaultNotificationService) enqueuePush(ctx context.Context, logger *zap.Logger, n *models.Notification) {
	if s.Queue == nil {
		return
	}
	task, err := tasks.NewPushTask(models.PushPayload{
		UserID:         n.UserID,
		NotificationID: n.ID,
		Title:          n.Title,
		Body:           n.Message,
		RequestID:      n.RequestID,
	})
	if err != nil {
		logger.Warn("failed to build push task", zap.String("notificationID", n.ID), zap.Error(err))
		return
	}
	if _, err := s.Queue.EnqueueContext(ctx, task); err != nil {
		logger.Warn("failed to enqueue push task", zap.String("notificationID", n.ID), zap.Error(err))
	}
}

// Inbox returns a user's notifications, newest first, with the unread
// count.
func (s *DefaultNotificationService) Inbox(userID string) (*Inbox, error) {
	list, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	unread, err := s.Repo.CountUnread(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return &Inbox{Notifications: list, UnreadCount: unread}, nil
}

// MarkRead marks one notification read, scoped to its owner.
func (s *DefaultNotificationService) MarkRead(notificationID, userID string) (bool, error) {
	return s.Repo.MarkRead(notificationID, userID)
}

// MarkAllRead marks every notification of the user read.
func (s *DefaultNotificationService) MarkAllRead(userID string) (int64, error) {
	return s.Repo.MarkAllRead(userID)
}
