package cron

import (
	"context"
	"encoding/json"
	"time"

	"handimatch/config"
	"handimatch/models"
	"handimatch/services/tasks"
	"handimatch/services/user"
	"handimatch/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitPushWorker runs the async push worker in background. Each task
// resolves the recipient's FCM token and forwards the stored
// notification to Firebase. Missing tokens and a disabled FCM client
// drop the push silently; the in-app record already exists.
func InitPushWorker(userSvc user.UserService) {
	logger := utils.GetLogger().Named("pushWorker")

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePushSend, handlePushTask(userSvc, logger))

	go func() {
		logger.Info("starting push worker")
		const maxAttempts = 5

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("push worker failed to start",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("push worker could not start, giving up")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

func handlePushTask(userSvc user.UserService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid push payload", zap.Error(err))
			return err
		}

		if utils.FCMClient == nil {
			return nil
		}

		u, err := userSvc.GetUserByID(p.UserID)
		if err != nil {
			logger.Warn("push recipient not found", zap.String("userID", p.UserID), zap.Error(err))
			return nil
		}
		if u.FCMToken == "" {
			return nil
		}

		msg := &messaging.Message{
			Token: u.FCMToken,
			Notification: &messaging.Notification{
				Title: p.Title,
				Body:  p.Body,
			},
			Data: map[string]string{
				"notificationId": p.NotificationID,
				"requestId":      p.RequestID,
			},
		}

		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			logger.Warn("failed to send push",
				zap.String("userID", p.UserID),
				zap.String("notificationID", p.NotificationID),
				zap.Error(err))
			return err
		}
		return nil
	}
}
