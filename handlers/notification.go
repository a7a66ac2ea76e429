package handlers

import (
	"net/http"

	"handimatch/services/notification"
	"handimatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListNotificationsHandler returns the caller's inbox.
func ListNotificationsHandler(notifSvc notification.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		inbox, err := notifSvc.Inbox(userID)
		if err != nil {
			logger.Error("Failed to list notifications", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list notifications", "")
			return
		}

		c.JSON(http.StatusOK, inbox)
	}
}

// MarkReadHandler marks one notification read.
func MarkReadHandler(notifSvc notification.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		var input struct {
			NotificationID string `json:"notificationId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		found, err := notifSvc.MarkRead(input.NotificationID, userID)
		if err != nil {
			logger.Error("Failed to mark notification read", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to mark notification read", "")
			return
		}
		if !found {
			utils.JSONError(c, http.StatusNotFound, "Notification not found", "")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
	}
}

// MarkAllReadHandler marks every notification of the caller read.
func MarkAllReadHandler(notifSvc notification.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		modified, err := notifSvc.MarkAllRead(userID)
		if err != nil {
			logger.Error("Failed to mark notifications read", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to mark notifications read", "")
			return
		}

		c.JSON(http.StatusOK, gin.H{"modified": modified})
	}
}
