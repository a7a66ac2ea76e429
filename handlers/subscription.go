package handlers

import (
	"errors"
	"net/http"

	"handimatch/services/subscription"
	"handimatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubscribeHandler purchases a plan for the authenticated artisan.
func SubscribeHandler(subSvc subscription.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		var input subscription.SubscribeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		input.UserID = userID

		sub, err := subSvc.Subscribe(input)
		if err != nil {
			switch {
			case errors.Is(err, subscription.ErrUnknownPlan):
				utils.JSONError(c, http.StatusBadRequest, "Unknown plan", "")
			case errors.Is(err, subscription.ErrNotArtisan):
				utils.JSONError(c, http.StatusForbidden, "Only artisans can subscribe", "")
			default:
				logger.Error("Failed to subscribe", zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Failed to subscribe", "")
			}
			return
		}

		c.JSON(http.StatusCreated, sub)
	}
}

// ActiveSubscriptionHandler returns the caller's active plan, if any.
func ActiveSubscriptionHandler(subSvc subscription.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		sub, err := subSvc.ActiveSubscription(userID)
		if err != nil {
			logger.Error("Failed to load subscription", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load subscription", "")
			return
		}
		if sub == nil {
			c.JSON(http.StatusOK, gin.H{"subscription": nil})
			return
		}

		c.JSON(http.StatusOK, gin.H{"subscription": sub})
	}
}

// ListTrainingHandler returns the caller's training records.
func ListTrainingHandler(subSvc subscription.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		records, err := subSvc.ListTraining(userID)
		if err != nil {
			logger.Error("Failed to list training records", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list training records", "")
			return
		}

		c.JSON(http.StatusOK, gin.H{"training": records, "count": len(records)})
	}
}

// RecordTrainingHandler stores a completed training for the caller.
func RecordTrainingHandler(subSvc subscription.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		var input subscription.TrainingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		input.UserID = userID

		rec, err := subSvc.RecordTraining(input)
		if err != nil {
			if errors.Is(err, subscription.ErrNotArtisan) {
				utils.JSONError(c, http.StatusForbidden, "Only artisans can record training", "")
				return
			}
			logger.Error("Failed to record training", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to record training", "")
			return
		}

		c.JSON(http.StatusCreated, rec)
	}
}
