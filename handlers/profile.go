package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"handimatch/services/storage"
	"handimatch/services/user"
	"handimatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetProfileHandler returns the authenticated user's profile aggregate.
func GetProfileHandler(userSvc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		profile, err := userSvc.GetProfile(userID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				utils.JSONError(c, http.StatusNotFound, "Profile not found", "")
				return
			}
			logger.Error("Failed to get profile", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve profile", "")
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

// UpdateProfileHandler updates the authenticated user's profile fields.
func UpdateProfileHandler(userSvc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		var updates user.ProfileUpdate
		if err := c.ShouldBindJSON(&updates); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		updated, err := userSvc.UpdateProfile(userID, updates)
		if err != nil {
			logger.Error("Failed to update profile", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update profile", "")
			return
		}

		updated.PasswordHash = ""
		c.JSON(http.StatusOK, updated)
	}
}

// UploadPhotoHandler accepts a multipart photo, stores it and records
// the resulting URL on the user's profile.
func UploadPhotoHandler(userSvc user.UserService, storageSvc storage.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		if storageSvc == nil {
			utils.JSONError(c, http.StatusServiceUnavailable, "Photo uploads are not available", "")
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Missing photo file", "")
			return
		}

		var oldPhoto string
		if u, err := userSvc.GetUserByID(userID); err == nil {
			oldPhoto = u.Photo
		}

		tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, tmpPath); err != nil {
			logger.Error("Failed to save uploaded photo", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to process photo", "")
			return
		}
		defer os.Remove(tmpPath)

		url, err := storageSvc.UploadFile(c.Request.Context(), tmpPath, "profiles")
		if err != nil {
			logger.Error("Failed to upload photo", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to upload photo", "")
			return
		}

		if err := userSvc.UpdatePhoto(userID, url); err != nil {
			logger.Error("Failed to record photo URL", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update profile photo", "")
			return
		}

		// The replaced asset is garbage once the new URL is recorded.
		if publicID := storage.PublicIDFromURL(oldPhoto); publicID != "" {
			if err := storageSvc.DeleteFile(c.Request.Context(), publicID); err != nil {
				logger.Warn("Failed to delete replaced photo", zap.String("publicID", publicID), zap.Error(err))
			}
		}

		c.JSON(http.StatusOK, gin.H{"photo": url})
	}
}
