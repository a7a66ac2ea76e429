package handlers

import (
	"errors"
	"net/http"

	"handimatch/services/user"
	"handimatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHandler creates a new client or artisan account.
func RegisterHandler(userSvc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var input user.RegistrationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		u, err := userSvc.Register(input)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrEmailTaken):
				utils.JSONError(c, http.StatusConflict, "Email already registered", "")
			case errors.Is(err, user.ErrInvalidInput):
				utils.JSONError(c, http.StatusBadRequest, "Invalid registration", err.Error())
			default:
				logger.Error("Failed to register user", zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Failed to register", "")
			}
			return
		}

		u.PasswordHash = ""
		c.JSON(http.StatusCreated, u)
	}
}

// LoginHandler authenticates a user and returns a session token.
func LoginHandler(userSvc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		resp, err := userSvc.Authenticate(input.Email, input.Password)
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
				return
			}
			logger.Error("Failed to authenticate user", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to authenticate", "")
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// LogoutHandler revokes the caller's cached session token.
func LogoutHandler(userSvc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		if err := userSvc.RevokeAuthToken(userID); err != nil {
			logger.Error("Failed to revoke auth token", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to log out", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
