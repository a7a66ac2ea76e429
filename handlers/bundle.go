package handlers

import (
	userRepoPkg "handimatch/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc

	// Profile endpoints
	GetProfileHandler    gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc
	UploadPhotoHandler   gin.HandlerFunc

	// Search endpoints
	SearchArtisansHandler gin.HandlerFunc

	// Request endpoints
	PublishRequestHandler gin.HandlerFunc
	ListRequestsHandler   gin.HandlerFunc
	GetRequestHandler     gin.HandlerFunc
	RequestActionHandler  gin.HandlerFunc
	RequestStatusHandler  gin.HandlerFunc

	// Rating endpoints
	SubmitRatingHandler gin.HandlerFunc

	// Notification endpoints
	ListNotificationsHandler gin.HandlerFunc
	MarkReadHandler          gin.HandlerFunc
	MarkAllReadHandler       gin.HandlerFunc

	// Subscription and training endpoints
	SubscribeHandler          gin.HandlerFunc
	ActiveSubscriptionHandler gin.HandlerFunc
	ListTrainingHandler       gin.HandlerFunc
	RecordTrainingHandler     gin.HandlerFunc
}
