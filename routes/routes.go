package routes

import (
	"net/http"
	"time"

	"handimatch/handlers"
	"handimatch/middleware"
	"handimatch/models"
	"handimatch/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and logout.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterProfileRoutes registers the profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.GetProfileHandler)
		api.PUT("", hb.UpdateProfileHandler)
		api.POST("/photo", hb.UploadPhotoHandler)
	}
}

// RegisterSearchRoutes registers the artisan directory search.
func RegisterSearchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/search")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.SearchArtisansHandler)
	}
}

// RegisterRequestRoutes registers the request lifecycle endpoints.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireUserType(models.UserTypeClient), hb.PublishRequestHandler)
		api.GET("", hb.ListRequestsHandler)
		api.GET("/:id", hb.GetRequestHandler)
		api.POST("/action", hb.RequestActionHandler)
		api.POST("/status", hb.RequestStatusHandler)
	}
}

// RegisterRatingRoutes registers rating submission.
func RegisterRatingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ratings")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireUserType(models.UserTypeClient), hb.SubmitRatingHandler)
	}
}

// RegisterNotificationRoutes registers the inbox endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.ListNotificationsHandler)
		api.POST("/read", hb.MarkReadHandler)
		api.POST("/read-all", hb.MarkAllReadHandler)
	}
}

// RegisterSubscriptionRoutes registers the plan and training endpoints.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscriptions")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", hb.SubscribeHandler)
		api.GET("/active", hb.ActiveSubscriptionHandler)
	}

	training := r.Group("/api/training")
	{
		training.Use(middleware.AuthMiddleware(hb.UserRepo))
		training.GET("", hb.ListTrainingHandler)
		training.POST("", hb.RecordTrainingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// background dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", healthHandler(utils.GetHealthStatus))
}

func healthHandler(snapshot func() utils.HealthStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := snapshot()
		// A zero CheckedAt means the first probe has not run yet.
		if !h.CheckedAt.IsZero() && !h.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "dependencies": h})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm HandiMatch", "dependencies": h})
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterSearchRoutes(r, hb)
	RegisterRequestRoutes(r, hb)
	RegisterRatingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterHealthRoute(r)
}
