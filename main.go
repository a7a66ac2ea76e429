package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"handimatch/config"
	"handimatch/cron"
	"handimatch/database"
	notificationRepoPkg "handimatch/database/repository/notification"
	ratingRepoPkg "handimatch/database/repository/rating"
	recordsRepoPkg "handimatch/database/repository/records"
	requestRepoPkg "handimatch/database/repository/request"
	userRepoPkg "handimatch/database/repository/user"
	"handimatch/handlers"
	"handimatch/middleware"
	"handimatch/routes"
	"handimatch/services/notification"
	"handimatch/services/rating"
	"handimatch/services/subscription"
	"handimatch/services/user"
	"handimatch/services/workflow"
	"handimatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Warnf("main: cloudinary unavailable, photo uploads disabled: %v", err)
		storageService = nil
	}

	stripe.Key = config.AppConfig.StripeKey

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	requestRepo := requestRepoPkg.NewMongoRequestRepo()
	ratingRepo := ratingRepoPkg.NewMongoRatingRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	recordsRepo := recordsRepoPkg.NewMongoRecordsRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:  notificationRepo,
		Queue: queueClient,
	}

	workflowService := &workflow.DefaultWorkflowService{
		Repo:     requestRepo,
		Notifier: notificationService,
	}

	ratingService := &rating.DefaultRatingService{
		Ratings:  ratingRepo,
		Requests: requestRepo,
		Users:    userRepo,
		Notifier: notificationService,
	}

	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Requests: requestRepo,
		Ratings:  ratingRepo,
		Records:  recordsRepo,
	}

	subscriptionService := &subscription.DefaultSubscriptionService{
		Records: recordsRepo,
		Users:   userRepo,
	}

	// Background push worker and health monitor.
	cron.InitPushWorker(userService)
	utils.StartHealthMonitor(utils.GetCacheClient(), utils.GetAuthCacheClient(), database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Auth endpoints.
		RegisterHandler: handlers.RegisterHandler(userService),
		LoginHandler:    handlers.LoginHandler(userService),
		LogoutHandler:   handlers.LogoutHandler(userService),

		// Profile endpoints.
		GetProfileHandler:    handlers.GetProfileHandler(userService),
		UpdateProfileHandler: handlers.UpdateProfileHandler(userService),
		UploadPhotoHandler:   handlers.UploadPhotoHandler(userService, storageService),

		// Search endpoints.
		SearchArtisansHandler: handlers.SearchArtisansHandler(userService),

		// Request endpoints.
		PublishRequestHandler: handlers.PublishRequestHandler(workflowService),
		ListRequestsHandler:   handlers.ListRequestsHandler(requestRepo),
		GetRequestHandler:     handlers.GetRequestHandler(workflowService),
		RequestActionHandler:  handlers.RequestActionHandler(workflowService),
		RequestStatusHandler:  handlers.RequestStatusHandler(workflowService),

		// Rating endpoints.
		SubmitRatingHandler: handlers.SubmitRatingHandler(ratingService),

		// Notification endpoints.
		ListNotificationsHandler: handlers.ListNotificationsHandler(notificationService),
		MarkReadHandler:          handlers.MarkReadHandler(notificationService),
		MarkAllReadHandler:       handlers.MarkAllReadHandler(notificationService),

		// Subscription and training endpoints.
		SubscribeHandler:          handlers.SubscribeHandler(subscriptionService),
		ActiveSubscriptionHandler: handlers.ActiveSubscriptionHandler(subscriptionService),
		ListTrainingHandler:       handlers.ListTrainingHandler(subscriptionService),
		RecordTrainingHandler:     handlers.RecordTrainingHandler(subscriptionService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
