package subscription

import (
	recordsRepo "handimatch/database/repository/records"
	userRepo "handimatch/database/repository/user"
	"handimatch/models"
)

// SubscribeInput carries a plan purchase.
type SubscribeInput struct {
	UserID        string `json:"-"`
	Plan          string `json:"plan" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

// TrainingInput carries a completed training to record.
type TrainingInput struct {
	UserID   string `json:"-"`
	Title    string `json:"title" binding:"required"`
	Provider string `json:"provider"`
}

// SubscriptionService manages artisan plans and training records.
type SubscriptionService interface {
	Subscribe(in SubscribeInput) (*models.Subscription, error)
	ActiveSubscription(userID string) (*models.Subscription, error)
	RecordTraining(in TrainingInput) (*models.TrainingRecord, error)
	ListTraining(userID string) ([]models.TrainingRecord, error)
}

// DefaultSubscriptionService is the production implementation.
type DefaultSubscriptionService struct {
	Records recordsRepo.RecordsRepository
	Users   userRepo.UserRepository
}
