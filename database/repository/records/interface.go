package recordsRepo

import "handimatch/models"

// RecordsRepository defines data access for artisan subscriptions and
// training records.
type RecordsRepository interface {
	// CreateSubscription inserts a subscription record.
	CreateSubscription(sub *models.Subscription) error
	// ActiveSubscription returns a user's active subscription; nil when
	// none exists.
	ActiveSubscription(userID string) (*models.Subscription, error)
	// DeactivateSubscriptions marks every subscription of a user
	// inactive; used before activating a new plan.
	DeactivateSubscriptions(userID string) error
	// CreateTraining inserts a training record.
	CreateTraining(rec *models.TrainingRecord) error
	// ListTraining returns a user's training records.
	ListTraining(userID string) ([]models.TrainingRecord, error)
}
