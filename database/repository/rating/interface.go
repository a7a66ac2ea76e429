package ratingRepo

import "handimatch/models"

// RatingRepository defines data access for ratings. The ratings
// collection is the authoritative source for artisan statistics.
type RatingRepository interface {
	// Create inserts a rating. Returns ErrDuplicate when a rating for
	// the same (requestId, clientId) pair already exists.
	Create(rating *models.Rating) error
	// GetByRequestAndClient retrieves the rating a client left on a
	// request; nil when none exists.
	GetByRequestAndClient(requestID, clientID string) (*models.Rating, error)
	// ListByArtisan returns every rating an artisan has received.
	ListByArtisan(artisanID string) ([]models.Rating, error)
}
