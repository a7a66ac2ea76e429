package rating

import (
	"errors"

	ratingRepo "handimatch/database/repository/rating"
	requestRepo "handimatch/database/repository/request"
	userRepo "handimatch/database/repository/user"
	"handimatch/models"
	"handimatch/services/workflow"
)

// Rating submission failures.
var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrRequestNotFound = errors.New("request not found")
	ErrNotCompleted    = errors.New("request is not completed")
	ErrNoArtisan       = errors.New("request has no assigned artisan")
	ErrNotOwner        = errors.New("only the request's client may rate it")
	ErrAlreadyRated    = errors.New("rating already submitted for this request")
)

// SubmitInput carries one rating submission. The rated artisan is
// always the one assigned to the request; it is not taken from the
// caller.
type SubmitInput struct {
	RequestID string `json:"requestId" binding:"required"`
	ClientID  string `json:"-"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// RatingService records ratings and maintains the artisan stats
// snapshot.
type RatingService interface {
	Submit(in SubmitInput) (*models.Rating, error)
	// ArtisanStats recomputes an artisan's statistics from the ratings
	// collection. The user document's stats field is only a cache of
	// this result.
	ArtisanStats(artisanID string) (models.ArtisanStats, error)
}

// DefaultRatingService is the production implementation.
type DefaultRatingService struct {
	Ratings  ratingRepo.RatingRepository
	Requests requestRepo.RequestRepository
	Users    userRepo.UserRepository
	Notifier workflow.Notifier
}
