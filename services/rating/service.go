package rating

import (
	"context"
	"errors"
	"fmt"

	ratingRepo "handimatch/database/repository/rating"
	"handimatch/models"
	"handimatch/services/workflow"
	"handimatch/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit records a rating on a completed request, notifies the artisan
// and recomputes the artisan's stats snapshot from every rating on
// record.
func (s *DefaultRatingService) Submit(in SubmitInput) (*models.Rating, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	req, err := s.Requests.FetchRequest(in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != models.StatusCompleted {
		return nil, ErrNotCompleted
	}
	// An administrative reset can complete a request while clearing its
	// artisan; there is nobody left to rate then.
	if req.ArtisanID == "" {
		return nil, ErrNoArtisan
	}
	if req.ClientID != in.ClientID {
		return nil, ErrNotOwner
	}

	existing, err := s.Ratings.GetByRequestAndClient(in.RequestID, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing rating: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyRated
	}

	record := &models.Rating{
		ID:        uuid.NewString(),
		RequestID: in.RequestID,
		ArtisanID: req.ArtisanID,
		ClientID:  in.ClientID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.Ratings.Create(record); err != nil {
		// The unique index closes the race the read-then-insert leaves open.
		if errors.Is(err, ratingRepo.ErrDuplicate) {
			return nil, ErrAlreadyRated
		}
		return nil, fmt.Errorf("failed to store rating: %w", err)
	}

	if s.Notifier != nil {
		s.Notifier.Notify(context.Background(), workflow.NotificationIntent{
			UserID:        req.ArtisanID,
			Type:          models.NotificationRatingReceived,
			Title:         "Nouvelle évaluation",
			Message:       "Vous avez reçu une nouvelle évaluation de la part d'un client.",
			RequestID:     in.RequestID,
			RelatedUserID: in.ClientID,
		})
	}

	stats, err := s.ArtisanStats(req.ArtisanID)
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdateStats(req.ArtisanID, stats); err != nil {
		// The snapshot is only a cache; the rating itself is durable.
		utils.GetLogger().Warn("rating: failed to update artisan stats snapshot",
			zap.String("artisanId", req.ArtisanID), zap.Error(err))
	}

	return record, nil
}

// ArtisanStats recomputes an artisan's statistics from the ratings
// collection.
func (s *DefaultRatingService) ArtisanStats(artisanID string) (models.ArtisanStats, error) {
	ratings, err := s.Ratings.ListByArtisan(artisanID)
	if err != nil {
		return models.ArtisanStats{}, fmt.Errorf("failed to list ratings: %w", err)
	}
	return Recompute(ratings), nil
}
