package user

import (
	"fmt"

	userRepo "handimatch/database/repository/user"
	"handimatch/models"
	"handimatch/services/rating"
	"handimatch/utils"

	"go.uber.org/zap"
)

const recentActivityLimit = 5

// GetUserByID fetches a single user record.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// GetProfile assembles the profile aggregate. Artisan stats are
// recomputed from the ratings collection rather than read from the
// user document.
func (s *DefaultUserService) GetProfile(userID string) (*Profile, error) {
	logger := utils.GetLogger().Named("user")

	u, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: *u}
	profile.User.PasswordHash = ""

	if u.IsArtisan() {
		ratings, err := s.Ratings.ListByArtisan(u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list ratings: %w", err)
		}
		stats := rating.Recompute(ratings)
		profile.Stats = &stats

		jobs, err := s.Requests.CountCompletedByArtisan(u.ID)
		if err != nil {
			logger.Warn("failed to count completed jobs", zap.String("userID", u.ID), zap.Error(err))
		} else {
			profile.CompletedJobs = jobs
		}

		sub, err := s.Records.ActiveSubscription(u.ID)
		if err != nil {
			logger.Warn("failed to load subscription", zap.String("userID", u.ID), zap.Error(err))
		} else {
			profile.Subscription = sub
		}

		training, err := s.Records.ListTraining(u.ID)
		if err != nil {
			logger.Warn("failed to load training records", zap.String("userID", u.ID), zap.Error(err))
		} else {
			profile.Training = training
		}
	}

	recent, err := s.Requests.ListRecentForUser(u.ID, recentActivityLimit)
	if err != nil {
		logger.Warn("failed to load recent activity", zap.String("userID", u.ID), zap.Error(err))
	} else {
		profile.RecentActivity = recent
	}

	return profile, nil
}

// UpdateProfile applies the non-zero fields of the update to the user
// document and returns the refreshed record.
func (s *DefaultUserService) UpdateProfile(userID string, updates ProfileUpdate) (*models.User, error) {
	if _, err := s.GetUserByID(userID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if updates.Phone != "" {
		fields["phone"] = updates.Phone
	}
	if updates.FirstName != "" {
		fields["firstName"] = updates.FirstName
	}
	if updates.LastName != "" {
		fields["lastName"] = updates.LastName
	}
	if updates.Name != "" {
		fields["name"] = updates.Name
	}
	if updates.Profession != "" {
		fields["profession"] = updates.Profession
	}
	if updates.Location != "" {
		fields["location"] = updates.Location
	}
	if updates.Description != "" {
		fields["description"] = updates.Description
	}
	if updates.FCMToken != "" {
		fields["fcmToken"] = updates.FCMToken
	}
	if len(fields) > 0 {
		if err := s.Repo.UpdateFields(userID, fields); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return s.GetUserByID(userID)
}

// UpdatePhoto records a newly uploaded profile photo URL.
func (s *DefaultUserService) UpdatePhoto(userID, photoURL string) error {
	if _, err := s.GetUserByID(userID); err != nil {
		return err
	}
	if err := s.Repo.UpdateFields(userID, map[string]any{"photo": photoURL}); err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}
	return nil
}

// SearchArtisans runs the artisan directory search.
func (s *DefaultUserService) SearchArtisans(criteria userRepo.SearchCriteria) ([]models.User, error) {
	return s.Repo.SearchArtisans(criteria)
}

// RevokeAuthToken invalidates the user's cached session token.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	return utils.RevokeAuthToken(userID)
}
