package user

import (
	"testing"

	ratingRepo "handimatch/database/repository/rating"
	recordsRepo "handimatch/database/repository/records"
	requestRepo "handimatch/database/repository/request"
	userRepo "handimatch/database/repository/user"
	"handimatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	userRepo.UserRepository
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeRequestRepo struct {
	requestRepo.RequestRepository
	completedBy map[string]int64
	recent      []models.ServiceRequest
}

func (f *fakeRequestRepo) CountCompletedByArtisan(artisanID string) (int64, error) {
	return f.completedBy[artisanID], nil
}

func (f *fakeRequestRepo) ListRecentForUser(userID string, limit int64) ([]models.ServiceRequest, error) {
	if int64(len(f.recent)) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

type fakeRatingRepo struct {
	ratingRepo.RatingRepository
	ratings []models.Rating
}

func (f *fakeRatingRepo) ListByArtisan(artisanID string) ([]models.Rating, error) {
	var out []models.Rating
	for _, r := range f.ratings {
		if r.ArtisanID == artisanID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeRecordsRepo struct {
	recordsRepo.RecordsRepository
	subscription *models.Subscription
	training     []models.TrainingRecord
}

func (f *fakeRecordsRepo) ActiveSubscription(userID string) (*models.Subscription, error) {
	return f.subscription, nil
}

func (f *fakeRecordsRepo) ListTraining(userID string) ([]models.TrainingRecord, error) {
	return f.training, nil
}

func newProfileService(users ...*models.User) (*DefaultUserService, *fakeRequestRepo, *fakeRatingRepo, *fakeRecordsRepo) {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	requests := &fakeRequestRepo{completedBy: map[string]int64{}}
	ratings := &fakeRatingRepo{}
	records := &fakeRecordsRepo{}
	svc := &DefaultUserService{
		Repo:     repo,
		Requests: requests,
		Ratings:  ratings,
		Records:  records,
	}
	return svc, requests, ratings, records
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _, _, _ := newProfileService()

	_, err := svc.GetProfile("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProfileClient(t *testing.T) {
	svc, requests, _, _ := newProfileService(&models.User{
		ID:           "client-1",
		UserType:     models.UserTypeClient,
		FirstName:    "Marie",
		PasswordHash: "secret",
	})
	requests.recent = []models.ServiceRequest{{ID: "req-1", ClientID: "client-1"}}

	profile, err := svc.GetProfile("client-1")
	require.NoError(t, err)

	assert.Empty(t, profile.User.PasswordHash)
	assert.Nil(t, profile.Stats, "clients carry no artisan stats")
	assert.Zero(t, profile.CompletedJobs)
	assert.Len(t, profile.RecentActivity, 1)
}

func TestGetProfileArtisanAggregates(t *testing.T) {
	svc, requests, ratings, records := newProfileService(&models.User{
		ID:         "artisan-1",
		UserType:   models.UserTypeArtisan,
		Name:       "Atelier Dupont",
		Profession: "plombier",
	})
	ratings.ratings = []models.Rating{
		{ID: "r1", ArtisanID: "artisan-1", Rating: 5},
		{ID: "r2", ArtisanID: "artisan-1", Rating: 4},
		{ID: "r3", ArtisanID: "other", Rating: 1},
	}
	requests.completedBy["artisan-1"] = 7
	records.subscription = &models.Subscription{ID: "sub-1", UserID: "artisan-1", Active: true}
	records.training = []models.TrainingRecord{{ID: "tr-1", UserID: "artisan-1", Title: "Soudure"}}

	profile, err := svc.GetProfile("artisan-1")
	require.NoError(t, err)

	require.NotNil(t, profile.Stats)
	assert.Equal(t, 2, profile.Stats.CompletedRequests)
	assert.InDelta(t, 4.5, profile.Stats.AverageRating, 0.001)

	// Completed jobs come from the requests collection, independently
	// of how many clients rated.
	assert.Equal(t, int64(7), profile.CompletedJobs)

	require.NotNil(t, profile.Subscription)
	assert.Equal(t, "sub-1", profile.Subscription.ID)
	assert.Len(t, profile.Training, 1)
}
