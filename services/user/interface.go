package user

import (
	ratingRepo "handimatch/database/repository/rating"
	recordsRepo "handimatch/database/repository/records"
	requestRepo "handimatch/database/repository/request"
	userRepo "handimatch/database/repository/user"
	"handimatch/models"
)

// RegistrationInput carries a new account. Client and artisan
// registrations share the envelope; the profile fields differ by
// userType.
type RegistrationInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"userType" binding:"required"`
	Phone    string `json:"phone"`

	// Client fields.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Artisan fields.
	Name        string `json:"name"`
	Profession  string `json:"profession"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
}

// ProfileUpdate carries editable profile fields. Zero values are left
// untouched.
type ProfileUpdate struct {
	Phone       string `json:"phone"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Name        string `json:"name"`
	Profession  string `json:"profession"`
	Location    string `json:"location"`
	Description string `json:"description"`
	FCMToken    string `json:"fcmToken"`
}

// AuthResponse is returned on successful authentication.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	Name     string `json:"name,omitempty"`
	Photo    string `json:"photo,omitempty"`
}

// Profile is the aggregate the profile page renders. Stats are
// recomputed from the ratings collection on every read; the user
// document's stats field is never trusted here.
type Profile struct {
	User  models.User          `json:"user"`
	Stats *models.ArtisanStats `json:"stats,omitempty"`
	// CompletedJobs counts requests the artisan actually finished.
	// Unlike Stats.CompletedRequests it does not depend on the client
	// leaving a rating.
	CompletedJobs  int64                   `json:"completedJobs,omitempty"`
	Subscription   *models.Subscription    `json:"subscription,omitempty"`
	Training       []models.TrainingRecord `json:"training,omitempty"`
	RecentActivity []models.ServiceRequest `json:"recentActivity,omitempty"`
}

// UserService manages accounts, authentication and profiles.
type UserService interface {
	Register(in RegistrationInput) (*models.User, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
	GetProfile(userID string) (*Profile, error)
	UpdateProfile(userID string, updates ProfileUpdate) (*models.User, error)
	UpdatePhoto(userID, photoURL string) error
	SearchArtisans(criteria userRepo.SearchCriteria) ([]models.User, error)
	RevokeAuthToken(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Requests requestRepo.RequestRepository
	Ratings  ratingRepo.RatingRepository
	Records  recordsRepo.RecordsRepository
}
