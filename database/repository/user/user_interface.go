package userRepo

import "handimatch/models"

// SearchCriteria holds parameters for the artisan search.
type SearchCriteria struct {
	Query      string // case-insensitive match on name, profession, description
	Profession string // exact profession filter
	Location   string // case-insensitive partial match
	Limit      int64
}

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID; nil when not found.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address; nil when not found.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// UpdateFields sets individual fields on a user document.
	UpdateFields(id string, fields map[string]any) error
	// UpdateStats writes the denormalized artisan stats snapshot.
	UpdateStats(artisanID string, stats models.ArtisanStats) error
	// SearchArtisans searches artisan profiles by the given criteria.
	SearchArtisans(criteria SearchCriteria) ([]models.User, error)
}
