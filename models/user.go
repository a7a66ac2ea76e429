package models

import "time"

// User types.
const (
	UserTypeClient  = "client"
	UserTypeArtisan = "artisan"
)

// ArtisanStats is a denormalized snapshot of an artisan's public
// statistics. The ratings collection is authoritative; this copy is
// recomputed after every rating submission and must not be used as a
// source of truth.
type ArtisanStats struct {
	CompletedRequests int     `bson:"completedRequests" json:"completedRequests"`
	AverageRating     float64 `bson:"averageRating" json:"averageRating"`
	SatisfactionRate  float64 `bson:"satisfactionRate" json:"satisfactionRate"`
}

// User represents a platform account, either a client or an artisan.
// Client and artisan profiles share one collection; the field sets
// differ by userType.
type User struct {
	ID           string `bson:"id" json:"id"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	UserType     string `bson:"userType" json:"userType"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Photo        string `bson:"photo,omitempty" json:"photo,omitempty"`

	// Client fields.
	FirstName string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string `bson:"lastName,omitempty" json:"lastName,omitempty"`

	// Artisan fields.
	Name        string        `bson:"name,omitempty" json:"name,omitempty"`
	Profession  string        `bson:"profession,omitempty" json:"profession,omitempty"`
	Location    string        `bson:"location,omitempty" json:"location,omitempty"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Stats       *ArtisanStats `bson:"stats,omitempty" json:"stats,omitempty"`

	FCMToken string `bson:"fcmToken,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsArtisan reports whether the account is an artisan profile.
func (u *User) IsArtisan() bool {
	return u.UserType == UserTypeArtisan
}

// DisplayName returns the public-facing name for either account type.
func (u *User) DisplayName() string {
	if u.UserType == UserTypeClient {
		return u.FirstName + " " + u.LastName
	}
	return u.Name
}
