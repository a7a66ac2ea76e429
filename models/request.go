package models

import "time"

// Request statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Urgency levels for a service request.
const (
	UrgencyNormal     = "normal"
	UrgencyUrgent     = "urgent"
	UrgencyVeryUrgent = "very_urgent"
)

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
)

// ValidStatus reports whether s is a recognized request status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Application is an artisan's expression of interest in a request.
// The applications list is append-only until a reset clears it.
type Application struct {
	ArtisanID string    `bson:"artisanId" json:"artisanId"`
	AppliedAt time.Time `bson:"appliedAt" json:"appliedAt"`
	Status    string    `bson:"status" json:"status"`
}

// ServiceRequest is a client's published home-repair request and the
// central entity of the marketplace. ArtisanID is empty while no
// artisan is assigned. The four handshake booleans are written only by
// the workflow engine; they are never mutated independently.
type ServiceRequest struct {
	ID            string     `bson:"id" json:"id"`
	ClientID      string     `bson:"clientId" json:"clientId"`
	Profession    string     `bson:"profession" json:"profession"`
	Description   string     `bson:"description" json:"description"`
	Urgency       string     `bson:"urgency" json:"urgency"`
	PreferredDate *time.Time `bson:"preferredDate,omitempty" json:"preferredDate,omitempty"`
	Location      string     `bson:"location" json:"location"`
	Photo         string     `bson:"photo,omitempty" json:"photo,omitempty"`

	Status       string        `bson:"status" json:"status"`
	Applications []Application `bson:"applications" json:"applications"`
	ArtisanID    string        `bson:"artisanId" json:"artisanId"`

	ArtisanAccepted    bool       `bson:"artisanAccepted" json:"artisanAccepted"`
	ArtisanAcceptedAt  *time.Time `bson:"artisanAcceptedAt,omitempty" json:"artisanAcceptedAt,omitempty"`
	ClientAccepted     bool       `bson:"clientAccepted" json:"clientAccepted"`
	ClientAcceptedAt   *time.Time `bson:"clientAcceptedAt,omitempty" json:"clientAcceptedAt,omitempty"`
	ArtisanCompleted   bool       `bson:"artisanCompleted" json:"artisanCompleted"`
	ArtisanCompletedAt *time.Time `bson:"artisanCompletedAt,omitempty" json:"artisanCompletedAt,omitempty"`
	ClientConfirmed    bool       `bson:"clientConfirmed" json:"clientConfirmed"`
	ClientConfirmedAt  *time.Time `bson:"clientConfirmedAt,omitempty" json:"clientConfirmedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ApplicationIndex returns the position of artisanID's application in
// the applications list, or -1 when the artisan has not applied.
func (r *ServiceRequest) ApplicationIndex(artisanID string) int {
	for i, app := range r.Applications {
		if app.ArtisanID == artisanID {
			return i
		}
	}
	return -1
}
