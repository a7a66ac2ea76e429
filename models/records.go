package models

import "time"

// Subscription plans.
const (
	PlanBasic = "basic"
	PlanPro   = "pro"
)

// Subscription is an artisan's paid plan. At most one is active per
// artisan at a time.
type Subscription struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Plan      string    `bson:"plan" json:"plan"`
	Active    bool      `bson:"active" json:"active"`
	PaymentID string    `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Amount    int64     `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	StartedAt time.Time `bson:"startedAt" json:"startedAt"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TrainingRecord is a course or certification attached to an artisan
// profile.
type TrainingRecord struct {
	ID          string     `bson:"id" json:"id"`
	UserID      string     `bson:"userId" json:"userId"`
	Title       string     `bson:"title" json:"title"`
	Provider    string     `bson:"provider,omitempty" json:"provider,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
}
