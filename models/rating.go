package models

import "time"

// Rating is a client's evaluation of an artisan's work on one
// completed request. Unique per (requestId, clientId).
type Rating struct {
	ID        string    `bson:"id" json:"id"`
	RequestID string    `bson:"requestId" json:"requestId"`
	ArtisanID string    `bson:"artisanId" json:"artisanId"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
