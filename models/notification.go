package models

import "time"

// Notification types.
const (
	NotificationApplicationReceived = "application_received"
	NotificationApplicationAccepted = "application_accepted"
	NotificationRequestCompleted    = "request_completed"
	NotificationRatingReceived      = "rating_received"
)

// Notification is an informational record for a user. Nothing in the
// workflow depends on one being delivered.
type Notification struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	Type          string    `bson:"type" json:"type"`
	Title         string    `bson:"title" json:"title"`
	Message       string    `bson:"message" json:"message"`
	RequestID     string    `bson:"requestId,omitempty" json:"requestId,omitempty"`
	RelatedUserID string    `bson:"relatedUserId,omitempty" json:"relatedUserId,omitempty"`
	IsRead        bool      `bson:"isRead" json:"isRead"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// PushPayload is the asynq task payload for a best-effort FCM push
// mirroring a stored notification.
type PushPayload struct {
	UserID         string `json:"userId"`
	NotificationID string `json:"notificationId"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	RequestID      string `json:"requestId,omitempty"`
}
