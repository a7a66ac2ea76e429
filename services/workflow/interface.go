package workflow

import (
	"context"
	"time"

	"handimatch/models"
)

// Gateway is the narrow persistence contract the workflow engine
// consumes. ApplyDecision must run a single conditional update whose
// filter carries every guard of the decision; it reports false when the
// document no longer matches (a lost race).
type Gateway interface {
	FetchRequest(id string) (*models.ServiceRequest, error)
	ApplyDecision(id string, d *Decision) (bool, error)
	InsertRequest(req *models.ServiceRequest) error
}

// Notifier is the fire-and-forget notification sink. Implementations
// must never fail a workflow action; errors are logged and dropped.
type Notifier interface {
	Notify(ctx context.Context, intents ...NotificationIntent)
}

// ActionRequest is the inbound action envelope.
type ActionRequest struct {
	RequestID string `json:"requestId" binding:"required"`
	Action    Action `json:"action" binding:"required"`
	// ArtisanID names the applicant for client-accept-artisan.
	ArtisanID string `json:"artisanId,omitempty"`
	// Status is the target status for set-status.
	Status string `json:"status,omitempty"`
}

// PublishInput carries the fields of a new service request.
type PublishInput struct {
	ClientID      string
	Profession    string
	Description   string
	Urgency       string
	Location      string
	Photo         string
	PreferredDate *time.Time
}

// WorkflowService validates actions against a request's current
// snapshot, applies the resulting transition atomically and emits
// notifications.
type WorkflowService interface {
	Publish(in PublishInput) (*models.ServiceRequest, error)
	Execute(actor Actor, req ActionRequest) (*models.ServiceRequest, error)
	GetRequest(id string) (*models.ServiceRequest, error)
}

// DefaultWorkflowService is the production implementation.
type DefaultWorkflowService struct {
	Repo     Gateway
	Notifier Notifier
}
