package requestRepo

import (
	"handimatch/models"
	"handimatch/services/workflow"
)

// ListFilter narrows a request listing.
type ListFilter struct {
	Profession string
	Location   string // case-insensitive partial match
}

// RequestRepository defines data access for service requests. It
// includes the workflow.Gateway surface plus the listing queries the
// browse and profile pages need.
type RequestRepository interface {
	// InsertRequest inserts a new request document.
	InsertRequest(req *models.ServiceRequest) error
	// FetchRequest retrieves a request by id; nil when not found.
	FetchRequest(id string) (*models.ServiceRequest, error)
	// ApplyDecision applies a workflow decision with a conditional
	// update carrying the decision's guards. Returns false when the
	// filter matched no document.
	ApplyDecision(id string, d *workflow.Decision) (bool, error)
	// ListByClient returns a client's own requests, newest first.
	ListByClient(clientID string) ([]models.ServiceRequest, error)
	// ListOpen returns browsable requests for artisans, newest first.
	ListOpen(f ListFilter) ([]models.ServiceRequest, error)
	// ListRecentForUser returns the latest requests where the user is
	// either the client or the assigned artisan.
	ListRecentForUser(userID string, limit int64) ([]models.ServiceRequest, error)
	// CountCompletedByArtisan counts completed requests assigned to an
	// artisan.
	CountCompletedByArtisan(artisanID string) (int64, error)
}
