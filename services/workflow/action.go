package workflow

import "handimatch/models"

// Action identifies a workflow transition. The wire values match the
// action strings the mobile and web clients already send.
type Action string

const (
	// ActionApply appends an artisan's application to a request.
	ActionApply Action = "artisan-apply"
	// ActionAcceptApplication lets the client pick one applicant.
	ActionAcceptApplication Action = "client-accept-artisan"
	// ActionLegacyArtisanAccept is the pre-application fast path where
	// an artisan takes a request directly.
	ActionLegacyArtisanAccept Action = "artisan-accept"
	// ActionLegacyClientAccept is the matching legacy client handshake.
	ActionLegacyClientAccept Action = "client-accept"
	// ActionArtisanComplete marks the work done, pending confirmation.
	ActionArtisanComplete Action = "artisan-complete"
	// ActionClientConfirm closes the handshake and completes the request.
	ActionClientConfirm Action = "client-confirm"
	// ActionRepost clears the assigned artisan and reopens the request.
	ActionRepost Action = "client-repost"
	// ActionSetStatus edits the status directly, with reset semantics
	// when it reopens or unassigns an in-progress request.
	ActionSetStatus Action = "set-status"
)

// Actor is the authenticated identity requesting a transition.
type Actor struct {
	UserID string
	Role   string
}

// Params carries action-specific inputs.
type Params struct {
	// ArtisanID names the applicant for ActionAcceptApplication.
	ArtisanID string
	// Status is the target status for ActionSetStatus.
	Status string
}

// Phase is the derived lifecycle state of a request. The persisted
// handshake booleans are outputs of the transition table; rules read
// them only through PhaseOf, never individually.
type Phase string

const (
	PhasePending               Phase = "pending"
	PhaseAwaitingClientAccept  Phase = "awaiting-client-accept"
	PhaseInProgress            Phase = "in-progress"
	PhaseAwaitingClientConfirm Phase = "awaiting-client-confirm"
	PhaseCompleted             Phase = "completed"
	PhaseCancelled             Phase = "cancelled"
)

// PhaseOf derives the lifecycle phase from a request snapshot.
func PhaseOf(r *models.ServiceRequest) Phase {
	switch r.Status {
	case models.StatusCancelled:
		return PhaseCancelled
	case models.StatusCompleted:
		return PhaseCompleted
	case models.StatusInProgress:
		if r.ArtisanCompleted && !r.ClientConfirmed {
			return PhaseAwaitingClientConfirm
		}
		if r.ArtisanAccepted && !r.ClientAccepted {
			return PhaseAwaitingClientAccept
		}
		return PhaseInProgress
	default:
		return PhasePending
	}
}
