package workflow

import "handimatch/models"

// Guard pins a field to the value the engine observed in the snapshot.
// The persistence gateway must include every guard in the conditional
// update filter so that a transition observed against a stale snapshot
// matches zero documents instead of clobbering a concurrent one.
type Guard struct {
	Field string
	Value any
	// Exclude inverts the guard: the filter requires Field != Value.
	Exclude bool
}

// Patch is the computed state delta for a single transition.
type Patch struct {
	// Set maps document fields to their new values.
	Set map[string]any
	// PushApplication appends one application entry, when non-nil.
	PushApplication *models.Application
}

// NotificationIntent is a fire-and-forget notification the caller
// should emit after the patch is applied. Delivery is best-effort and
// never affects the transition outcome.
type NotificationIntent struct {
	UserID        string
	Type          string
	Title         string
	Message       string
	RequestID     string
	RelatedUserID string
}

// Decision is the validated outcome of one workflow action: the patch
// to apply, the guards the conditional update must carry, and the
// notifications to emit.
type Decision struct {
	Action        Action
	Patch         Patch
	Guards        []Guard
	Notifications []NotificationIntent
}
