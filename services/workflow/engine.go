package workflow

import (
	"fmt"
	"time"

	"handimatch/models"
)

// transition validates one action against a request snapshot and
// computes its state delta. Transitions are pure: they never fetch
// data and never mutate the snapshot.
type transition func(snap *models.ServiceRequest, actor Actor, params Params, now time.Time) (*Decision, error)

var transitions = map[Action]transition{
	ActionApply:               decideApply,
	ActionAcceptApplication:   decideAcceptApplication,
	ActionLegacyArtisanAccept: decideLegacyArtisanAccept,
	ActionLegacyClientAccept:  decideLegacyClientAccept,
	ActionArtisanComplete:     decideArtisanComplete,
	ActionClientConfirm:       decideClientConfirm,
	ActionRepost:              decideRepost,
	ActionSetStatus:           decideSetStatus,
}

// Decide validates action against the snapshot and returns the state
// transition to apply, or a typed workflow error.
func Decide(snap *models.ServiceRequest, action Action, actor Actor, params Params, now time.Time) (*Decision, error) {
	fn, ok := transitions[action]
	if !ok {
		return nil, NewError(CodeInvalidAction, "unknown action %q", action)
	}
	return fn(snap, actor, params, now)
}

func decideApply(snap *models.ServiceRequest, actor Actor, _ Params, now time.Time) (*Decision, error) {
	if snap.ApplicationIndex(actor.UserID) >= 0 {
		return nil, NewError(CodeAlreadyApplied, "artisan %s has already applied to this request", actor.UserID)
	}

	return &Decision{
		Action: ActionApply,
		Patch: Patch{
			Set: map[string]any{"updatedAt": now},
			PushApplication: &models.Application{
				ArtisanID: actor.UserID,
				AppliedAt: now,
				Status:    models.ApplicationPending,
			},
		},
		// A concurrent duplicate application must miss the filter.
		Guards: []Guard{{Field: "applications.artisanId", Value: actor.UserID, Exclude: true}},
		Notifications: []NotificationIntent{{
			UserID:        snap.ClientID,
			Type:          models.NotificationApplicationReceived,
			Title:         "Nouvelle candidature",
			Message:       "Un artisan a postulé à votre demande.",
			RequestID:     snap.ID,
			RelatedUserID: actor.UserID,
		}},
	}, nil
}

func decideAcceptApplication(snap *models.ServiceRequest, actor Actor, params Params, now time.Time) (*Decision, error) {
	if snap.ClientID != actor.UserID {
		return nil, NewError(CodeNotOwner, "only the request's client may accept applications")
	}
	if snap.ArtisanID != "" {
		return nil, NewError(CodeAlreadyAssigned, "an artisan has already been accepted for this request")
	}
	idx := snap.ApplicationIndex(params.ArtisanID)
	if idx < 0 {
		return nil, NewError(CodeApplicationNotFound, "no application from artisan %s", params.ArtisanID)
	}
	if snap.Applications[idx].Status != models.ApplicationPending {
		return nil, NewError(CodePreconditionNotMet, "application from artisan %s is not pending", params.ArtisanID)
	}

	appField := fmt.Sprintf("applications.%d", idx)
	return &Decision{
		Action: ActionAcceptApplication,
		Patch: Patch{
			Set: map[string]any{
				"artisanId":          params.ArtisanID,
				"artisanAccepted":    true,
				"artisanAcceptedAt":  now,
				"clientAccepted":     true,
				"clientAcceptedAt":   now,
				"status":             models.StatusInProgress,
				appField + ".status": models.ApplicationAccepted,
				"updatedAt":          now,
			},
		},
		Guards: []Guard{
			{Field: "artisanId", Value: ""},
			{Field: appField + ".artisanId", Value: params.ArtisanID},
			{Field: appField + ".status", Value: models.ApplicationPending},
		},
		Notifications: []NotificationIntent{{
			UserID:        params.ArtisanID,
			Type:          models.NotificationApplicationAccepted,
			Title:         "Candidature acceptée",
			Message:       "Votre candidature a été acceptée par le client.",
			RequestID:     snap.ID,
			RelatedUserID: snap.ClientID,
		}},
	}, nil
}

func decideLegacyArtisanAccept(snap *models.ServiceRequest, actor Actor, _ Params, now time.Time) (*Decision, error) {
	if snap.ArtisanID != "" && snap.ArtisanID != actor.UserID {
		return nil, NewError(CodeAlreadyAssigned, "request already assigned to another artisan")
	}

	return &Decision{
		Action: ActionLegacyArtisanAccept,
		Patch: Patch{
			Set: map[string]any{
				"artisanId":         actor.UserID,
				"artisanAccepted":   true,
				"artisanAcceptedAt": now,
				"status":            models.StatusInProgress,
				"updatedAt":         now,
			},
		},
		// Either still unassigned, or a retry by the same artisan.
		Guards: []Guard{{Field: "artisanId", Value: snap.ArtisanID}},
	}, nil
}

func decideLegacyClientAccept(snap *models.ServiceRequest, actor Actor, _ Params, now time.Time) (*Decision, error) {
	if snap.ClientID != actor.UserID {
		return nil, NewError(CodeNotOwner, "only the request's client may accept")
	}
	if !snap.ArtisanAccepted {
		return nil, NewError(CodePreconditionNotMet, "artisan has not accepted yet")
	}

	return &Decision{
		Action: ActionLegacyClientAccept,
		Patch: Patch{
			Set: map[string]any{
				"clientAccepted":   true,
				"clientAcceptedAt": now,
				"updatedAt":        now,
			},
		},
		Guards: []Guard{
			{Field: "artisanAccepted", Value: true},
			{Field: "clientAccepted", Value: false},
		},
	}, nil
}

func decideArtisanComplete(snap *models.ServiceRequest, actor Actor, _ Params, now time.Time) (*Decision, error) {
	if snap.ArtisanID != actor.UserID {
		return nil, NewError(CodeNotOwner, "only the assigned artisan may mark the work complete")
	}

	return &Decision{
		Action: ActionArtisanComplete,
		Patch: Patch{
			Set: map[string]any{
				"artisanCompleted":   true,
				"artisanCompletedAt": now,
				"updatedAt":          now,
			},
		},
		Guards: []Guard{
			{Field: "artisanId", Value: actor.UserID},
			{Field: "artisanCompleted", Value: false},
		},
		Notifications: []NotificationIntent{{
			UserID:        snap.ClientID,
			Type:          models.NotificationRequestCompleted,
			Title:         "Demande terminée",
			Message:       "L'artisan a marqué la demande comme terminée. En attente de votre confirmation.",
			RequestID:     snap.ID,
			RelatedUserID: actor.UserID,
		}},
	}, nil
}

func decideClientConfirm(snap *models.ServiceRequest, actor Actor, _ Params, now time.Time) (*Decision, error) {
	if snap.ClientID != actor.UserID {
		return nil, NewError(CodeNotOwner, "only the request's client may confirm completion")
	}
	if PhaseOf(snap) != PhaseAwaitingClientConfirm {
		return nil, NewError(CodePreconditionNotMet, "artisan has not marked the work complete yet")
	}

	return &Decision{
		Action: ActionClientConfirm,
		Patch: Patch{
			Set: map[string]any{
				"clientConfirmed":   true,
				"clientConfirmedAt": now,
				"status":            models.StatusCompleted,
				"updatedAt":         now,
			},
		},
		Guards: []Guard{
			{Field: "artisanCompleted", Value: true},
			{Field: "clientConfirmed", Value: false},
		},
	}, nil
}

func decideRepost(snap *models.ServiceRequest, actor Actor, _ Params, now time.Time) (*Decision, error) {
	if snap.ClientID != actor.UserID {
		return nil, NewError(CodeNotOwner, "only the request's client may repost")
	}
	if snap.Status != models.StatusInProgress || snap.ClientConfirmed {
		return nil, NewError(CodePreconditionNotMet, "only in-progress requests not yet confirmed by the client can be reposted")
	}

	set := resetFields(now)
	set["status"] = models.StatusPending
	return &Decision{
		Action: ActionRepost,
		Patch:  Patch{Set: set},
		Guards: []Guard{
			{Field: "status", Value: models.StatusInProgress},
			{Field: "clientConfirmed", Value: false},
		},
	}, nil
}

func decideSetStatus(snap *models.ServiceRequest, _ Actor, params Params, now time.Time) (*Decision, error) {
	if !models.ValidStatus(params.Status) {
		return nil, NewError(CodeInvalidStatus, "invalid status %q", params.Status)
	}

	set := map[string]any{
		"status":    params.Status,
		"updatedAt": now,
	}

	// Reopening a completed or in-progress request resets it fully so
	// artisans can apply again. Moving an in-progress request to any
	// other closed state fires the assigned artisan with the same reset.
	reopening := params.Status == models.StatusPending &&
		(snap.Status == models.StatusCompleted || snap.Status == models.StatusInProgress)
	firing := snap.Status == models.StatusInProgress &&
		params.Status != models.StatusInProgress && params.Status != models.StatusPending &&
		snap.ArtisanID != ""
	if reopening || firing {
		for k, v := range resetFields(now) {
			set[k] = v
		}
		set["status"] = params.Status
	}

	d := &Decision{
		Action: ActionSetStatus,
		Patch:  Patch{Set: set},
		Guards: []Guard{{Field: "status", Value: snap.Status}},
	}

	if params.Status == models.StatusCompleted && snap.ArtisanID != "" {
		d.Notifications = append(d.Notifications, NotificationIntent{
			UserID:        snap.ClientID,
			Type:          models.NotificationRequestCompleted,
			Title:         "Demande terminée",
			Message:       "Votre demande a été terminée par l'artisan. Vous pouvez maintenant évaluer le travail.",
			RequestID:     snap.ID,
			RelatedUserID: snap.ArtisanID,
		})
	}

	return d, nil
}

// resetFields clears the assigned artisan, the four handshake booleans
// and the applications list in one delta. Three call sites (repost,
// reopen, fire) share it so a reset is never partial.
func resetFields(now time.Time) map[string]any {
	return map[string]any{
		"artisanId":          "",
		"artisanAccepted":    false,
		"artisanAcceptedAt":  nil,
		"clientAccepted":     false,
		"clientAcceptedAt":   nil,
		"artisanCompleted":   false,
		"artisanCompletedAt": nil,
		"clientConfirmed":    false,
		"clientConfirmedAt":  nil,
		"applications":       []models.Application{},
		"updatedAt":          now,
	}
}
