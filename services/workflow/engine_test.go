package workflow

import (
	"testing"
	"time"

	"handimatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func pendingRequest() *models.ServiceRequest {
	return &models.ServiceRequest{
		ID:           "req-1",
		ClientID:     "client-1",
		Profession:   "plombier",
		Description:  "Fuite sous l'évier",
		Urgency:      models.UrgencyNormal,
		Location:     "Lyon",
		Status:       models.StatusPending,
		Applications: []models.Application{},
	}
}

func requestWithApplication(artisanID string) *models.ServiceRequest {
	r := pendingRequest()
	r.Applications = []models.Application{{
		ArtisanID: artisanID,
		AppliedAt: testNow.Add(-time.Hour),
		Status:    models.ApplicationPending,
	}}
	return r
}

func assignedRequest(artisanID string) *models.ServiceRequest {
	r := requestWithApplication(artisanID)
	r.Status = models.StatusInProgress
	r.ArtisanID = artisanID
	r.ArtisanAccepted = true
	r.ClientAccepted = true
	r.Applications[0].Status = models.ApplicationAccepted
	return r
}

func TestDecideUnknownAction(t *testing.T) {
	_, err := Decide(pendingRequest(), Action("bogus"), Actor{UserID: "x"}, Params{}, testNow)
	assert.Equal(t, CodeInvalidAction, ErrCode(err))
}

func TestDecideApply(t *testing.T) {
	d, err := Decide(pendingRequest(), ActionApply, Actor{UserID: "artisan-1", Role: models.UserTypeArtisan}, Params{}, testNow)
	require.NoError(t, err)

	require.NotNil(t, d.Patch.PushApplication)
	assert.Equal(t, "artisan-1", d.Patch.PushApplication.ArtisanID)
	assert.Equal(t, models.ApplicationPending, d.Patch.PushApplication.Status)

	require.Len(t, d.Guards, 1)
	assert.Equal(t, Guard{Field: "applications.artisanId", Value: "artisan-1", Exclude: true}, d.Guards[0])

	require.Len(t, d.Notifications, 1)
	assert.Equal(t, "client-1", d.Notifications[0].UserID)
	assert.Equal(t, models.NotificationApplicationReceived, d.Notifications[0].Type)
}

func TestDecideApplyTwice(t *testing.T) {
	snap := requestWithApplication("artisan-1")
	_, err := Decide(snap, ActionApply, Actor{UserID: "artisan-1"}, Params{}, testNow)
	assert.Equal(t, CodeAlreadyApplied, ErrCode(err))
}

func TestDecideAcceptApplication(t *testing.T) {
	snap := requestWithApplication("artisan-1")

	d, err := Decide(snap, ActionAcceptApplication, Actor{UserID: "client-1"}, Params{ArtisanID: "artisan-1"}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "artisan-1", d.Patch.Set["artisanId"])
	assert.Equal(t, true, d.Patch.Set["artisanAccepted"])
	assert.Equal(t, true, d.Patch.Set["clientAccepted"])
	assert.Equal(t, models.StatusInProgress, d.Patch.Set["status"])
	assert.Equal(t, models.ApplicationAccepted, d.Patch.Set["applications.0.status"])

	// The update must only land while the request is unassigned and the
	// application still pending.
	assert.Contains(t, d.Guards, Guard{Field: "artisanId", Value: ""})
	assert.Contains(t, d.Guards, Guard{Field: "applications.0.artisanId", Value: "artisan-1"})
	assert.Contains(t, d.Guards, Guard{Field: "applications.0.status", Value: models.ApplicationPending})

	require.Len(t, d.Notifications, 1)
	assert.Equal(t, "artisan-1", d.Notifications[0].UserID)
	assert.Equal(t, models.NotificationApplicationAccepted, d.Notifications[0].Type)
}

func TestDecideAcceptApplicationErrors(t *testing.T) {
	tests := []struct {
		name      string
		snap      *models.ServiceRequest
		actor     Actor
		artisanID string
		wantCode  Code
	}{
		{
			name:      "not the owner",
			snap:      requestWithApplication("artisan-1"),
			actor:     Actor{UserID: "someone-else"},
			artisanID: "artisan-1",
			wantCode:  CodeNotOwner,
		},
		{
			name:      "already assigned",
			snap:      assignedRequest("artisan-1"),
			actor:     Actor{UserID: "client-1"},
			artisanID: "artisan-2",
			wantCode:  CodeAlreadyAssigned,
		},
		{
			name:      "no such application",
			snap:      requestWithApplication("artisan-1"),
			actor:     Actor{UserID: "client-1"},
			artisanID: "artisan-9",
			wantCode:  CodeApplicationNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decide(tt.snap, ActionAcceptApplication, tt.actor, Params{ArtisanID: tt.artisanID}, testNow)
			assert.Equal(t, tt.wantCode, ErrCode(err))
		})
	}
}

func TestDecideLegacyArtisanAccept(t *testing.T) {
	d, err := Decide(pendingRequest(), ActionLegacyArtisanAccept, Actor{UserID: "artisan-1"}, Params{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "artisan-1", d.Patch.Set["artisanId"])
	assert.Equal(t, models.StatusInProgress, d.Patch.Set["status"])
	assert.Contains(t, d.Guards, Guard{Field: "artisanId", Value: ""})

	// Retries by the assigned artisan pass; other artisans are rejected.
	snap := assignedRequest("artisan-1")
	_, err = Decide(snap, ActionLegacyArtisanAccept, Actor{UserID: "artisan-1"}, Params{}, testNow)
	assert.NoError(t, err)
	_, err = Decide(snap, ActionLegacyArtisanAccept, Actor{UserID: "artisan-2"}, Params{}, testNow)
	assert.Equal(t, CodeAlreadyAssigned, ErrCode(err))
}

func TestDecideLegacyClientAccept(t *testing.T) {
	snap := pendingRequest()
	snap.Status = models.StatusInProgress
	snap.ArtisanID = "artisan-1"
	snap.ArtisanAccepted = true

	d, err := Decide(snap, ActionLegacyClientAccept, Actor{UserID: "client-1"}, Params{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, true, d.Patch.Set["clientAccepted"])
	assert.Contains(t, d.Guards, Guard{Field: "artisanAccepted", Value: true})
	assert.Contains(t, d.Guards, Guard{Field: "clientAccepted", Value: false})

	snap.ArtisanAccepted = false
	_, err = Decide(snap, ActionLegacyClientAccept, Actor{UserID: "client-1"}, Params{}, testNow)
	assert.Equal(t, CodePreconditionNotMet, ErrCode(err))
}

func TestDecideArtisanComplete(t *testing.T) {
	snap := assignedRequest("artisan-1")

	d, err := Decide(snap, ActionArtisanComplete, Actor{UserID: "artisan-1"}, Params{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, true, d.Patch.Set["artisanCompleted"])
	assert.Contains(t, d.Guards, Guard{Field: "artisanId", Value: "artisan-1"})
	assert.Contains(t, d.Guards, Guard{Field: "artisanCompleted", Value: false})

	require.Len(t, d.Notifications, 1)
	assert.Equal(t, "client-1", d.Notifications[0].UserID)

	_, err = Decide(snap, ActionArtisanComplete, Actor{UserID: "artisan-2"}, Params{}, testNow)
	assert.Equal(t, CodeNotOwner, ErrCode(err))
}

func TestDecideClientConfirm(t *testing.T) {
	snap := assignedRequest("artisan-1")

	// Confirmation before the artisan marks completion fails.
	_, err := Decide(snap, ActionClientConfirm, Actor{UserID: "client-1"}, Params{}, testNow)
	assert.Equal(t, CodePreconditionNotMet, ErrCode(err))

	snap.ArtisanCompleted = true
	d, err := Decide(snap, ActionClientConfirm, Actor{UserID: "client-1"}, Params{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, true, d.Patch.Set["clientConfirmed"])
	assert.Equal(t, models.StatusCompleted, d.Patch.Set["status"])
}

func TestDecideRepostResetsEverything(t *testing.T) {
	snap := assignedRequest("artisan-1")

	d, err := Decide(snap, ActionRepost, Actor{UserID: "client-1"}, Params{}, testNow)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, d.Patch.Set["status"])
	assert.Equal(t, "", d.Patch.Set["artisanId"])
	for _, field := range []string{"artisanAccepted", "clientAccepted", "artisanCompleted", "clientConfirmed"} {
		assert.Equal(t, false, d.Patch.Set[field], field)
	}
	for _, field := range []string{"artisanAcceptedAt", "clientAcceptedAt", "artisanCompletedAt", "clientConfirmedAt"} {
		assert.Nil(t, d.Patch.Set[field], field)
	}
	assert.Equal(t, []models.Application{}, d.Patch.Set["applications"])

	assert.Contains(t, d.Guards, Guard{Field: "status", Value: models.StatusInProgress})
	assert.Contains(t, d.Guards, Guard{Field: "clientConfirmed", Value: false})
}

func TestDecideRepostPreconditions(t *testing.T) {
	snap := assignedRequest("artisan-1")
	_, err := Decide(snap, ActionRepost, Actor{UserID: "not-the-client"}, Params{}, testNow)
	assert.Equal(t, CodeNotOwner, ErrCode(err))

	snap.Status = models.StatusCompleted
	_, err = Decide(snap, ActionRepost, Actor{UserID: "client-1"}, Params{}, testNow)
	assert.Equal(t, CodePreconditionNotMet, ErrCode(err))
}

func TestDecideSetStatus(t *testing.T) {
	snap := pendingRequest()

	_, err := Decide(snap, ActionSetStatus, Actor{UserID: "client-1"}, Params{Status: "bogus"}, testNow)
	assert.Equal(t, CodeInvalidStatus, ErrCode(err))

	d, err := Decide(snap, ActionSetStatus, Actor{UserID: "client-1"}, Params{Status: models.StatusCancelled}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, d.Patch.Set["status"])
	assert.Contains(t, d.Guards, Guard{Field: "status", Value: models.StatusPending})
	// No assigned artisan, nothing to reset.
	assert.NotContains(t, d.Patch.Set, "artisanId")
}

func TestDecideSetStatusReopenResets(t *testing.T) {
	snap := assignedRequest("artisan-1")

	d, err := Decide(snap, ActionSetStatus, Actor{UserID: "client-1"}, Params{Status: models.StatusPending}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, d.Patch.Set["status"])
	assert.Equal(t, "", d.Patch.Set["artisanId"])
	assert.Equal(t, []models.Application{}, d.Patch.Set["applications"])
}

func TestDecideSetStatusFiringResets(t *testing.T) {
	snap := assignedRequest("artisan-1")

	d, err := Decide(snap, ActionSetStatus, Actor{UserID: "client-1"}, Params{Status: models.StatusCancelled}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, d.Patch.Set["status"])
	assert.Equal(t, "", d.Patch.Set["artisanId"])
	assert.Equal(t, false, d.Patch.Set["clientConfirmed"])
}

func TestDecideSetStatusCompletedNotifiesClient(t *testing.T) {
	snap := assignedRequest("artisan-1")

	d, err := Decide(snap, ActionSetStatus, Actor{UserID: "artisan-1"}, Params{Status: models.StatusCompleted}, testNow)
	require.NoError(t, err)
	require.Len(t, d.Notifications, 1)
	assert.Equal(t, "client-1", d.Notifications[0].UserID)
	assert.Equal(t, models.NotificationRequestCompleted, d.Notifications[0].Type)
}

func TestPhaseOf(t *testing.T) {
	snap := pendingRequest()
	assert.Equal(t, PhasePending, PhaseOf(snap))

	snap = assignedRequest("artisan-1")
	assert.Equal(t, PhaseInProgress, PhaseOf(snap))

	snap.ClientAccepted = false
	assert.Equal(t, PhaseAwaitingClientAccept, PhaseOf(snap))

	snap = assignedRequest("artisan-1")
	snap.ArtisanCompleted = true
	assert.Equal(t, PhaseAwaitingClientConfirm, PhaseOf(snap))

	snap.Status = models.StatusCompleted
	assert.Equal(t, PhaseCompleted, PhaseOf(snap))

	snap.Status = models.StatusCancelled
	assert.Equal(t, PhaseCancelled, PhaseOf(snap))
}
