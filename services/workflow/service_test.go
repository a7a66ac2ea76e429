package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"handimatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway is an in-memory Gateway that evaluates guards the same
// way the Mongo repository's conditional update does: a guard that
// does not hold against the stored document makes the update match
// nothing.
type fakeGateway struct {
	docs map[string]*models.ServiceRequest
	// beforeApply runs between the engine's read and the write, to
	// simulate a concurrent writer.
	beforeApply func()
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{docs: map[string]*models.ServiceRequest{}}
}

func (g *fakeGateway) InsertRequest(req *models.ServiceRequest) error {
	cp := *req
	g.docs[req.ID] = &cp
	return nil
}

func (g *fakeGateway) FetchRequest(id string) (*models.ServiceRequest, error) {
	doc, ok := g.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *doc
	cp.Applications = append([]models.Application(nil), doc.Applications...)
	return &cp, nil
}

func (g *fakeGateway) ApplyDecision(id string, d *Decision) (bool, error) {
	if g.beforeApply != nil {
		g.beforeApply()
		g.beforeApply = nil
	}

	doc, ok := g.docs[id]
	if !ok {
		return false, nil
	}
	for _, guard := range d.Guards {
		if !guardHolds(doc, guard) {
			return false, nil
		}
	}
	for field, value := range d.Patch.Set {
		applyField(doc, field, value)
	}
	if d.Patch.PushApplication != nil {
		doc.Applications = append(doc.Applications, *d.Patch.PushApplication)
	}
	return true, nil
}

func guardHolds(doc *models.ServiceRequest, g Guard) bool {
	if g.Field == "applications.artisanId" {
		has := doc.ApplicationIndex(g.Value.(string)) >= 0
		if g.Exclude {
			return !has
		}
		return has
	}
	holds := fieldValue(doc, g.Field) == g.Value
	if g.Exclude {
		return !holds
	}
	return holds
}

func fieldValue(doc *models.ServiceRequest, field string) any {
	if strings.HasPrefix(field, "applications.") {
		parts := strings.Split(field, ".")
		idx, _ := strconv.Atoi(parts[1])
		if idx >= len(doc.Applications) {
			return nil
		}
		switch parts[2] {
		case "artisanId":
			return doc.Applications[idx].ArtisanID
		case "status":
			return doc.Applications[idx].Status
		}
		panic("unknown application field " + field)
	}
	switch field {
	case "status":
		return doc.Status
	case "artisanId":
		return doc.ArtisanID
	case "artisanAccepted":
		return doc.ArtisanAccepted
	case "clientAccepted":
		return doc.ClientAccepted
	case "artisanCompleted":
		return doc.ArtisanCompleted
	case "clientConfirmed":
		return doc.ClientConfirmed
	}
	panic("unknown guard field " + field)
}

func applyField(doc *models.ServiceRequest, field string, value any) {
	if strings.HasPrefix(field, "applications.") {
		parts := strings.Split(field, ".")
		idx, _ := strconv.Atoi(parts[1])
		if parts[2] == "status" && idx < len(doc.Applications) {
			doc.Applications[idx].Status = value.(string)
		}
		return
	}
	switch field {
	case "status":
		doc.Status = value.(string)
	case "artisanId":
		doc.ArtisanID = value.(string)
	case "artisanAccepted":
		doc.ArtisanAccepted = value.(bool)
	case "clientAccepted":
		doc.ClientAccepted = value.(bool)
	case "artisanCompleted":
		doc.ArtisanCompleted = value.(bool)
	case "clientConfirmed":
		doc.ClientConfirmed = value.(bool)
	case "artisanAcceptedAt":
		doc.ArtisanAcceptedAt = timePtr(value)
	case "clientAcceptedAt":
		doc.ClientAcceptedAt = timePtr(value)
	case "artisanCompletedAt":
		doc.ArtisanCompletedAt = timePtr(value)
	case "clientConfirmedAt":
		doc.ClientConfirmedAt = timePtr(value)
	case "applications":
		doc.Applications = value.([]models.Application)
	case "updatedAt":
		doc.UpdatedAt = value.(time.Time)
	}
}

func timePtr(value any) *time.Time {
	if value == nil {
		return nil
	}
	t := value.(time.Time)
	return &t
}

// recordingNotifier collects every intent it receives.
type recordingNotifier struct {
	intents []NotificationIntent
}

func (n *recordingNotifier) Notify(_ context.Context, intents ...NotificationIntent) {
	n.intents = append(n.intents, intents...)
}

func newTestService() (*DefaultWorkflowService, *fakeGateway, *recordingNotifier) {
	gw := newFakeGateway()
	notifier := &recordingNotifier{}
	return &DefaultWorkflowService{Repo: gw, Notifier: notifier}, gw, notifier
}

func publish(t *testing.T, svc *DefaultWorkflowService, clientID string) *models.ServiceRequest {
	t.Helper()
	req, err := svc.Publish(PublishInput{
		ClientID:    clientID,
		Profession:  "electricien",
		Description: "Panne de courant dans la cuisine",
		Location:    "Marseille",
	})
	require.NoError(t, err)
	return req
}

func TestPublishDefaults(t *testing.T) {
	svc, _, _ := newTestService()
	req := publish(t, svc, "client-1")

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, models.UrgencyNormal, req.Urgency)
	assert.NotNil(t, req.Applications)
	assert.Empty(t, req.Applications)
}

func TestPublishRequiresFields(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Publish(PublishInput{ClientID: "client-1"})
	assert.Equal(t, CodeInvalidAction, ErrCode(err))
}

func TestExecuteUnknownRequest(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Execute(Actor{UserID: "artisan-1"}, ActionRequest{RequestID: "missing", Action: ActionApply})
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

// A transition decided against a stale snapshot must miss the guards
// and surface as a conflict instead of silently double-assigning.
func TestExecuteConcurrentAcceptConflicts(t *testing.T) {
	svc, gw, _ := newTestService()
	req := publish(t, svc, "client-1")

	for _, artisan := range []string{"artisan-1", "artisan-2"} {
		_, err := svc.Execute(Actor{UserID: artisan, Role: models.UserTypeArtisan},
			ActionRequest{RequestID: req.ID, Action: ActionApply})
		require.NoError(t, err)
	}

	// Another client action assigns artisan-2 between our read and write.
	gw.beforeApply = func() {
		doc := gw.docs[req.ID]
		doc.ArtisanID = "artisan-2"
		doc.Applications[1].Status = models.ApplicationAccepted
		doc.Status = models.StatusInProgress
	}

	_, err := svc.Execute(Actor{UserID: "client-1"},
		ActionRequest{RequestID: req.ID, Action: ActionAcceptApplication, ArtisanID: "artisan-1"})
	assert.Equal(t, CodeConflict, ErrCode(err))
	assert.Equal(t, "artisan-2", gw.docs[req.ID].ArtisanID)
}

func TestExecuteDuplicateApplyConflicts(t *testing.T) {
	svc, gw, _ := newTestService()
	req := publish(t, svc, "client-1")

	// The duplicate lands concurrently, after our read.
	gw.beforeApply = func() {
		doc := gw.docs[req.ID]
		doc.Applications = append(doc.Applications, models.Application{
			ArtisanID: "artisan-1",
			Status:    models.ApplicationPending,
		})
	}

	_, err := svc.Execute(Actor{UserID: "artisan-1", Role: models.UserTypeArtisan},
		ActionRequest{RequestID: req.ID, Action: ActionApply})
	assert.Equal(t, CodeConflict, ErrCode(err))
	assert.Len(t, gw.docs[req.ID].Applications, 1)
}

// Full lifecycle: publish, two applications, accept one, complete,
// confirm, with the expected notifications along the way.
func TestExecuteFullLifecycle(t *testing.T) {
	svc, _, notifier := newTestService()
	req := publish(t, svc, "client-1")

	for _, artisan := range []string{"artisan-1", "artisan-2"} {
		updated, err := svc.Execute(Actor{UserID: artisan, Role: models.UserTypeArtisan},
			ActionRequest{RequestID: req.ID, Action: ActionApply})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, updated.Status)
	}

	updated, err := svc.Execute(Actor{UserID: "client-1", Role: models.UserTypeClient},
		ActionRequest{RequestID: req.ID, Action: ActionAcceptApplication, ArtisanID: "artisan-1"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, "artisan-1", updated.ArtisanID)
	assert.True(t, updated.ArtisanAccepted)
	assert.True(t, updated.ClientAccepted)
	assert.Equal(t, models.ApplicationAccepted, updated.Applications[0].Status)
	assert.Equal(t, models.ApplicationPending, updated.Applications[1].Status)

	updated, err = svc.Execute(Actor{UserID: "artisan-1", Role: models.UserTypeArtisan},
		ActionRequest{RequestID: req.ID, Action: ActionArtisanComplete})
	require.NoError(t, err)
	assert.True(t, updated.ArtisanCompleted)
	assert.Equal(t, PhaseAwaitingClientConfirm, PhaseOf(updated))

	updated, err = svc.Execute(Actor{UserID: "client-1", Role: models.UserTypeClient},
		ActionRequest{RequestID: req.ID, Action: ActionClientConfirm})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.True(t, updated.ClientConfirmed)

	// Two application notices for the client, one acceptance for
	// artisan-1, one completion notice for the client. Nothing for
	// artisan-2.
	var types []string
	for _, intent := range notifier.intents {
		types = append(types, fmt.Sprintf("%s->%s", intent.Type, intent.UserID))
		assert.NotEqual(t, "artisan-2", intent.UserID)
	}
	assert.Equal(t, []string{
		"application_received->client-1",
		"application_received->client-1",
		"application_accepted->artisan-1",
		"request_completed->client-1",
	}, types)
}

// Reposting an in-progress request clears the assignment completely
// and lets new artisans apply again.
func TestExecuteRepostReopens(t *testing.T) {
	svc, _, _ := newTestService()
	req := publish(t, svc, "client-1")

	_, err := svc.Execute(Actor{UserID: "artisan-1", Role: models.UserTypeArtisan},
		ActionRequest{RequestID: req.ID, Action: ActionApply})
	require.NoError(t, err)
	_, err = svc.Execute(Actor{UserID: "client-1", Role: models.UserTypeClient},
		ActionRequest{RequestID: req.ID, Action: ActionAcceptApplication, ArtisanID: "artisan-1"})
	require.NoError(t, err)

	updated, err := svc.Execute(Actor{UserID: "client-1", Role: models.UserTypeClient},
		ActionRequest{RequestID: req.ID, Action: ActionRepost})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Equal(t, "", updated.ArtisanID)
	assert.Empty(t, updated.Applications)
	assert.False(t, updated.ArtisanAccepted)
	assert.False(t, updated.ClientAccepted)
	assert.Nil(t, updated.ArtisanAcceptedAt)

	// A fresh artisan can apply to the reopened request.
	updated, err = svc.Execute(Actor{UserID: "artisan-3", Role: models.UserTypeArtisan},
		ActionRequest{RequestID: req.ID, Action: ActionApply})
	require.NoError(t, err)
	require.Len(t, updated.Applications, 1)
	assert.Equal(t, "artisan-3", updated.Applications[0].ArtisanID)
}
