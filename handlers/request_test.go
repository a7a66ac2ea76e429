package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"handimatch/models"
	"handimatch/services/workflow"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowStatus(t *testing.T) {
	tests := []struct {
		code workflow.Code
		want int
	}{
		{workflow.CodeNotFound, http.StatusNotFound},
		{workflow.CodeNotOwner, http.StatusForbidden},
		{workflow.CodeAlreadyApplied, http.StatusConflict},
		{workflow.CodeAlreadyAssigned, http.StatusConflict},
		{workflow.CodeApplicationNotFound, http.StatusConflict},
		{workflow.CodePreconditionNotMet, http.StatusConflict},
		{workflow.CodeConflict, http.StatusConflict},
		{workflow.CodeInvalidAction, http.StatusBadRequest},
		{workflow.CodeInvalidStatus, http.StatusBadRequest},
		{workflow.CodeStorageUnavailable, http.StatusServiceUnavailable},
		{workflow.Code("something-new"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, workflowStatus(tt.code), string(tt.code))
	}
}

// fakeWorkflowService returns canned results for handler tests.
type fakeWorkflowService struct {
	executeErr error
	lastActor  workflow.Actor
	lastReq    workflow.ActionRequest
}

func (f *fakeWorkflowService) Publish(in workflow.PublishInput) (*models.ServiceRequest, error) {
	return &models.ServiceRequest{ID: "req-1", ClientID: in.ClientID, Status: models.StatusPending}, nil
}

func (f *fakeWorkflowService) Execute(actor workflow.Actor, req workflow.ActionRequest) (*models.ServiceRequest, error) {
	f.lastActor = actor
	f.lastReq = req
	if f.executeErr != nil {
		return nil, f.executeErr
	}
	return &models.ServiceRequest{ID: req.RequestID, Status: models.StatusInProgress}, nil
}

func (f *fakeWorkflowService) GetRequest(id string) (*models.ServiceRequest, error) {
	return &models.ServiceRequest{ID: id}, nil
}

func performAction(t *testing.T, svc workflow.WorkflowService, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/requests/action", func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
			c.Set("userType", models.UserTypeArtisan)
		}
		RequestActionHandler(svc)(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/requests/action", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestActionHandler(t *testing.T) {
	svc := &fakeWorkflowService{}
	w := performAction(t, svc, "artisan-1", `{"requestId":"req-1","action":"artisan-apply"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, workflow.Actor{UserID: "artisan-1", Role: models.UserTypeArtisan}, svc.lastActor)
	assert.Equal(t, workflow.ActionApply, svc.lastReq.Action)

	var resp models.ServiceRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-1", resp.ID)
}

func TestRequestActionHandlerUnauthorized(t *testing.T) {
	w := performAction(t, &fakeWorkflowService{}, "", `{"requestId":"req-1","action":"artisan-apply"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestActionHandlerBadBody(t *testing.T) {
	w := performAction(t, &fakeWorkflowService{}, "artisan-1", `{"action":"artisan-apply"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestActionHandlerConflict(t *testing.T) {
	svc := &fakeWorkflowService{
		executeErr: workflow.NewError(workflow.CodeConflict, "request was modified concurrently, please retry"),
	}
	w := performAction(t, svc, "artisan-1", `{"requestId":"req-1","action":"artisan-apply"}`)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(workflow.CodeConflict), resp["code"])
}
