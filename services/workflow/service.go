package workflow

import (
	"context"
	"time"

	"handimatch/models"
	"handimatch/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publish creates a new service request in the pending state.
func (s *DefaultWorkflowService) Publish(in PublishInput) (*models.ServiceRequest, error) {
	if in.ClientID == "" || in.Profession == "" || in.Description == "" || in.Location == "" {
		return nil, NewError(CodeInvalidAction, "clientId, profession, description and location are required")
	}

	urgency := in.Urgency
	if urgency == "" {
		urgency = models.UrgencyNormal
	}

	now := time.Now()
	req := &models.ServiceRequest{
		ID:            uuid.NewString(),
		ClientID:      in.ClientID,
		Profession:    in.Profession,
		Description:   in.Description,
		Urgency:       urgency,
		PreferredDate: in.PreferredDate,
		Location:      in.Location,
		Photo:         in.Photo,
		Status:        models.StatusPending,
		Applications:  []models.Application{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repo.InsertRequest(req); err != nil {
		return nil, storageErr(err)
	}
	return req, nil
}

// Execute runs one workflow action: fetch the snapshot, validate and
// compute the transition, apply it conditionally, then emit the
// decision's notifications best-effort.
func (s *DefaultWorkflowService) Execute(actor Actor, req ActionRequest) (*models.ServiceRequest, error) {
	snap, err := s.Repo.FetchRequest(req.RequestID)
	if err != nil {
		return nil, storageErr(err)
	}
	if snap == nil {
		return nil, NewError(CodeNotFound, "request %s not found", req.RequestID)
	}

	decision, err := Decide(snap, req.Action, actor, Params{ArtisanID: req.ArtisanID, Status: req.Status}, time.Now())
	if err != nil {
		return nil, err
	}

	matched, err := s.Repo.ApplyDecision(snap.ID, decision)
	if err != nil {
		return nil, storageErr(err)
	}
	if !matched {
		// The snapshot went stale between read and write; the guards
		// kept the update from landing on the new state.
		return nil, NewError(CodeConflict, "request was modified concurrently, please retry")
	}

	updated, err := s.Repo.FetchRequest(snap.ID)
	if err != nil || updated == nil {
		utils.GetLogger().Warn("workflow: re-fetch after apply failed",
			zap.String("requestId", snap.ID), zap.Error(err))
		updated = snap
	}

	if s.Notifier != nil && len(decision.Notifications) > 0 {
		s.Notifier.Notify(context.Background(), decision.Notifications...)
	}

	return updated, nil
}

// GetRequest returns one request by id.
func (s *DefaultWorkflowService) GetRequest(id string) (*models.ServiceRequest, error) {
	snap, err := s.Repo.FetchRequest(id)
	if err != nil {
		return nil, storageErr(err)
	}
	if snap == nil {
		return nil, NewError(CodeNotFound, "request %s not found", id)
	}
	return snap, nil
}
