package handlers

import (
	"net/http"
	"time"

	requestRepo "handimatch/database/repository/request"
	"handimatch/models"
	"handimatch/services/workflow"
	"handimatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// workflowStatus maps a workflow error code to an HTTP status.
func workflowStatus(code workflow.Code) int {
	switch code {
	case workflow.CodeNotFound:
		return http.StatusNotFound
	case workflow.CodeNotOwner:
		return http.StatusForbidden
	case workflow.CodeAlreadyApplied,
		workflow.CodeAlreadyAssigned,
		workflow.CodeApplicationNotFound,
		workflow.CodePreconditionNotMet,
		workflow.CodeConflict:
		return http.StatusConflict
	case workflow.CodeInvalidAction, workflow.CodeInvalidStatus:
		return http.StatusBadRequest
	case workflow.CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondWorkflowError(c *gin.Context, logger *zap.Logger, err error) {
	code := workflow.ErrCode(err)
	if code == "" {
		logger.Error("Unexpected workflow failure", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "")
		return
	}
	status := workflowStatus(code)
	if status >= http.StatusInternalServerError {
		logger.Error("Workflow action failed", zap.String("code", string(code)), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func actorFrom(c *gin.Context) (workflow.Actor, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return workflow.Actor{}, false
	}
	return workflow.Actor{UserID: userID, Role: c.GetString("userType")}, true
}

// PublishRequestHandler creates a new service request for the
// authenticated client.
func PublishRequestHandler(wfSvc workflow.WorkflowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		var input struct {
			Profession    string     `json:"profession" binding:"required"`
			Description   string     `json:"description" binding:"required"`
			Urgency       string     `json:"urgency"`
			Location      string     `json:"location"`
			Photo         string     `json:"photo"`
			PreferredDate *time.Time `json:"preferredDate"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		req, err := wfSvc.Publish(workflow.PublishInput{
			ClientID:      userID,
			Profession:    input.Profession,
			Description:   input.Description,
			Urgency:       input.Urgency,
			Location:      input.Location,
			Photo:         input.Photo,
			PreferredDate: input.PreferredDate,
		})
		if err != nil {
			respondWorkflowError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, req)
	}
}

// ListRequestsHandler lists requests. Clients see their own requests;
// artisans browse open requests filtered by profession and location.
func ListRequestsHandler(requests requestRepo.RequestRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		var (
			list []models.ServiceRequest
			err  error
		)
		if c.GetString("userType") == models.UserTypeArtisan {
			list, err = requests.ListOpen(requestRepo.ListFilter{
				Profession: c.Query("profession"),
				Location:   c.Query("location"),
			})
		} else {
			list, err = requests.ListByClient(userID)
		}
		if err != nil {
			logger.Error("Failed to list requests", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list requests", "")
			return
		}

		c.JSON(http.StatusOK, gin.H{"requests": list, "count": len(list)})
	}
}

// GetRequestHandler returns one request by id.
func GetRequestHandler(wfSvc workflow.WorkflowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		req, err := wfSvc.GetRequest(c.Param("id"))
		if err != nil {
			respondWorkflowError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, req)
	}
}

// RequestActionHandler executes a workflow action against a request.
func RequestActionHandler(wfSvc workflow.WorkflowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := actorFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		var input workflow.ActionRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		req, err := wfSvc.Execute(actor, input)
		if err != nil {
			respondWorkflowError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, req)
	}
}

// RequestStatusHandler edits a request's status directly, with reset
// semantics when the edit reopens or unassigns in-progress work.
func RequestStatusHandler(wfSvc workflow.WorkflowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := actorFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		var input struct {
			RequestID string `json:"requestId" binding:"required"`
			Status    string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		req, err := wfSvc.Execute(actor, workflow.ActionRequest{
			RequestID: input.RequestID,
			Action:    workflow.ActionSetStatus,
			Status:    input.Status,
		})
		if err != nil {
			respondWorkflowError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, req)
	}
}
