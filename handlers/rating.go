package handlers

import (
	"errors"
	"net/http"

	"handimatch/services/rating"
	"handimatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmitRatingHandler lets a client rate the artisan of a completed
// request.
func SubmitRatingHandler(ratingSvc rating.RatingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		userID, ok := currentUserID(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}

		var input rating.SubmitInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		input.ClientID = userID

		r, err := ratingSvc.Submit(input)
		if err != nil {
			switch {
			case errors.Is(err, rating.ErrInvalidRating):
				utils.JSONError(c, http.StatusBadRequest, "Rating must be between 1 and 5", "")
			case errors.Is(err, rating.ErrRequestNotFound):
				utils.JSONError(c, http.StatusNotFound, "Request not found", "")
			case errors.Is(err, rating.ErrNotOwner):
				utils.JSONError(c, http.StatusForbidden, "Only the request's client can rate it", "")
			case errors.Is(err, rating.ErrNotCompleted):
				utils.JSONError(c, http.StatusConflict, "Request is not completed yet", "")
			case errors.Is(err, rating.ErrNoArtisan):
				utils.JSONError(c, http.StatusConflict, "Request has no assigned artisan", "")
			case errors.Is(err, rating.ErrAlreadyRated):
				utils.JSONError(c, http.StatusConflict, "Request already rated", "")
			default:
				logger.Error("Failed to submit rating", zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Failed to submit rating", "")
			}
			return
		}

		c.JSON(http.StatusCreated, r)
	}
}
