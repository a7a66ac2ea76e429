package handlers

import (
	"net/http"
	"strconv"

	userRepo "handimatch/database/repository/user"
	"handimatch/services/user"
	"handimatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchArtisansHandler runs the artisan directory search.
func SearchArtisansHandler(userSvc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		criteria := userRepo.SearchCriteria{
			Query:      c.Query("q"),
			Profession: c.Query("profession"),
			Location:   c.Query("location"),
		}
		if raw := c.Query("limit"); raw != "" {
			if limit, err := strconv.ParseInt(raw, 10, 64); err == nil && limit > 0 {
				criteria.Limit = limit
			}
		}

		artisans, err := userSvc.SearchArtisans(criteria)
		if err != nil {
			logger.Error("Failed to search artisans", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to search artisans", "")
			return
		}

		c.JSON(http.StatusOK, gin.H{"artisans": artisans, "count": len(artisans)})
	}
}
