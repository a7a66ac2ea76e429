package rating

import (
	"math"

	"handimatch/models"
)

// satisfiedThreshold is the minimum rating counted as a satisfied
// client.
const satisfiedThreshold = 4

// Recompute derives an artisan's public statistics from the full
// rating set. It is always fed every rating for the artisan rather
// than incrementally updated, so the snapshot can never drift from the
// ratings collection. CompletedRequests counts ratings received, not
// completed jobs; a job the client never rates does not appear here.
func Recompute(ratings []models.Rating) models.ArtisanStats {
	total := len(ratings)
	if total == 0 {
		return models.ArtisanStats{}
	}

	sum := 0
	satisfied := 0
	for _, r := range ratings {
		sum += r.Rating
		if r.Rating >= satisfiedThreshold {
			satisfied++
		}
	}

	return models.ArtisanStats{
		CompletedRequests: total,
		AverageRating:     math.Round(float64(sum)/float64(total)*10) / 10,
		SatisfactionRate:  float64(satisfied) / float64(total) * 100,
	}
}
