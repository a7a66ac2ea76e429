package rating

import (
	"testing"

	"handimatch/models"

	"github.com/stretchr/testify/assert"
)

func ratingsOf(values ...int) []models.Rating {
	out := make([]models.Rating, 0, len(values))
	for _, v := range values {
		out = append(out, models.Rating{Rating: v})
	}
	return out
}

func TestRecomputeEmptySet(t *testing.T) {
	stats := Recompute(nil)
	assert.Equal(t, models.ArtisanStats{}, stats)
	assert.Equal(t, float64(0), stats.AverageRating)
}

func TestRecompute(t *testing.T) {
	tests := []struct {
		name             string
		ratings          []models.Rating
		wantCompleted    int
		wantAverage      float64
		wantSatisfaction float64
	}{
		{
			name:             "single five star",
			ratings:          ratingsOf(5),
			wantCompleted:    1,
			wantAverage:      5.0,
			wantSatisfaction: 100,
		},
		{
			name:             "average rounds to one decimal",
			ratings:          ratingsOf(5, 4, 4),
			wantCompleted:    3,
			wantAverage:      4.3,
			wantSatisfaction: 100,
		},
		{
			name:             "three counts as unsatisfied",
			ratings:          ratingsOf(3, 4, 5, 1),
			wantCompleted:    4,
			wantAverage:      3.3,
			wantSatisfaction: 50,
		},
		{
			name:             "all low",
			ratings:          ratingsOf(1, 2),
			wantCompleted:    2,
			wantAverage:      1.5,
			wantSatisfaction: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Recompute(tt.ratings)
			assert.Equal(t, tt.wantCompleted, stats.CompletedRequests)
			assert.Equal(t, tt.wantAverage, stats.AverageRating)
			assert.InDelta(t, tt.wantSatisfaction, stats.SatisfactionRate, 0.0001)
		})
	}
}

func TestRecomputeDeterministic(t *testing.T) {
	in := ratingsOf(5, 3, 4, 2, 4)
	first := Recompute(in)
	second := Recompute(in)
	assert.Equal(t, first, second)
}
