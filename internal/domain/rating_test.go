package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func completedShift(id, restaurantID, workerID string, workerRating, restaurantRating *int) Shift {
	done := time.Date(2025, 2, 1, 23, 0, 0, 0, time.UTC)
	return Shift{
		ID:             id,
		RestaurantID:   restaurantID,
		RestaurantName: "Bistro",
		Status:         ShiftStatusCompleted,
		Assignment: &Assignment{
			WorkerID:         workerID,
			WorkerName:       "Ann",
			Completed:        true,
			CompletedAt:      &done,
			WorkerRating:     workerRating,
			RestaurantRating: restaurantRating,
		},
	}
}

func iptr(v int) *int { return &v }

func TestSummarizeRatings(t *testing.T) {
	shifts := []Shift{
		completedShift("s1", "r1", "w1", iptr(5), iptr(4)),
		completedShift("s2", "r1", "w2", iptr(4), nil),
		completedShift("s3", "r1", "w1", nil, iptr(3)),
		completedShift("s4", "r2", "w1", iptr(1), iptr(5)),
		{ID: "s5", RestaurantID: "r1", Status: ShiftStatusFilled, Assignment: &Assignment{WorkerID: "w1"}},
	}

	r := SummarizeRatings("r1", UserTypeRestaurant, shifts)
	require.Equal(t, 2, r.TotalRatings)
	require.Equal(t, 4.5, r.AverageRating)
	require.Equal(t, "w1", r.Ratings[0].FromID)

	w := SummarizeRatings("w1", UserTypeWorker, shifts)
	require.Equal(t, 3, w.TotalRatings)
	require.Equal(t, 4.0, w.AverageRating)
	require.Equal(t, "Bistro", w.Ratings[0].FromName)

	empty := SummarizeRatings("nobody", UserTypeWorker, shifts)
	require.Zero(t, empty.AverageRating)
	require.NotNil(t, empty.Ratings)
}
