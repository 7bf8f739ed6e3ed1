package domain

import "time"

type ReceivedRating struct {
	Rating   int
	Comment  *string
	FromID   string
	FromName string
	ShiftID  string
	Date     time.Time
}

type RatingSummary struct {
	ProfileID     string
	UserType      UserType
	AverageRating float64
	TotalRatings  int
	Ratings       []ReceivedRating
}

// SummarizeRatings collects the ratings a profile received on completed
// shifts. Restaurants are rated by workers and workers by restaurants.
func SummarizeRatings(profileID string, userType UserType, shifts []Shift) RatingSummary {
	out := RatingSummary{ProfileID: profileID, UserType: userType, Ratings: []ReceivedRating{}}
	total := 0
	for _, s := range shifts {
		a := s.Assignment
		if a == nil || !a.Completed || a.CompletedAt == nil {
			continue
		}
		var r ReceivedRating
		switch {
		case userType == UserTypeRestaurant && s.RestaurantID == profileID && a.WorkerRating != nil:
			r = ReceivedRating{Rating: *a.WorkerRating, Comment: a.WorkerComment, FromID: a.WorkerID, FromName: a.WorkerName}
		case userType == UserTypeWorker && a.WorkerID == profileID && a.RestaurantRating != nil:
			r = ReceivedRating{Rating: *a.RestaurantRating, Comment: a.RestaurantComment, FromID: s.RestaurantID, FromName: s.RestaurantName}
		default:
			continue
		}
		r.ShiftID = s.ID
		r.Date = *a.CompletedAt
		out.Ratings = append(out.Ratings, r)
		total += r.Rating
	}
	out.TotalRatings = len(out.Ratings)
	if out.TotalRatings > 0 {
		out.AverageRating = RoundTenth(float64(total) / float64(out.TotalRatings))
	}
	return out
}
