package model

import "math"

// ComputeVotes is the number of reviews
func ComputeVotes(reviews []Review) int {
	return len(reviews)
}

// ComputeRating is the mean review rating rounded to one decimal, 0 without reviews
func ComputeRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}

// Recompute refreshes Votes and Rating from Reviews. Stored values are
// never trusted over the review list.
func (r *Recipe) Recompute() {
	r.EnsureCollections()
	r.Votes = ComputeVotes(r.Reviews)
	r.Rating = ComputeRating(r.Reviews)
}

// BestPhoto returns the photo of the latest review that has one, else the
// recipe image, else "".
func (r *Recipe) BestPhoto() string {
	for i := len(r.Reviews) - 1; i >= 0; i-- {
		if r.Reviews[i].Photo != "" {
			return r.Reviews[i].Photo
		}
	}
	return r.Image
}
