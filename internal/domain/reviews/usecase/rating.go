package usecase

import (
	"context"
	"math"
)

// Recompute rescans every review of the movie, recomputes the arithmetic
// mean of ratings rounded half-up to one decimal place (0 when the movie has
// no reviews), persists it on the movie record and returns the new value.
//
// Concurrent submissions for the same movie may transiently write a stale
// average; the next write rescans and settles it.
func (u *ReviewUsecase) Recompute(ctx context.Context, movieID int64) (float64, error) {
	allReviews, err := u.repo.FindAllByMovie(ctx, movieID)
	if err != nil {
		return 0, err
	}

	average := 0.0
	if len(allReviews) > 0 {
		total := 0
		for _, r := range allReviews {
			total += r.Rating
		}
		average = roundRating(float64(total) / float64(len(allReviews)))
	}

	if err := u.movieRepo.UpdateAverageRating(ctx, movieID, average); err != nil {
		return 0, err
	}

	return average, nil
}

// roundRating rounds half-up to one decimal place
func roundRating(value float64) float64 {
	return math.Floor(value*10+0.5) / 10
}
