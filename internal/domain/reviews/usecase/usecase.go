package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/martinmanurung/moviebase/internal/domain/movies"
	"github.com/martinmanurung/moviebase/internal/domain/reviews"
	"github.com/martinmanurung/moviebase/internal/domain/users"
	"github.com/martinmanurung/moviebase/pkg/response"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *reviews.Review) error
	FindByUserAndMovie(ctx context.Context, userExtID string, movieID int64) (*reviews.Review, error)
	FindAllByMovie(ctx context.Context, movieID int64) ([]reviews.Review, error)
	CountByMovie(ctx context.Context, movieID int64) (int64, error)
	FindByMovieWithAuthor(ctx context.Context, movieID int64, offset, limit int) ([]reviews.ReviewResponse, error)
	FindByUserWithMovie(ctx context.Context, userExtID string) ([]reviews.UserReviewResponse, error)
}

type MovieRepository interface {
	FindMovieByID(ctx context.Context, movieID int64) (*movies.Movie, error)
	UpdateAverageRating(ctx context.Context, movieID int64, averageRating float64) error
}

type UserRepository interface {
	FindUserByExtID(ctx context.Context, extID string) (*users.User, error)
}

type ReviewUsecase struct {
	repo      ReviewRepository
	movieRepo MovieRepository
	userRepo  UserRepository
}

func NewReviewUsecase(repo ReviewRepository, movieRepo MovieRepository, userRepo UserRepository) *ReviewUsecase {
	return &ReviewUsecase{
		repo:      repo,
		movieRepo: movieRepo,
		userRepo:  userRepo,
	}
}

// CreateReview posts a review for a movie, recomputes the movie's average
// rating and returns the review joined with the reviewer's public profile
func (u *ReviewUsecase) CreateReview(ctx context.Context, userExtID string, movieID int64, req reviews.CreateReviewRequest) (*reviews.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, response.NewError(http.StatusBadRequest, "rating_must_be_between_1_and_5", nil)
	}

	movie, err := u.movieRepo.FindMovieByID(ctx, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if movie == nil {
		return nil, response.NewError(http.StatusNotFound, "movie_not_found", nil)
	}

	// Fast-path duplicate check; the unique index on (user_ext_id, movie_id)
	// is what actually guarantees one review per user per movie.
	existing, err := u.repo.FindByUserAndMovie(ctx, userExtID, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if existing != nil {
		return nil, response.NewError(http.StatusBadRequest, "already_reviewed", nil)
	}

	review := &reviews.Review{
		UserExtID:  userExtID,
		MovieID:    movieID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
		CreatedAt:  time.Now(),
	}

	if err := u.repo.CreateReview(ctx, review); err != nil {
		return nil, response.InternalServerError(err)
	}

	if _, err := u.Recompute(ctx, movieID); err != nil {
		return nil, response.InternalServerError(err)
	}

	reviewer, err := u.userRepo.FindUserByExtID(ctx, userExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	result := &reviews.ReviewResponse{
		ID:         review.ID,
		MovieID:    review.MovieID,
		Rating:     review.Rating,
		ReviewText: review.ReviewText,
		CreatedAt:  review.CreatedAt,
	}
	if reviewer != nil {
		result.Reviewer = reviews.ReviewerProfile{
			ExtID:          reviewer.ExtID,
			Username:       reviewer.Username,
			ProfilePicture: reviewer.ProfilePicture,
		}
	}

	return result, nil
}

// ListByMovie returns one page of a movie's reviews, newest first
func (u *ReviewUsecase) ListByMovie(ctx context.Context, movieID int64, page, limit int) (*reviews.ReviewListWithPagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	movie, err := u.movieRepo.FindMovieByID(ctx, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if movie == nil {
		return nil, response.NewError(http.StatusNotFound, "movie_not_found", nil)
	}

	offset := (page - 1) * limit
	reviewList, err := u.repo.FindByMovieWithAuthor(ctx, movieID, offset, limit)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	total, err := u.repo.CountByMovie(ctx, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	return &reviews.ReviewListWithPagination{
		Reviews:    reviewList,
		Pagination: response.NewPagination(page, limit, total),
	}, nil
}

// ListAllByMovie returns every review of a movie for the detail view
func (u *ReviewUsecase) ListAllByMovie(ctx context.Context, movieID int64) ([]reviews.ReviewResponse, error) {
	result, err := u.repo.FindByMovieWithAuthor(ctx, movieID, 0, 0)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return result, nil
}

// ListByUser returns a user's reviews joined with movie summaries
func (u *ReviewUsecase) ListByUser(ctx context.Context, userExtID string) ([]reviews.UserReviewResponse, error) {
	result, err := u.repo.FindByUserWithMovie(ctx, userExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	return result, nil
}
