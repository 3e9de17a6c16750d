package repository

import (
	"context"
	"errors"
	"time"

	"github.com/martinmanurung/moviebase/internal/domain/reviews"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// reviewWithAuthorRow is the flat scan target for the users join
type reviewWithAuthorRow struct {
	ID             int64
	MovieID        int64
	Rating         int
	ReviewText     string
	CreatedAt      time.Time
	UserExtID      string
	Username       string
	ProfilePicture string
}

// CreateReview inserts a new review
func (r *ReviewRepository) CreateReview(ctx context.Context, review *reviews.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// FindByUserAndMovie finds a user's review of a movie, nil when absent
func (r *ReviewRepository) FindByUserAndMovie(ctx context.Context, userExtID string, movieID int64) (*reviews.Review, error) {
	var review reviews.Review
	err := r.db.WithContext(ctx).
		Where("user_ext_id = ? AND movie_id = ?", userExtID, movieID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// FindAllByMovie returns every review of a movie, used by the rating rescan
func (r *ReviewRepository) FindAllByMovie(ctx context.Context, movieID int64) ([]reviews.Review, error) {
	var result []reviews.Review
	err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Find(&result).Error
	return result, err
}

// CountByMovie returns the total review count for a movie
func (r *ReviewRepository) CountByMovie(ctx context.Context, movieID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&reviews.Review{}).
		Where("movie_id = ?", movieID).
		Count(&count).Error
	return count, err
}

// FindByMovieWithAuthor returns reviews of a movie joined with the author's
// public profile, newest first. A limit < 1 disables pagination.
func (r *ReviewRepository) FindByMovieWithAuthor(ctx context.Context, movieID int64, offset, limit int) ([]reviews.ReviewResponse, error) {
	query := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.id, reviews.movie_id, reviews.rating, reviews.review_text, reviews.created_at, users.ext_id AS user_ext_id, users.username, users.profile_picture").
		Joins("JOIN users ON users.ext_id = reviews.user_ext_id").
		Where("reviews.movie_id = ?", movieID).
		Order("reviews.created_at DESC")

	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var rows []reviewWithAuthorRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]reviews.ReviewResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, reviews.ReviewResponse{
			ID:         row.ID,
			MovieID:    row.MovieID,
			Rating:     row.Rating,
			ReviewText: row.ReviewText,
			CreatedAt:  row.CreatedAt,
			Reviewer: reviews.ReviewerProfile{
				ExtID:          row.UserExtID,
				Username:       row.Username,
				ProfilePicture: row.ProfilePicture,
			},
		})
	}
	return result, nil
}

// FindByUserWithMovie returns a user's reviews joined with a movie summary,
// newest first
func (r *ReviewRepository) FindByUserWithMovie(ctx context.Context, userExtID string) ([]reviews.UserReviewResponse, error) {
	var rows []struct {
		ID          int64
		Rating      int
		ReviewText  string
		CreatedAt   time.Time
		MovieID     int64
		Title       string
		PosterURL   string
		ReleaseYear int
	}

	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.id, reviews.rating, reviews.review_text, reviews.created_at, movies.id AS movie_id, movies.title, movies.poster_url, movies.release_year").
		Joins("JOIN movies ON movies.id = reviews.movie_id").
		Where("reviews.user_ext_id = ?", userExtID).
		Order("reviews.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]reviews.UserReviewResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, reviews.UserReviewResponse{
			ID:         row.ID,
			Rating:     row.Rating,
			ReviewText: row.ReviewText,
			CreatedAt:  row.CreatedAt,
			Movie: reviews.ReviewMovieSummary{
				ID:          row.MovieID,
				Title:       row.Title,
				PosterURL:   row.PosterURL,
				ReleaseYear: row.ReleaseYear,
			},
		})
	}
	return result, nil
}
