package reviews

import (
	"time"

	"github.com/martinmanurung/moviebase/pkg/response"
)

// Review is immutable once posted: no update or delete is exposed.
// The compound unique index is the authoritative one-review-per-user-per-movie
// guard; the usecase existence check only produces the friendlier error.
type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserExtID  string    `json:"user_ext_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_reviews_user_movie;index"`
	MovieID    int64     `json:"movie_id" gorm:"not null;uniqueIndex:idx_reviews_user_movie;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	ReviewText string    `json:"review_text" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name for Review
func (Review) TableName() string {
	return "reviews"
}

// Request DTOs

// CreateReviewRequest represents the request to post a review
type CreateReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text"`
}

// Response DTOs

// ReviewerProfile holds the public profile fields joined into review views
type ReviewerProfile struct {
	ExtID          string `json:"ext_id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// ReviewResponse is a review joined with its author's public profile
type ReviewResponse struct {
	ID         int64           `json:"id"`
	MovieID    int64           `json:"movie_id"`
	Rating     int             `json:"rating"`
	ReviewText string          `json:"review_text"`
	CreatedAt  time.Time       `json:"created_at"`
	Reviewer   ReviewerProfile `json:"reviewer"`
}

// ReviewMovieSummary holds the movie fields joined into a user's review list
type ReviewMovieSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	PosterURL   string `json:"poster_url,omitempty"`
	ReleaseYear int    `json:"release_year,omitempty"`
}

// UserReviewResponse is a review joined with a summary of the reviewed movie
type UserReviewResponse struct {
	ID         int64              `json:"id"`
	Rating     int                `json:"rating"`
	ReviewText string             `json:"review_text"`
	CreatedAt  time.Time          `json:"created_at"`
	Movie      ReviewMovieSummary `json:"movie"`
}

// ReviewListWithPagination represents a paginated review list for a movie
type ReviewListWithPagination struct {
	Reviews    []ReviewResponse    `json:"reviews"`
	Pagination response.Pagination `json:"pagination"`
}
