package watchlist

import (
	"time"

	"github.com/martinmanurung/moviebase/pkg/response"
)

// WatchlistItem links a user to a movie they plan to watch. The compound
// unique index keeps each pair to a single entry; removal clears the guard
// so the same movie can be re-added later.
type WatchlistItem struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserExtID string    `json:"user_ext_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_watchlists_user_movie;index"`
	MovieID   int64     `json:"movie_id" gorm:"not null;uniqueIndex:idx_watchlists_user_movie"`
	DateAdded time.Time `json:"date_added" gorm:"autoCreateTime"`
}

// TableName overrides the table name for WatchlistItem
func (WatchlistItem) TableName() string {
	return "watchlists"
}

// Request DTOs

// AddToWatchlistRequest represents the request to add a movie to a watchlist
type AddToWatchlistRequest struct {
	MovieID int64 `json:"movie_id" validate:"required"`
}

// Response DTOs

// MovieSummary holds the movie fields joined into watchlist views
type MovieSummary struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	PosterURL     string   `json:"poster_url,omitempty"`
	ReleaseYear   int      `json:"release_year,omitempty"`
	Director      string   `json:"director,omitempty"`
	Genre         []string `json:"genre"`
	AverageRating float64  `json:"average_rating"`
}

// WatchlistItemResponse is a watchlist entry joined with its movie summary
type WatchlistItemResponse struct {
	ID        int64        `json:"id"`
	DateAdded time.Time    `json:"date_added"`
	Movie     MovieSummary `json:"movie"`
}

// WatchlistWithPagination represents a paginated watchlist
type WatchlistWithPagination struct {
	Watchlist  []WatchlistItemResponse `json:"watchlist"`
	Pagination response.Pagination     `json:"pagination"`
}
