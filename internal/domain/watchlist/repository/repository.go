package repository

import (
	"context"
	"errors"
	"time"

	"github.com/martinmanurung/moviebase/internal/domain/watchlist"
	"gorm.io/gorm"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// CreateItem inserts a new watchlist entry
func (r *WatchlistRepository) CreateItem(ctx context.Context, item *watchlist.WatchlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByUserAndMovie finds a user's watchlist entry for a movie, nil when absent
func (r *WatchlistRepository) FindByUserAndMovie(ctx context.Context, userExtID string, movieID int64) (*watchlist.WatchlistItem, error) {
	var item watchlist.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("user_ext_id = ? AND movie_id = ?", userExtID, movieID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// DeleteByUserAndMovie removes the matching entry and reports how many rows
// were affected, so the caller can distinguish a miss
func (r *WatchlistRepository) DeleteByUserAndMovie(ctx context.Context, userExtID string, movieID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_ext_id = ? AND movie_id = ?", userExtID, movieID).
		Delete(&watchlist.WatchlistItem{})
	return result.RowsAffected, result.Error
}

// CountByUser returns the total watchlist size for a user
func (r *WatchlistRepository) CountByUser(ctx context.Context, userExtID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&watchlist.WatchlistItem{}).
		Where("user_ext_id = ?", userExtID).
		Count(&count).Error
	return count, err
}

// FindByUserWithMovie returns one page of a user's watchlist joined with
// movie summaries, newest first
func (r *WatchlistRepository) FindByUserWithMovie(ctx context.Context, userExtID string, offset, limit int) ([]watchlist.WatchlistItemResponse, error) {
	var rows []struct {
		ID            int64
		DateAdded     time.Time
		MovieID       int64
		Title         string
		PosterURL     string
		ReleaseYear   int
		Director      string
		AverageRating float64
	}

	err := r.db.WithContext(ctx).
		Table("watchlists").
		Select("watchlists.id, watchlists.date_added, movies.id AS movie_id, movies.title, movies.poster_url, movies.release_year, movies.director, movies.average_rating").
		Joins("JOIN movies ON movies.id = watchlists.movie_id").
		Where("watchlists.user_ext_id = ?", userExtID).
		Order("watchlists.date_added DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	movieIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		movieIDs = append(movieIDs, row.MovieID)
	}
	genres, err := r.genresForMovies(ctx, movieIDs)
	if err != nil {
		return nil, err
	}

	result := make([]watchlist.WatchlistItemResponse, 0, len(rows))
	for _, row := range rows {
		genre := genres[row.MovieID]
		if genre == nil {
			genre = []string{}
		}
		result = append(result, watchlist.WatchlistItemResponse{
			ID:        row.ID,
			DateAdded: row.DateAdded,
			Movie: watchlist.MovieSummary{
				ID:            row.MovieID,
				Title:         row.Title,
				PosterURL:     row.PosterURL,
				ReleaseYear:   row.ReleaseYear,
				Director:      row.Director,
				Genre:         genre,
				AverageRating: row.AverageRating,
			},
		})
	}
	return result, nil
}

func (r *WatchlistRepository) genresForMovies(ctx context.Context, movieIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(movieIDs))
	if len(movieIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		MovieID int64
		Name    string
	}
	err := r.db.WithContext(ctx).
		Table("movie_genres").
		Select("movie_id, name").
		Where("movie_id IN ?", movieIDs).
		Order("movie_id ASC, position ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.MovieID] = append(result[row.MovieID], row.Name)
	}
	return result, nil
}
