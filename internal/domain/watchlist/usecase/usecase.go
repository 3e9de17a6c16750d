package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/martinmanurung/moviebase/internal/domain/movies"
	"github.com/martinmanurung/moviebase/internal/domain/watchlist"
	"github.com/martinmanurung/moviebase/pkg/response"
)

type WatchlistRepository interface {
	CreateItem(ctx context.Context, item *watchlist.WatchlistItem) error
	FindByUserAndMovie(ctx context.Context, userExtID string, movieID int64) (*watchlist.WatchlistItem, error)
	DeleteByUserAndMovie(ctx context.Context, userExtID string, movieID int64) (int64, error)
	CountByUser(ctx context.Context, userExtID string) (int64, error)
	FindByUserWithMovie(ctx context.Context, userExtID string, offset, limit int) ([]watchlist.WatchlistItemResponse, error)
}

type MovieRepository interface {
	FindMovieByID(ctx context.Context, movieID int64) (*movies.Movie, error)
	GenreNames(ctx context.Context, movieID int64) ([]string, error)
}

type WatchlistUsecase struct {
	repo      WatchlistRepository
	movieRepo MovieRepository
}

func NewWatchlistUsecase(repo WatchlistRepository, movieRepo MovieRepository) *WatchlistUsecase {
	return &WatchlistUsecase{
		repo:      repo,
		movieRepo: movieRepo,
	}
}

// Add puts a movie on the caller's own watchlist. The unique index on
// (user_ext_id, movie_id) backs the duplicate check.
func (u *WatchlistUsecase) Add(ctx context.Context, callerExtID, userExtID string, movieID int64) (*watchlist.WatchlistItemResponse, error) {
	if callerExtID != userExtID {
		return nil, response.NewError(http.StatusForbidden, "can_only_modify_own_watchlist", nil)
	}

	movie, err := u.movieRepo.FindMovieByID(ctx, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if movie == nil {
		return nil, response.NewError(http.StatusNotFound, "movie_not_found", nil)
	}

	existing, err := u.repo.FindByUserAndMovie(ctx, userExtID, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if existing != nil {
		return nil, response.NewError(http.StatusBadRequest, "movie_already_in_watchlist", nil)
	}

	item := &watchlist.WatchlistItem{
		UserExtID: userExtID,
		MovieID:   movieID,
		DateAdded: time.Now(),
	}

	if err := u.repo.CreateItem(ctx, item); err != nil {
		return nil, response.InternalServerError(err)
	}

	genre, err := u.movieRepo.GenreNames(ctx, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if genre == nil {
		genre = []string{}
	}

	return &watchlist.WatchlistItemResponse{
		ID:        item.ID,
		DateAdded: item.DateAdded,
		Movie: watchlist.MovieSummary{
			ID:            movie.ID,
			Title:         movie.Title,
			PosterURL:     movie.PosterURL,
			ReleaseYear:   movie.ReleaseYear,
			Director:      movie.Director,
			Genre:         genre,
			AverageRating: movie.AverageRating,
		},
	}, nil
}

// Remove takes a movie off the caller's own watchlist
func (u *WatchlistUsecase) Remove(ctx context.Context, callerExtID, userExtID string, movieID int64) error {
	if callerExtID != userExtID {
		return response.NewError(http.StatusForbidden, "can_only_modify_own_watchlist", nil)
	}

	affected, err := u.repo.DeleteByUserAndMovie(ctx, userExtID, movieID)
	if err != nil {
		return response.InternalServerError(err)
	}
	if affected == 0 {
		return response.NewError(http.StatusNotFound, "movie_not_in_watchlist", nil)
	}

	return nil
}

// List returns one page of the caller's own watchlist, newest first
func (u *WatchlistUsecase) List(ctx context.Context, callerExtID, userExtID string, page, limit int) (*watchlist.WatchlistWithPagination, error) {
	if callerExtID != userExtID {
		return nil, response.NewError(http.StatusForbidden, "can_only_view_own_watchlist", nil)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	offset := (page - 1) * limit
	items, err := u.repo.FindByUserWithMovie(ctx, userExtID, offset, limit)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	total, err := u.repo.CountByUser(ctx, userExtID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	return &watchlist.WatchlistWithPagination{
		Watchlist:  items,
		Pagination: response.NewPagination(page, limit, total),
	}, nil
}
