package delivery

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/moviebase/internal/domain/watchlist"
	"github.com/martinmanurung/moviebase/pkg/jwt"
	"github.com/martinmanurung/moviebase/pkg/middleware"
	"github.com/martinmanurung/moviebase/pkg/response"
)

type WatchlistUsecase interface {
	Add(ctx context.Context, callerExtID, userExtID string, movieID int64) (*watchlist.WatchlistItemResponse, error)
	Remove(ctx context.Context, callerExtID, userExtID string, movieID int64) error
	List(ctx context.Context, callerExtID, userExtID string, page, limit int) (*watchlist.WatchlistWithPagination, error)
}

type WatchlistHandler struct {
	ctx     context.Context
	usecase WatchlistUsecase
}

func NewWatchlistHandler(ctx context.Context, usecase WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{
		ctx:     ctx,
		usecase: usecase,
	}
}

// AddToWatchlist adds a movie to the user's own watchlist
// POST /api/v1/users/:id/watchlist
func (h *WatchlistHandler) AddToWatchlist(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := h.ctx

	callerExtID, err := jwt.GetUserExtIDFromContext(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	userExtID := c.Param("id")

	var req watchlist.AddToWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "movie_id_required", err.Error())
	}

	result, err := h.usecase.Add(ctx, callerExtID, userExtID, req.MovieID)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		logger.Error().Err(err).Msg("Failed to add movie to watchlist")
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return response.Success(c, http.StatusCreated, "movie_added_to_watchlist", result)
}

// RemoveFromWatchlist removes a movie from the user's own watchlist
// DELETE /api/v1/users/:id/watchlist/:movieId
func (h *WatchlistHandler) RemoveFromWatchlist(c echo.Context) error {
	ctx := h.ctx

	callerExtID, err := jwt.GetUserExtIDFromContext(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	userExtID := c.Param("id")

	movieID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_movie_id", err.Error())
	}

	err = h.usecase.Remove(ctx, callerExtID, userExtID, movieID)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return response.Success(c, http.StatusOK, "movie_removed_from_watchlist", nil)
}

// GetWatchlist returns one page of the user's own watchlist
// GET /api/v1/users/:id/watchlist?page=1&limit=10
func (h *WatchlistHandler) GetWatchlist(c echo.Context) error {
	ctx := h.ctx

	callerExtID, err := jwt.GetUserExtIDFromContext(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	userExtID := c.Param("id")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.usecase.List(ctx, callerExtID, userExtID, page, limit)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "success",
		"data":       result.Watchlist,
		"pagination": result.Pagination,
	})
}
