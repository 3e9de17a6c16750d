package delivery

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/moviebase/internal/domain/reviews"
	"github.com/martinmanurung/moviebase/pkg/jwt"
	"github.com/martinmanurung/moviebase/pkg/middleware"
	"github.com/martinmanurung/moviebase/pkg/response"
)

type ReviewUsecase interface {
	CreateReview(ctx context.Context, userExtID string, movieID int64, req reviews.CreateReviewRequest) (*reviews.ReviewResponse, error)
	ListByMovie(ctx context.Context, movieID int64, page, limit int) (*reviews.ReviewListWithPagination, error)
}

type ReviewHandler struct {
	ctx     context.Context
	usecase ReviewUsecase
}

func NewReviewHandler(ctx context.Context, usecase ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{
		ctx:     ctx,
		usecase: usecase,
	}
}

// CreateReview posts a review for a movie
// POST /api/v1/movies/:id/reviews
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := h.ctx

	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_movie_id", err.Error())
	}

	userExtID, err := jwt.GetUserExtIDFromContext(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", err.Error())
	}

	var req reviews.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "rating_must_be_between_1_and_5", err.Error())
	}

	result, err := h.usecase.CreateReview(ctx, userExtID, movieID, req)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		logger.Error().Err(err).Msg("Failed to create review")
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	logger.Info().
		Int64("movie_id", movieID).
		Int("rating", req.Rating).
		Msg("Review created")

	return response.Success(c, http.StatusCreated, "review_added_successfully", result)
}

// GetMovieReviews returns a paginated list of a movie's reviews
// GET /api/v1/movies/:id/reviews?page=1&limit=10
func (h *ReviewHandler) GetMovieReviews(c echo.Context) error {
	ctx := h.ctx

	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_movie_id", err.Error())
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.usecase.ListByMovie(ctx, movieID, page, limit)
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
		"data":       result.Reviews,
		"pagination": result.Pagination,
	})
}
