package delivery

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/moviebase/internal/domain/movies"
	"github.com/martinmanurung/moviebase/internal/domain/reviews"
	"github.com/martinmanurung/moviebase/pkg/middleware"
	"github.com/martinmanurung/moviebase/pkg/response"
)

type MovieUsecase interface {
	ListMovies(ctx context.Context, params movies.ListMoviesParams) (*movies.MovieListWithPagination, error)
	GetMovieByID(ctx context.Context, movieID int64) (*movies.MovieResponse, error)
	CreateMovie(ctx context.Context, req movies.CreateMovieRequest) (*movies.MovieResponse, error)
	UploadPoster(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (*movies.UploadPosterResponse, error)
}

// ReviewLister supplies the reviews shown on the movie detail view
type ReviewLister interface {
	ListAllByMovie(ctx context.Context, movieID int64) ([]reviews.ReviewResponse, error)
}

type MovieHandler struct {
	ctx          context.Context
	usecase      MovieUsecase
	reviewLister ReviewLister
}

func NewMovieHandler(ctx context.Context, usecase MovieUsecase, reviewLister ReviewLister) *MovieHandler {
	return &MovieHandler{
		ctx:          ctx,
		usecase:      usecase,
		reviewLister: reviewLister,
	}
}

// GetMovieList returns the filtered, sorted catalog page (Public)
// GET /api/v1/movies?genre=Action,Comedy&year=2010&minRating=4&sortBy=title&sortOrder=asc&page=1&limit=10
func (h *MovieHandler) GetMovieList(c echo.Context) error {
	ctx := h.ctx

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	params := movies.ListMoviesParams{
		Genre:     c.QueryParam("genre"),
		Year:      c.QueryParam("year"),
		MinRating: c.QueryParam("minRating"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Page:      page,
		Limit:     limit,
	}

	result, err := h.usecase.ListMovies(ctx, params)
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
		"data":       result.Movies,
		"pagination": result.Pagination,
	})
}

// GetMovieDetail returns a movie together with all its reviews (Public)
// GET /api/v1/movies/:id
func (h *MovieHandler) GetMovieDetail(c echo.Context) error {
	ctx := h.ctx

	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_movie_id", err.Error())
	}

	movie, err := h.usecase.GetMovieByID(ctx, movieID)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	movieReviews, err := h.reviewLister.ListAllByMovie(ctx, movieID)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return response.Success(c, http.StatusOK, "success", map[string]interface{}{
		"movie":   movie,
		"reviews": movieReviews,
	})
}

// CreateMovie creates a new catalog entry (Admin only)
// POST /api/v1/admin/movies
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := h.ctx

	var req movies.CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "title_is_required", err.Error())
	}

	result, err := h.usecase.CreateMovie(ctx, req)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		logger.Error().Err(err).Msg("Failed to create movie")
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	logger.Info().Str("title", req.Title).Msg("Movie created")

	return response.Success(c, http.StatusCreated, "movie_created_successfully", result)
}

// UploadPoster uploads a poster image (Admin only)
// POST /api/v1/admin/movies/poster
func (h *MovieHandler) UploadPoster(c echo.Context) error {
	logger := middleware.GetLogger(c)
	ctx := h.ctx

	// Parse multipart form, bounded well above the poster limit
	if err := c.Request().ParseMultipartForm(10 << 20); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_multipart_form", err.Error())
	}

	file, fileHeader, err := c.Request().FormFile("poster")
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "no_file_uploaded", err.Error())
	}
	defer file.Close()

	result, err := h.usecase.UploadPoster(ctx, file, fileHeader)
	if err != nil {
		var apiErr *response.APIError
		if errors, ok := err.(*response.APIError); ok {
			apiErr = errors
			return response.Error(c, apiErr.Code, apiErr.Message, apiErr.Details)
		}
		logger.Error().Err(err).Msg("Failed to upload poster")
		return response.Error(c, http.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return response.Success(c, http.StatusOK, "poster_uploaded_successfully", result)
}
