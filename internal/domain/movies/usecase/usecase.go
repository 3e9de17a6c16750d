package usecase

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/martinmanurung/moviebase/internal/domain/movies"
	"github.com/martinmanurung/moviebase/pkg/response"
)

// maxPosterSize is the upload boundary for poster images (5 MB)
const maxPosterSize = 5 << 20

// sortableFields whitelists catalog sort fields. Raw client input is never
// passed to the query layer; both snake_case and camelCase forms are accepted.
var sortableFields = map[string]string{
	"title":          "title",
	"release_year":   "release_year",
	"releaseYear":    "release_year",
	"average_rating": "average_rating",
	"averageRating":  "average_rating",
	"created_at":     "created_at",
	"createdAt":      "created_at",
}

type MovieRepository interface {
	CreateMovie(ctx context.Context, movie *movies.Movie, genre, cast []string) error
	FindMovieByID(ctx context.Context, movieID int64) (*movies.Movie, error)
	FindMovieByTitle(ctx context.Context, title string) (*movies.Movie, error)
	FindAllMovies(ctx context.Context, q movies.ListQuery) ([]movies.Movie, int64, error)
	GenreNames(ctx context.Context, movieID int64) ([]string, error)
	CastNames(ctx context.Context, movieID int64) ([]string, error)
	GenresForMovies(ctx context.Context, movieIDs []int64) (map[int64][]string, error)
	CastForMovies(ctx context.Context, movieIDs []int64) (map[int64][]string, error)
}

type StorageService interface {
	UploadPoster(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, string, error)
}

type MovieUsecase struct {
	repo           MovieRepository
	storageService StorageService
}

func NewMovieUsecase(repo MovieRepository, storageService StorageService) *MovieUsecase {
	return &MovieUsecase{
		repo:           repo,
		storageService: storageService,
	}
}

// ListMovies returns one catalog page shaped by the given filters and sort
func (u *MovieUsecase) ListMovies(ctx context.Context, params movies.ListMoviesParams) (*movies.MovieListWithPagination, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := movies.ListQuery{
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	if params.Genre != "" {
		for _, tag := range strings.Split(params.Genre, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				query.Genres = append(query.Genres, tag)
			}
		}
	}

	if params.Year != "" {
		year, err := strconv.Atoi(params.Year)
		if err != nil {
			return nil, response.NewError(http.StatusBadRequest, "invalid_year_filter", err.Error())
		}
		query.Year = year
	}

	if params.MinRating != "" {
		minRating, err := strconv.ParseFloat(params.MinRating, 64)
		if err != nil {
			return nil, response.NewError(http.StatusBadRequest, "invalid_min_rating_filter", err.Error())
		}
		query.MinRating = minRating
		query.HasMinRating = true
	}

	if params.SortBy != "" {
		column, ok := sortableFields[params.SortBy]
		if !ok {
			return nil, response.NewError(http.StatusBadRequest, "invalid_sort_field", params.SortBy)
		}
		query.SortColumn = column
		query.SortDesc = params.SortOrder == "desc"
	} else {
		// Default sort by newest
		query.SortColumn = "created_at"
		query.SortDesc = true
	}

	movieList, totalCount, err := u.repo.FindAllMovies(ctx, query)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	results, err := u.toResponses(ctx, movieList)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	return &movies.MovieListWithPagination{
		Movies:     results,
		Pagination: response.NewPagination(page, limit, totalCount),
	}, nil
}

// GetMovieByID returns the full movie view or NotFound
func (u *MovieUsecase) GetMovieByID(ctx context.Context, movieID int64) (*movies.MovieResponse, error) {
	movie, err := u.repo.FindMovieByID(ctx, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if movie == nil {
		return nil, response.NewError(http.StatusNotFound, "movie_not_found", nil)
	}

	genre, err := u.repo.GenreNames(ctx, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	cast, err := u.repo.CastNames(ctx, movieID)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	result := toResponse(*movie, genre, cast)
	return &result, nil
}

// CreateMovie creates a new movie with averageRating 0 (Admin only)
func (u *MovieUsecase) CreateMovie(ctx context.Context, req movies.CreateMovieRequest) (*movies.MovieResponse, error) {
	existing, err := u.repo.FindMovieByTitle(ctx, req.Title)
	if err != nil {
		return nil, response.InternalServerError(err)
	}
	if existing != nil {
		return nil, response.NewError(http.StatusBadRequest, "movie_title_already_exists", nil)
	}

	movie := &movies.Movie{
		Title:         req.Title,
		ReleaseYear:   req.ReleaseYear,
		Director:      req.Director,
		Synopsis:      req.Synopsis,
		PosterURL:     req.PosterURL,
		AverageRating: 0,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := u.repo.CreateMovie(ctx, movie, req.Genre, req.Cast); err != nil {
		return nil, response.InternalServerError(err)
	}

	result := toResponse(*movie, req.Genre, req.Cast)
	return &result, nil
}

// UploadPoster validates the poster boundary constraints and stores the image
func (u *MovieUsecase) UploadPoster(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (*movies.UploadPosterResponse, error) {
	if fileHeader == nil {
		return nil, response.NewError(http.StatusBadRequest, "no_file_uploaded", nil)
	}

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return nil, response.NewError(http.StatusBadRequest, "only_image_files_allowed", nil)
	}

	if fileHeader.Size > maxPosterSize {
		return nil, response.NewError(http.StatusBadRequest, "file_too_large", "maximum file size is 5MB")
	}

	posterURL, publicID, err := u.storageService.UploadPoster(ctx, file, fileHeader)
	if err != nil {
		return nil, response.InternalServerError(err)
	}

	return &movies.UploadPosterResponse{
		PosterURL: posterURL,
		PublicID:  publicID,
	}, nil
}

func (u *MovieUsecase) toResponses(ctx context.Context, movieList []movies.Movie) ([]movies.MovieResponse, error) {
	ids := make([]int64, 0, len(movieList))
	for _, m := range movieList {
		ids = append(ids, m.ID)
	}

	genres, err := u.repo.GenresForMovies(ctx, ids)
	if err != nil {
		return nil, err
	}
	cast, err := u.repo.CastForMovies(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]movies.MovieResponse, 0, len(movieList))
	for _, m := range movieList {
		results = append(results, toResponse(m, genres[m.ID], cast[m.ID]))
	}
	return results, nil
}

func toResponse(m movies.Movie, genre, cast []string) movies.MovieResponse {
	if genre == nil {
		genre = []string{}
	}
	if cast == nil {
		cast = []string{}
	}

	return movies.MovieResponse{
		ID:            m.ID,
		Title:         m.Title,
		Genre:         genre,
		ReleaseYear:   m.ReleaseYear,
		Director:      m.Director,
		Cast:          cast,
		Synopsis:      m.Synopsis,
		PosterURL:     m.PosterURL,
		AverageRating: m.AverageRating,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
