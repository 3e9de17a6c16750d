package usecase

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/martinmanurung/moviebase/internal/domain/movies"
	"github.com/martinmanurung/moviebase/pkg/response"
)

type fakeMovieRepo struct {
	movies    []movies.Movie
	nextID    int64
	lastQuery movies.ListQuery
}

func (f *fakeMovieRepo) CreateMovie(_ context.Context, movie *movies.Movie, genre, cast []string) error {
	f.nextID++
	movie.ID = f.nextID
	f.movies = append(f.movies, *movie)
	return nil
}

func (f *fakeMovieRepo) FindMovieByID(_ context.Context, movieID int64) (*movies.Movie, error) {
	for i := range f.movies {
		if f.movies[i].ID == movieID {
			m := f.movies[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovieRepo) FindMovieByTitle(_ context.Context, title string) (*movies.Movie, error) {
	for i := range f.movies {
		if f.movies[i].Title == title {
			m := f.movies[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovieRepo) FindAllMovies(_ context.Context, q movies.ListQuery) ([]movies.Movie, int64, error) {
	f.lastQuery = q
	total := int64(len(f.movies))
	if q.Offset >= len(f.movies) {
		return []movies.Movie{}, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(f.movies) {
		end = len(f.movies)
	}
	return f.movies[q.Offset:end], total, nil
}

func (f *fakeMovieRepo) GenreNames(_ context.Context, movieID int64) ([]string, error) {
	return nil, nil
}

func (f *fakeMovieRepo) CastNames(_ context.Context, movieID int64) ([]string, error) {
	return nil, nil
}

func (f *fakeMovieRepo) GenresForMovies(_ context.Context, movieIDs []int64) (map[int64][]string, error) {
	return map[int64][]string{}, nil
}

func (f *fakeMovieRepo) CastForMovies(_ context.Context, movieIDs []int64) (map[int64][]string, error) {
	return map[int64][]string{}, nil
}

type fakeStorage struct {
	uploads int
}

func (f *fakeStorage) UploadPoster(_ context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, string, error) {
	f.uploads++
	return "http://minio.local/posters/posters/abc.jpg", "posters/abc.jpg", nil
}

func seededRepo(count int) *fakeMovieRepo {
	repo := &fakeMovieRepo{}
	for i := 0; i < count; i++ {
		repo.nextID++
		repo.movies = append(repo.movies, movies.Movie{ID: repo.nextID, Title: titleFor(i)})
	}
	return repo
}

func titleFor(i int) string {
	return "Movie " + string(rune('A'+i%26)) + string(rune('0'+i/26))
}

func apiErrOf(t *testing.T, err error) *response.APIError {
	t.Helper()
	apiErr, ok := err.(*response.APIError)
	if !ok {
		t.Fatalf("expected *response.APIError, got %T: %v", err, err)
	}
	return apiErr
}

func TestListMovies_PaginationEnvelope(t *testing.T) {
	repo := seededRepo(25)
	uc := NewMovieUsecase(repo, &fakeStorage{})
	ctx := context.Background()

	result, err := uc.ListMovies(ctx, movies.ListMoviesParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	if len(result.Movies) != 10 {
		t.Fatalf("expected 10 movies on page 1, got %d", len(result.Movies))
	}
	p := result.Pagination
	if p.CurrentPage != 1 || p.TotalPages != 3 || p.TotalItems != 25 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if !p.HasNext || p.HasPrev {
		t.Fatalf("page 1 of 3: hasNext=%v hasPrev=%v", p.HasNext, p.HasPrev)
	}

	result, err = uc.ListMovies(ctx, movies.ListMoviesParams{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("page 3 failed: %v", err)
	}
	if len(result.Movies) != 5 {
		t.Fatalf("expected 5 movies on page 3, got %d", len(result.Movies))
	}
	p = result.Pagination
	if p.HasNext || !p.HasPrev {
		t.Fatalf("page 3 of 3: hasNext=%v hasPrev=%v", p.HasNext, p.HasPrev)
	}
}

func TestListMovies_ClampsPageAndLimit(t *testing.T) {
	repo := seededRepo(5)
	uc := NewMovieUsecase(repo, &fakeStorage{})

	result, err := uc.ListMovies(context.Background(), movies.ListMoviesParams{Page: -3, Limit: 5000})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Pagination.CurrentPage != 1 {
		t.Fatalf("expected page clamped to 1, got %d", result.Pagination.CurrentPage)
	}
	if result.Pagination.Limit != 10 {
		t.Fatalf("expected limit reset to 10, got %d", result.Pagination.Limit)
	}
}

func TestListMovies_GenreFilterSplitsAndTrims(t *testing.T) {
	repo := seededRepo(3)
	uc := NewMovieUsecase(repo, &fakeStorage{})

	_, err := uc.ListMovies(context.Background(), movies.ListMoviesParams{Genre: "sci-fi, thriller , ,drama"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := repo.lastQuery.Genres
	want := []string{"sci-fi", "thriller", "drama"}
	if len(got) != len(want) {
		t.Fatalf("expected %d genres, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("genre %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestListMovies_SortFieldWhitelist(t *testing.T) {
	repo := seededRepo(3)
	uc := NewMovieUsecase(repo, &fakeStorage{})
	ctx := context.Background()

	_, err := uc.ListMovies(ctx, movies.ListMoviesParams{SortBy: "averageRating", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("valid sort failed: %v", err)
	}
	if repo.lastQuery.SortColumn != "average_rating" || !repo.lastQuery.SortDesc {
		t.Fatalf("unexpected sort mapping: %+v", repo.lastQuery)
	}

	_, err = uc.ListMovies(ctx, movies.ListMoviesParams{SortBy: "password"})
	if err == nil {
		t.Fatal("expected unknown sort field to be rejected")
	}
	apiErr := apiErrOf(t, err)
	if apiErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", apiErr.Code)
	}
	if apiErr.Message != "invalid_sort_field" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestListMovies_DefaultSortNewestFirst(t *testing.T) {
	repo := seededRepo(3)
	uc := NewMovieUsecase(repo, &fakeStorage{})

	if _, err := uc.ListMovies(context.Background(), movies.ListMoviesParams{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastQuery.SortColumn != "created_at" || !repo.lastQuery.SortDesc {
		t.Fatalf("unexpected default sort: %+v", repo.lastQuery)
	}
}

func TestListMovies_InvalidNumericFilters(t *testing.T) {
	repo := seededRepo(3)
	uc := NewMovieUsecase(repo, &fakeStorage{})
	ctx := context.Background()

	_, err := uc.ListMovies(ctx, movies.ListMoviesParams{Year: "not-a-year"})
	if err == nil {
		t.Fatal("expected invalid year to be rejected")
	}
	if apiErr := apiErrOf(t, err); apiErr.Message != "invalid_year_filter" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}

	_, err = uc.ListMovies(ctx, movies.ListMoviesParams{MinRating: "four"})
	if err == nil {
		t.Fatal("expected invalid minRating to be rejected")
	}
	if apiErr := apiErrOf(t, err); apiErr.Message != "invalid_min_rating_filter" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestGetMovieByID_NotFound(t *testing.T) {
	uc := NewMovieUsecase(seededRepo(1), &fakeStorage{})

	_, err := uc.GetMovieByID(context.Background(), 999)
	if err == nil {
		t.Fatal("expected not found error")
	}
	if apiErr := apiErrOf(t, err); apiErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", apiErr.Code)
	}
}

func TestCreateMovie_DuplicateTitle(t *testing.T) {
	uc := NewMovieUsecase(seededRepo(0), &fakeStorage{})
	ctx := context.Background()

	if _, err := uc.CreateMovie(ctx, movies.CreateMovieRequest{Title: "Alien"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := uc.CreateMovie(ctx, movies.CreateMovieRequest{Title: "Alien"})
	if err == nil {
		t.Fatal("expected duplicate title to fail")
	}
	apiErr := apiErrOf(t, err)
	if apiErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", apiErr.Code)
	}
	if apiErr.Message != "movie_title_already_exists" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestCreateMovie_StartsWithZeroRating(t *testing.T) {
	uc := NewMovieUsecase(seededRepo(0), &fakeStorage{})

	result, err := uc.CreateMovie(context.Background(), movies.CreateMovieRequest{
		Title: "Alien",
		Genre: []string{"horror", "sci-fi"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if result.AverageRating != 0 {
		t.Fatalf("new movie should start at rating 0, got %v", result.AverageRating)
	}
	if len(result.Genre) != 2 {
		t.Fatalf("expected 2 genres, got %v", result.Genre)
	}
}

func posterHeader(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "poster.jpg",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestUploadPoster_RejectsNonImage(t *testing.T) {
	storage := &fakeStorage{}
	uc := NewMovieUsecase(seededRepo(0), storage)

	_, err := uc.UploadPoster(context.Background(), nil, posterHeader("application/pdf", 1024))
	if err == nil {
		t.Fatal("expected non-image upload to fail")
	}
	apiErr := apiErrOf(t, err)
	if apiErr.Message != "only_image_files_allowed" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
	if storage.uploads != 0 {
		t.Fatal("nothing should have been uploaded")
	}
}

func TestUploadPoster_SizeBoundary(t *testing.T) {
	storage := &fakeStorage{}
	uc := NewMovieUsecase(seededRepo(0), storage)
	ctx := context.Background()

	// Exactly 5MB is allowed
	if _, err := uc.UploadPoster(ctx, nil, posterHeader("image/jpeg", 5<<20)); err != nil {
		t.Fatalf("5MB upload should succeed: %v", err)
	}

	// One byte over is rejected
	_, err := uc.UploadPoster(ctx, nil, posterHeader("image/jpeg", 5<<20+1))
	if err == nil {
		t.Fatal("expected oversized upload to fail")
	}
	apiErr := apiErrOf(t, err)
	if apiErr.Message != "file_too_large" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
	if storage.uploads != 1 {
		t.Fatalf("expected exactly 1 upload, got %d", storage.uploads)
	}
}

func TestUploadPoster_MissingFile(t *testing.T) {
	uc := NewMovieUsecase(seededRepo(0), &fakeStorage{})

	_, err := uc.UploadPoster(context.Background(), nil, nil)
	if err == nil {
		t.Fatal("expected missing file to fail")
	}
	if apiErr := apiErrOf(t, err); apiErr.Message != "no_file_uploaded" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}
