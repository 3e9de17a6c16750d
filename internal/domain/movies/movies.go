package movies

import (
	"time"

	"github.com/martinmanurung/moviebase/pkg/response"
)

// Movie represents a movie entity in the database.
// AverageRating is derived from reviews and never set directly by clients.
type Movie struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title" gorm:"type:varchar(255);not null;uniqueIndex"`
	ReleaseYear   int       `json:"release_year,omitempty"`
	Director      string    `json:"director,omitempty" gorm:"type:varchar(255)"`
	Synopsis      string    `json:"synopsis,omitempty" gorm:"type:text"`
	PosterURL     string    `json:"poster_url,omitempty" gorm:"type:varchar(512)"`
	AverageRating float64   `json:"average_rating" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name for Movie
func (Movie) TableName() string {
	return "movies"
}

// MovieGenre is one genre tag of a movie, ordered by position
type MovieGenre struct {
	MovieID  int64  `json:"movie_id" gorm:"primaryKey;autoIncrement:false"`
	Position int    `json:"position" gorm:"primaryKey;autoIncrement:false"`
	Name     string `json:"name" gorm:"type:varchar(100);not null;index"`
}

// TableName overrides the table name for MovieGenre
func (MovieGenre) TableName() string {
	return "movie_genres"
}

// MovieCastMember is one cast entry of a movie, ordered by position
type MovieCastMember struct {
	MovieID  int64  `json:"movie_id" gorm:"primaryKey;autoIncrement:false"`
	Position int    `json:"position" gorm:"primaryKey;autoIncrement:false"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
}

// TableName overrides the table name for MovieCastMember
func (MovieCastMember) TableName() string {
	return "movie_cast"
}

// Request DTOs

// CreateMovieRequest represents the request to create a new movie (Admin only)
type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Genre       []string `json:"genre"`
	ReleaseYear int      `json:"release_year" validate:"omitempty,min=1888"`
	Director    string   `json:"director" validate:"omitempty,max=255"`
	Cast        []string `json:"cast"`
	Synopsis    string   `json:"synopsis"`
	PosterURL   string   `json:"poster_url" validate:"omitempty,url"`
}

// ListMoviesParams carries the raw catalog query parameters from the client.
// Everything except page/limit is optional and untrusted.
type ListMoviesParams struct {
	Genre     string
	Year      string
	MinRating string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ListQuery is the validated form of ListMoviesParams handed to the repository
type ListQuery struct {
	Genres       []string
	Year         int
	MinRating    float64
	HasMinRating bool
	SortColumn   string
	SortDesc     bool
	Offset       int
	Limit        int
}

// Response DTOs

// MovieResponse is the full movie view with its genre and cast tags
type MovieResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Genre         []string  `json:"genre"`
	ReleaseYear   int       `json:"release_year,omitempty"`
	Director      string    `json:"director,omitempty"`
	Cast          []string  `json:"cast"`
	Synopsis      string    `json:"synopsis,omitempty"`
	PosterURL     string    `json:"poster_url,omitempty"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MovieListWithPagination represents the paginated catalog response
type MovieListWithPagination struct {
	Movies     []MovieResponse     `json:"movies"`
	Pagination response.Pagination `json:"pagination"`
}

// UploadPosterResponse represents the response after uploading a poster
type UploadPosterResponse struct {
	PosterURL string `json:"poster_url"`
	PublicID  string `json:"public_id"`
}
