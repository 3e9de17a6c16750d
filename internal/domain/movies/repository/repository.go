package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/martinmanurung/moviebase/internal/domain/movies"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// CreateMovie creates a movie together with its genre and cast tags
// in a single transaction.
func (r *MovieRepository) CreateMovie(ctx context.Context, movie *movies.Movie, genre, cast []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movie).Error; err != nil {
			return err
		}

		for i, name := range genre {
			if err := tx.Create(&movies.MovieGenre{MovieID: movie.ID, Position: i, Name: name}).Error; err != nil {
				return err
			}
		}

		for i, name := range cast {
			if err := tx.Create(&movies.MovieCastMember{MovieID: movie.ID, Position: i, Name: name}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindMovieByID finds a movie by its ID
func (r *MovieRepository) FindMovieByID(ctx context.Context, movieID int64) (*movies.Movie, error) {
	var movie movies.Movie
	err := r.db.WithContext(ctx).Where("id = ?", movieID).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

// FindMovieByTitle finds a movie by its exact title
func (r *MovieRepository) FindMovieByTitle(ctx context.Context, title string) (*movies.Movie, error) {
	var movie movies.Movie
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

// FindAllMovies returns one catalog page plus the total match count
func (r *MovieRepository) FindAllMovies(ctx context.Context, q movies.ListQuery) ([]movies.Movie, int64, error) {
	var results []movies.Movie
	var totalCount int64

	query := r.db.WithContext(ctx).Table("movies").Select("movies.*")

	// Genre filter matches movies whose tag set intersects the given list
	if len(q.Genres) > 0 {
		query = query.
			Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
			Where("movie_genres.name IN ?", q.Genres).
			Distinct("movies.*")
	}

	if q.Year != 0 {
		query = query.Where("movies.release_year = ?", q.Year)
	}

	if q.HasMinRating {
		query = query.Where("movies.average_rating >= ?", q.MinRating)
	}

	// Count total records
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Distinct("movies.id").Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}

	// Get paginated results
	err := query.
		Order(fmt.Sprintf("movies.%s %s", q.SortColumn, direction)).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}

	return results, totalCount, nil
}

// UpdateAverageRating writes the recomputed average rating for a movie
func (r *MovieRepository) UpdateAverageRating(ctx context.Context, movieID int64, averageRating float64) error {
	result := r.db.WithContext(ctx).Model(&movies.Movie{}).
		Where("id = ?", movieID).
		Updates(map[string]interface{}{
			"average_rating": averageRating,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("movie with id %d not found", movieID)
	}
	return nil
}

// GenreNames returns the ordered genre tags of a movie
func (r *MovieRepository) GenreNames(ctx context.Context, movieID int64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("movie_genres").
		Where("movie_id = ?", movieID).
		Order("position ASC").
		Pluck("name", &names).Error
	return names, err
}

// CastNames returns the ordered cast entries of a movie
func (r *MovieRepository) CastNames(ctx context.Context, movieID int64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("movie_cast").
		Where("movie_id = ?", movieID).
		Order("position ASC").
		Pluck("name", &names).Error
	return names, err
}

// GenresForMovies loads the genre tags for a page of movies in one query
func (r *MovieRepository) GenresForMovies(ctx context.Context, movieIDs []int64) (map[int64][]string, error) {
	return r.tagsForMovies(ctx, "movie_genres", movieIDs)
}

// CastForMovies loads the cast entries for a page of movies in one query
func (r *MovieRepository) CastForMovies(ctx context.Context, movieIDs []int64) (map[int64][]string, error) {
	return r.tagsForMovies(ctx, "movie_cast", movieIDs)
}

func (r *MovieRepository) tagsForMovies(ctx context.Context, table string, movieIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(movieIDs))
	if len(movieIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		MovieID int64
		Name    string
	}
	err := r.db.WithContext(ctx).
		Table(table).
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
