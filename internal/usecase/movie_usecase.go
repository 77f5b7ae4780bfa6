package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"cinelog/infrastructure/cache"
	"cinelog/infrastructure/moviedb"
	"cinelog/internal/apperror"
	"cinelog/internal/entity"
)

type MovieUsecase interface {
	Search(ctx context.Context, query string, page int) ([]entity.Movie, entity.MoviePage, error)
	Popular(ctx context.Context, page int) ([]entity.Movie, entity.MoviePage, error)
	Trending(ctx context.Context, timeWindow string, page int) ([]entity.Movie, entity.MoviePage, error)
	Genres(ctx context.Context) ([]entity.Genre, error)
	Details(ctx context.Context, movieId string) (entity.MovieDetails, error)
}

type movieUsecase struct {
	client   *moviedb.Client
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewMovieUsecase accepts a nil client; calls then fail with a configuration
// error instead of panicking, so the rest of the app works without an API key.
func NewMovieUsecase(client *moviedb.Client, c cache.Cache, cacheTTL time.Duration) MovieUsecase {
	return &movieUsecase{
		client:   client,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

type moviePageResult struct {
	Movies []entity.Movie   `json:"movies"`
	Page   entity.MoviePage `json:"page"`
}

func (u *movieUsecase) ready() error {
	if u.client == nil {
		return apperror.New(500, "TMDB_NOT_CONFIGURED", "Movie provider is not configured")
	}
	return nil
}

func translateMovieErr(err error) error {
	switch {
	case errors.Is(err, moviedb.ErrMovieNotFound):
		return apperror.NotFound("MOVIE_NOT_FOUND", "Movie not found")
	case errors.Is(err, moviedb.ErrUnauthorized):
		return apperror.New(500, "TMDB_AUTH_ERROR", "Movie provider rejected the API key")
	}
	return fmt.Errorf("movie provider: %w", err)
}

// cachedPage serves a paged movie listing through the cache. Cache failures
// never surface to the caller; the provider is re-queried instead.
func (u *movieUsecase) cachedPage(
	ctx context.Context,
	key string,
	fetch func(context.Context) ([]entity.Movie, entity.MoviePage, error),
) ([]entity.Movie, entity.MoviePage, error) {
	if raw, ok := u.cache.Get(ctx, key); ok {
		var cached moviePageResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached.Movies, cached.Page, nil
		}
		log.Printf("discarding malformed cache entry: %s", key)
	}

	movies, page, err := fetch(ctx)
	if err != nil {
		return nil, entity.MoviePage{}, translateMovieErr(err)
	}

	if raw, err := json.Marshal(moviePageResult{Movies: movies, Page: page}); err == nil {
		u.cache.Set(ctx, key, raw, u.cacheTTL)
	}
	return movies, page, nil
}

func (u *movieUsecase) Search(ctx context.Context, query string, page int) ([]entity.Movie, entity.MoviePage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, entity.MoviePage{}, apperror.BadRequest("INVALID_QUERY", "Search query is required")
	}
	if err := u.ready(); err != nil {
		return nil, entity.MoviePage{}, err
	}

	key := "movies:search:" + query + ":" + strconv.Itoa(page)
	return u.cachedPage(ctx, key, func(ctx context.Context) ([]entity.Movie, entity.MoviePage, error) {
		return u.client.Search(ctx, query, page)
	})
}

func (u *movieUsecase) Popular(ctx context.Context, page int) ([]entity.Movie, entity.MoviePage, error) {
	if err := u.ready(); err != nil {
		return nil, entity.MoviePage{}, err
	}

	key := "movies:popular:" + strconv.Itoa(page)
	return u.cachedPage(ctx, key, func(ctx context.Context) ([]entity.Movie, entity.MoviePage, error) {
		return u.client.Popular(ctx, page)
	})
}

func (u *movieUsecase) Trending(ctx context.Context, timeWindow string, page int) ([]entity.Movie, entity.MoviePage, error) {
	if timeWindow != "day" && timeWindow != "week" {
		timeWindow = "week"
	}
	if err := u.ready(); err != nil {
		return nil, entity.MoviePage{}, err
	}

	key := "movies:trending:" + timeWindow + ":" + strconv.Itoa(page)
	return u.cachedPage(ctx, key, func(ctx context.Context) ([]entity.Movie, entity.MoviePage, error) {
		return u.client.Trending(ctx, timeWindow, page)
	})
}

func (u *movieUsecase) Genres(ctx context.Context) ([]entity.Genre, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}

	const key = "movies:genres"
	if raw, ok := u.cache.Get(ctx, key); ok {
		var genres []entity.Genre
		if err := json.Unmarshal(raw, &genres); err == nil {
			return genres, nil
		}
	}

	genres, err := u.client.Genres(ctx)
	if err != nil {
		return nil, translateMovieErr(err)
	}

	if raw, err := json.Marshal(genres); err == nil {
		u.cache.Set(ctx, key, raw, u.cacheTTL)
	}
	return genres, nil
}

func (u *movieUsecase) Details(ctx context.Context, movieId string) (entity.MovieDetails, error) {
	if err := u.ready(); err != nil {
		return entity.MovieDetails{}, err
	}

	key := "movies:details:" + movieId
	if raw, ok := u.cache.Get(ctx, key); ok {
		var details entity.MovieDetails
		if err := json.Unmarshal(raw, &details); err == nil {
			return details, nil
		}
	}

	details, err := u.client.Details(ctx, movieId)
	if err != nil {
		return entity.MovieDetails{}, translateMovieErr(err)
	}

	if raw, err := json.Marshal(details); err == nil {
		u.cache.Set(ctx, key, raw, u.cacheTTL)
	}
	return details, nil
}
