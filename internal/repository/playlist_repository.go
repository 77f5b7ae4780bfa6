package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cinelog/internal/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPlaylistNotFound   = errors.New("playlist not found")
	ErrMovieAlreadyAdded  = errors.New("movie already in playlist")
	ErrMovieNotInPlaylist = errors.New("movie not in playlist")
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist entity.Playlist) (string, error)
	Get(ctx context.Context, playlistId string) (entity.Playlist, error)
	Update(ctx context.Context, playlist entity.Playlist) error
	Delete(ctx context.Context, playlistId string) error
	ListPublic(ctx context.Context, limit, offset int) ([]entity.Playlist, int, error)
	ListByUser(ctx context.Context, userId string, publicOnly bool) ([]entity.Playlist, error)
	ListMovies(ctx context.Context, playlistId string) ([]entity.PlaylistMovie, error)
	AddMovie(ctx context.Context, playlistId string, movie entity.PlaylistMovie) (entity.PlaylistMovie, error)
	RemoveMovie(ctx context.Context, playlistId, movieId string) error
	Reorder(ctx context.Context, playlistId string, movieIds []string) error
}

type playlistRepository struct {
	db *sql.DB
}

func NewPlaylistRepository(db *sql.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist entity.Playlist) (string, error) {
	playlist.Id = uuid.New().String()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO playlists (id, user_id, name, description, cover_image_url, is_public)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		playlist.Id, playlist.UserId, playlist.Name, playlist.Description,
		playlist.CoverImageUrl, playlist.IsPublic)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return playlist.Id, nil
}

const playlistColumns = `p.id, p.user_id, p.name, p.description, p.cover_image_url,
	p.is_public, p.created_at, p.updated_at,
	u.id, u.username, u.display_name, u.avatar_url,
	(SELECT COUNT(*) FROM playlist_movies pm WHERE pm.playlist_id = p.id)`

func scanPlaylist(scanner interface{ Scan(...any) error }) (entity.Playlist, error) {
	var p entity.Playlist
	err := scanner.Scan(&p.Id, &p.UserId, &p.Name, &p.Description, &p.CoverImageUrl,
		&p.IsPublic, &p.CreatedAt, &p.UpdatedAt,
		&p.User.Id, &p.User.Username, &p.User.DisplayName, &p.User.AvatarUrl,
		&p.MovieCount)
	return p, err
}

func (r *playlistRepository) Get(ctx context.Context, playlistId string) (entity.Playlist, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playlistColumns+`
		 FROM playlists p JOIN users u ON u.id = p.user_id
		 WHERE p.id = $1`, playlistId)

	p, err := scanPlaylist(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Playlist{}, ErrPlaylistNotFound
		}
		return entity.Playlist{}, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist entity.Playlist) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE playlists
		 SET name = $2, description = $3, cover_image_url = $4, is_public = $5, updated_at = now()
		 WHERE id = $1`,
		playlist.Id, playlist.Name, playlist.Description, playlist.CoverImageUrl, playlist.IsPublic)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, playlistId string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, playlistId)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

func (r *playlistRepository) ListPublic(ctx context.Context, limit, offset int) ([]entity.Playlist, int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playlistColumns+`
		 FROM playlists p JOIN users u ON u.id = p.user_id
		 WHERE p.is_public
		 ORDER BY p.created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	playlists := []entity.Playlist{}
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM playlists WHERE is_public`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return playlists, total, nil
}

func (r *playlistRepository) ListByUser(ctx context.Context, userId string, publicOnly bool) ([]entity.Playlist, error) {
	visibility := ""
	if publicOnly {
		visibility = ` AND p.is_public`
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playlistColumns+`
		 FROM playlists p JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $1`+visibility+`
		 ORDER BY p.created_at DESC`, userId)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	playlists := []entity.Playlist{}
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

func (r *playlistRepository) ListMovies(ctx context.Context, playlistId string) ([]entity.PlaylistMovie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, playlist_id, movie_id, movie_title, movie_poster_url, movie_year, position, added_at
		 FROM playlist_movies
		 WHERE playlist_id = $1
		 ORDER BY position ASC`, playlistId)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	movies := []entity.PlaylistMovie{}
	for rows.Next() {
		var m entity.PlaylistMovie
		if err := rows.Scan(&m.Id, &m.PlaylistId, &m.MovieId, &m.MovieTitle,
			&m.MoviePosterUrl, &m.MovieYear, &m.Position, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// AddMovie appends the movie after the current highest position. The unique
// (playlist_id, movie_id) constraint guards duplicate adds.
func (r *playlistRepository) AddMovie(ctx context.Context, playlistId string, movie entity.PlaylistMovie) (entity.PlaylistMovie, error) {
	movie.Id = uuid.New().String()
	movie.PlaylistId = playlistId

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO playlist_movies (id, playlist_id, movie_id, movie_title, movie_poster_url, movie_year, position)
		 VALUES ($1, $2, $3, $4, $5, $6,
		         (SELECT COALESCE(MAX(position), -1) + 1 FROM playlist_movies WHERE playlist_id = $2))
		 RETURNING position, added_at`,
		movie.Id, playlistId, movie.MovieId, movie.MovieTitle,
		movie.MoviePosterUrl, movie.MovieYear).
		Scan(&movie.Position, &movie.AddedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.PlaylistMovie{}, ErrMovieAlreadyAdded
		}
		return entity.PlaylistMovie{}, fmt.Errorf("db error: %w", err)
	}
	return movie, nil
}

func (r *playlistRepository) RemoveMovie(ctx context.Context, playlistId, movieId string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM playlist_movies WHERE playlist_id = $1 AND movie_id = $2`,
		playlistId, movieId)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotInPlaylist
	}
	return nil
}

func (r *playlistRepository) Reorder(ctx context.Context, playlistId string, movieIds []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer tx.Rollback()

	for i, movieId := range movieIds {
		if _, err := tx.ExecContext(ctx,
			`UPDATE playlist_movies SET position = $3 WHERE playlist_id = $1 AND movie_id = $2`,
			playlistId, movieId, i); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	return tx.Commit()
}
