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
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
)

// ProfileCounts aggregates the relationship counters shown on a profile.
type ProfileCounts struct {
	Blogs     int
	Playlists int
	Followers int
	Following int
}

type UserRepository interface {
	Get(ctx context.Context, userId string) (entity.User, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetByUsername(ctx context.Context, username string) (entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user entity.User) (string, error)
	Update(ctx context.Context, user entity.User) error
	Counts(ctx context.Context, userId string) (ProfileCounts, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, username, display_name, password_hash, bio, avatar_url, created_at, updated_at`

func scanUser(row *sql.Row) (entity.User, error) {
	var u entity.User
	err := row.Scan(&u.Id, &u.Email, &u.Username, &u.DisplayName, &u.PasswordHash,
		&u.Bio, &u.AvatarUrl, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, ErrUserNotFound
		}
		return entity.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *userRepository) Get(ctx context.Context, userId string) (entity.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userId)
	return scanUser(row)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Create inserts the user. The unique constraints are the authoritative
// guard against concurrent signups with the same email or username; a
// 23505 from either constraint is translated to the matching sentinel.
func (r *userRepository) Create(ctx context.Context, user entity.User) (string, error) {
	user.Id = uuid.New().String()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, display_name, password_hash, bio, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.Id, user.Email, user.Username, user.DisplayName, user.PasswordHash,
		user.Bio, user.AvatarUrl)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return "", ErrDuplicateEmail
			case "users_username_key":
				return "", ErrDuplicateUsername
			}
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return user.Id, nil
}

func (r *userRepository) Update(ctx context.Context, user entity.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET display_name = $2, bio = $3, avatar_url = $4, updated_at = now()
		 WHERE id = $1`,
		user.Id, user.DisplayName, user.Bio, user.AvatarUrl)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Counts(ctx context.Context, userId string) (ProfileCounts, error) {
	var c ProfileCounts
	err := r.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM blogs WHERE author_id = $1 AND status = 'published'),
			(SELECT COUNT(*) FROM playlists WHERE user_id = $1),
			(SELECT COUNT(*) FROM follows WHERE followee_id = $1),
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1)`,
		userId).Scan(&c.Blogs, &c.Playlists, &c.Followers, &c.Following)
	if err != nil {
		return ProfileCounts{}, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}
