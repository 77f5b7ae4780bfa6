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
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
)

type FollowRepository interface {
	Create(ctx context.Context, followerId, followeeId string) (entity.Follow, error)
	Delete(ctx context.Context, followerId, followeeId string) error
	Exists(ctx context.Context, followerId, followeeId string) (bool, error)
	Followers(ctx context.Context, userId string, limit, offset int) ([]entity.AuthorSummary, int, error)
	Following(ctx context.Context, userId string, limit, offset int) ([]entity.AuthorSummary, int, error)
}

type followRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerId, followeeId string) (entity.Follow, error) {
	follow := entity.Follow{
		Id:         uuid.New().String(),
		FollowerId: followerId,
		FolloweeId: followeeId,
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO follows (id, follower_id, followee_id)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		follow.Id, followerId, followeeId).Scan(&follow.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.Follow{}, ErrAlreadyFollowing
		}
		return entity.Follow{}, fmt.Errorf("db error: %w", err)
	}
	return follow, nil
}

func (r *followRepository) Delete(ctx context.Context, followerId, followeeId string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerId, followeeId)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerId, followeeId string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerId, followeeId).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *followRepository) listRelated(ctx context.Context, query, countQuery, userId string, limit, offset int) ([]entity.AuthorSummary, int, error) {
	rows, err := r.db.QueryContext(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := []entity.AuthorSummary{}
	for rows.Next() {
		var u entity.AuthorSummary
		if err := rows.Scan(&u.Id, &u.Username, &u.DisplayName, &u.AvatarUrl); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, userId).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return users, total, nil
}

func (r *followRepository) Followers(ctx context.Context, userId string, limit, offset int) ([]entity.AuthorSummary, int, error) {
	return r.listRelated(ctx,
		`SELECT u.id, u.username, u.display_name, u.avatar_url
		 FROM follows f JOIN users u ON u.id = f.follower_id
		 WHERE f.followee_id = $1
		 ORDER BY f.created_at DESC
		 LIMIT $2 OFFSET $3`,
		`SELECT COUNT(*) FROM follows WHERE followee_id = $1`,
		userId, limit, offset)
}

func (r *followRepository) Following(ctx context.Context, userId string, limit, offset int) ([]entity.AuthorSummary, int, error) {
	return r.listRelated(ctx,
		`SELECT u.id, u.username, u.display_name, u.avatar_url
		 FROM follows f JOIN users u ON u.id = f.followee_id
		 WHERE f.follower_id = $1
		 ORDER BY f.created_at DESC
		 LIMIT $2 OFFSET $3`,
		`SELECT COUNT(*) FROM follows WHERE follower_id = $1`,
		userId, limit, offset)
}
