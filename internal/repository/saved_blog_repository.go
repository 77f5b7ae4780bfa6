package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cinelog/internal/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAlreadySaved = errors.New("blog already saved")
	ErrNotSaved     = errors.New("blog not saved")
)

type SavedBlogRepository interface {
	Save(ctx context.Context, userId, blogId string) error
	Unsave(ctx context.Context, userId, blogId string) error
	IsSaved(ctx context.Context, userId, blogId string) (bool, error)
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]entity.BlogSummary, int, error)
}

type savedBlogRepository struct {
	db *sql.DB
}

func NewSavedBlogRepository(db *sql.DB) SavedBlogRepository {
	return &savedBlogRepository{db: db}
}

func (r *savedBlogRepository) Save(ctx context.Context, userId, blogId string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_blogs (user_id, blog_id) VALUES ($1, $2)`, userId, blogId)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadySaved
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *savedBlogRepository) Unsave(ctx context.Context, userId, blogId string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_blogs WHERE user_id = $1 AND blog_id = $2`, userId, blogId)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotSaved
	}
	return nil
}

func (r *savedBlogRepository) IsSaved(ctx context.Context, userId, blogId string) (bool, error) {
	var saved bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM saved_blogs WHERE user_id = $1 AND blog_id = $2)`,
		userId, blogId).Scan(&saved)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return saved, nil
}

func (r *savedBlogRepository) ListByUser(ctx context.Context, userId string, limit, offset int) ([]entity.BlogSummary, int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.title, b.excerpt, b.cover_image_url, b.view_count,
		        b.published_at, b.created_at, sb.saved_at,
		        u.id, u.username, u.display_name, u.avatar_url
		 FROM saved_blogs sb
		 JOIN blogs b ON b.id = sb.blog_id
		 JOIN users u ON u.id = b.author_id
		 WHERE sb.user_id = $1
		 ORDER BY sb.saved_at DESC
		 LIMIT $2 OFFSET $3`, userId, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	summaries := []entity.BlogSummary{}
	for rows.Next() {
		var s entity.BlogSummary
		if err := rows.Scan(&s.Id, &s.Title, &s.Excerpt, &s.CoverImageUrl, &s.ViewCount,
			&s.PublishedAt, &s.CreatedAt, &s.SavedAt,
			&s.Author.Id, &s.Author.Username, &s.Author.DisplayName, &s.Author.AvatarUrl); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_blogs WHERE user_id = $1`, userId).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return summaries, total, nil
}
