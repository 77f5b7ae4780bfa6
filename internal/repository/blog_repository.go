package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cinelog/internal/entity"

	"github.com/google/uuid"
)

var ErrBlogNotFound = errors.New("blog not found")

type BlogRepository interface {
	Create(ctx context.Context, blog entity.Blog) (string, error)
	Get(ctx context.Context, blogId string) (entity.Blog, error)
	Update(ctx context.Context, blog entity.Blog) error
	Delete(ctx context.Context, blogId string) error
	ListPublished(ctx context.Context, limit, offset int) ([]entity.BlogSummary, int, error)
	ListByAuthor(ctx context.Context, authorId string, publishedOnly bool, limit, offset int) ([]entity.BlogSummary, int, error)
	ListDrafts(ctx context.Context, authorId string) ([]entity.BlogSummary, error)
	IncrementViewCount(ctx context.Context, blogId string) error
}

type blogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog entity.Blog) (string, error) {
	blog.Id = uuid.New().String()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blogs (id, author_id, title, content, excerpt, cover_image_url, status, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		blog.Id, blog.AuthorId, blog.Title, blog.Content, blog.Excerpt,
		blog.CoverImageUrl, blog.Status, blog.PublishedAt)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}

	return blog.Id, nil
}

func (r *blogRepository) Get(ctx context.Context, blogId string) (entity.Blog, error) {
	var b entity.Blog
	err := r.db.QueryRowContext(ctx,
		`SELECT b.id, b.author_id, b.title, b.content, b.excerpt, b.cover_image_url,
		        b.status, b.view_count, b.published_at, b.created_at, b.updated_at,
		        u.id, u.username, u.display_name, u.avatar_url
		 FROM blogs b JOIN users u ON u.id = b.author_id
		 WHERE b.id = $1`, blogId).
		Scan(&b.Id, &b.AuthorId, &b.Title, &b.Content, &b.Excerpt, &b.CoverImageUrl,
			&b.Status, &b.ViewCount, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt,
			&b.Author.Id, &b.Author.Username, &b.Author.DisplayName, &b.Author.AvatarUrl)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Blog{}, ErrBlogNotFound
		}
		return entity.Blog{}, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *blogRepository) Update(ctx context.Context, blog entity.Blog) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE blogs
		 SET title = $2, content = $3, excerpt = $4, cover_image_url = $5,
		     status = $6, published_at = $7, updated_at = now()
		 WHERE id = $1`,
		blog.Id, blog.Title, blog.Content, blog.Excerpt, blog.CoverImageUrl,
		blog.Status, blog.PublishedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, blogId string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, blogId)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBlogNotFound
	}
	return nil
}

const blogSummaryColumns = `b.id, b.title, b.excerpt, b.cover_image_url, b.status,
	b.view_count, b.published_at, b.created_at, b.updated_at,
	u.id, u.username, u.display_name, u.avatar_url`

func (r *blogRepository) scanSummaries(rows *sql.Rows) ([]entity.BlogSummary, error) {
	defer rows.Close()

	summaries := []entity.BlogSummary{}
	for rows.Next() {
		var s entity.BlogSummary
		if err := rows.Scan(&s.Id, &s.Title, &s.Excerpt, &s.CoverImageUrl, &s.Status,
			&s.ViewCount, &s.PublishedAt, &s.CreatedAt, &s.UpdatedAt,
			&s.Author.Id, &s.Author.Username, &s.Author.DisplayName, &s.Author.AvatarUrl); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *blogRepository) ListPublished(ctx context.Context, limit, offset int) ([]entity.BlogSummary, int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+blogSummaryColumns+`
		 FROM blogs b JOIN users u ON u.id = b.author_id
		 WHERE b.status = 'published'
		 ORDER BY b.published_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	summaries, err := r.scanSummaries(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blogs WHERE status = 'published'`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return summaries, total, nil
}

func (r *blogRepository) ListByAuthor(ctx context.Context, authorId string, publishedOnly bool, limit, offset int) ([]entity.BlogSummary, int, error) {
	statusFilter := ""
	if publishedOnly {
		statusFilter = ` AND b.status = 'published'`
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+blogSummaryColumns+`
		 FROM blogs b JOIN users u ON u.id = b.author_id
		 WHERE b.author_id = $1`+statusFilter+`
		 ORDER BY b.created_at DESC
		 LIMIT $2 OFFSET $3`, authorId, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	summaries, err := r.scanSummaries(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM blogs b WHERE b.author_id = $1` + statusFilter
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, authorId).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return summaries, total, nil
}

func (r *blogRepository) ListDrafts(ctx context.Context, authorId string) ([]entity.BlogSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+blogSummaryColumns+`
		 FROM blogs b JOIN users u ON u.id = b.author_id
		 WHERE b.author_id = $1 AND b.status = 'draft'
		 ORDER BY b.updated_at DESC`, authorId)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.scanSummaries(rows)
}

func (r *blogRepository) IncrementViewCount(ctx context.Context, blogId string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE blogs SET view_count = view_count + 1 WHERE id = $1`, blogId)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBlogNotFound
	}
	return nil
}
