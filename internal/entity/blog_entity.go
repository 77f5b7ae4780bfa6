package entity

import "time"

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

type Blog struct {
	Id            string        `json:"id"`
	AuthorId      string        `json:"authorId"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Excerpt       string        `json:"excerpt"`
	CoverImageUrl *string       `json:"coverImageUrl"`
	Status        string        `json:"status"`
	ViewCount     int           `json:"viewCount"`
	PublishedAt   *time.Time    `json:"publishedAt"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Author        AuthorSummary `json:"author"`
	IsSaved       bool          `json:"isSaved"`
}

// BlogSummary is the list-view shape: no content body.
type BlogSummary struct {
	Id            string        `json:"id"`
	Title         string        `json:"title"`
	Excerpt       string        `json:"excerpt"`
	CoverImageUrl *string       `json:"coverImageUrl"`
	Status        string        `json:"status,omitempty"`
	ViewCount     int           `json:"viewCount"`
	PublishedAt   *time.Time    `json:"publishedAt"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	SavedAt       *time.Time    `json:"savedAt,omitempty"`
	Author        AuthorSummary `json:"author"`
}

type CreateBlogRequest struct {
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	Excerpt       string  `json:"excerpt"`
	CoverImageUrl *string `json:"coverImageUrl"`
	Status        string  `json:"status"`
}

// UpdateBlogRequest is a partial update; nil fields are left untouched.
type UpdateBlogRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	CoverImageUrl *string `json:"coverImageUrl"`
	Status        *string `json:"status"`
}
