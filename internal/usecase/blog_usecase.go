package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cinelog/internal/apperror"
	"cinelog/internal/entity"
	"cinelog/internal/repository"
)

type BlogUsecase interface {
	Create(ctx context.Context, authorId string, req entity.CreateBlogRequest) (entity.Blog, error)
	List(ctx context.Context, page, limit int) ([]entity.BlogSummary, entity.Pagination, error)
	Get(ctx context.Context, blogId, viewerId string) (entity.Blog, error)
	Update(ctx context.Context, blogId, callerId string, req entity.UpdateBlogRequest) (entity.Blog, error)
	Delete(ctx context.Context, blogId, callerId string) error
	Drafts(ctx context.Context, authorId string) ([]entity.BlogSummary, error)
	IncrementView(ctx context.Context, blogId, viewerId string) error
	Save(ctx context.Context, blogId, userId string) error
	Unsave(ctx context.Context, blogId, userId string) error
	Saved(ctx context.Context, userId string, page, limit int) ([]entity.BlogSummary, entity.Pagination, error)
}

type blogUsecase struct {
	blogRepo        repository.BlogRepository
	savedRepo       repository.SavedBlogRepository
	interactionRepo repository.InteractionRepository
}

func NewBlogUsecase(
	blogRepo repository.BlogRepository,
	savedRepo repository.SavedBlogRepository,
	interactionRepo repository.InteractionRepository,
) BlogUsecase {
	return &blogUsecase{
		blogRepo:        blogRepo,
		savedRepo:       savedRepo,
		interactionRepo: interactionRepo,
	}
}

func validateBlogFields(title, content, excerpt, status string) []apperror.Violation {
	var violations []apperror.Violation
	if title == "" || len(title) > 200 {
		violations = append(violations, apperror.Violation{Field: "title", Message: "Title must be 1-200 characters"})
	}
	if content == "" {
		violations = append(violations, apperror.Violation{Field: "content", Message: "Content is required"})
	}
	if excerpt == "" || len(excerpt) > 500 {
		violations = append(violations, apperror.Violation{Field: "excerpt", Message: "Excerpt must be 1-500 characters"})
	}
	if status != entity.BlogStatusDraft && status != entity.BlogStatusPublished {
		violations = append(violations, apperror.Violation{Field: "status", Message: "Status must be draft or published"})
	}
	return violations
}

func (u *blogUsecase) Create(ctx context.Context, authorId string, req entity.CreateBlogRequest) (entity.Blog, error) {
	if req.Status == "" {
		req.Status = entity.BlogStatusDraft
	}
	if violations := validateBlogFields(req.Title, req.Content, req.Excerpt, req.Status); len(violations) > 0 {
		return entity.Blog{}, apperror.Validation(violations)
	}

	blog := entity.Blog{
		AuthorId:      authorId,
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		CoverImageUrl: req.CoverImageUrl,
		Status:        req.Status,
	}
	if req.Status == entity.BlogStatusPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	blogId, err := u.blogRepo.Create(ctx, blog)
	if err != nil {
		return entity.Blog{}, fmt.Errorf("creating blog: %w", err)
	}

	log.Printf("blog created: %s by %s", blogId, authorId)
	return u.blogRepo.Get(ctx, blogId)
}

func (u *blogUsecase) List(ctx context.Context, page, limit int) ([]entity.BlogSummary, entity.Pagination, error) {
	blogs, total, err := u.blogRepo.ListPublished(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("listing blogs: %w", err)
	}
	return blogs, entity.NewPagination(page, limit, total), nil
}

func (u *blogUsecase) Get(ctx context.Context, blogId, viewerId string) (entity.Blog, error) {
	blog, err := u.blogRepo.Get(ctx, blogId)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return entity.Blog{}, apperror.NotFound("BLOG_NOT_FOUND", "Blog not found")
		}
		return entity.Blog{}, fmt.Errorf("loading blog: %w", err)
	}

	// Drafts are only visible to their author.
	if blog.Status == entity.BlogStatusDraft && blog.AuthorId != viewerId {
		return entity.Blog{}, apperror.Forbidden("You cannot view this draft")
	}

	if viewerId != "" {
		saved, err := u.savedRepo.IsSaved(ctx, viewerId, blogId)
		if err != nil {
			return entity.Blog{}, fmt.Errorf("checking saved: %w", err)
		}
		blog.IsSaved = saved
	}

	return blog, nil
}

func (u *blogUsecase) Update(ctx context.Context, blogId, callerId string, req entity.UpdateBlogRequest) (entity.Blog, error) {
	existing, err := u.blogRepo.Get(ctx, blogId)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return entity.Blog{}, apperror.NotFound("BLOG_NOT_FOUND", "Blog not found")
		}
		return entity.Blog{}, fmt.Errorf("loading blog: %w", err)
	}
	if existing.AuthorId != callerId {
		return entity.Blog{}, apperror.Forbidden("You can only update your own blogs")
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Content != nil {
		existing.Content = *req.Content
	}
	if req.Excerpt != nil {
		existing.Excerpt = *req.Excerpt
	}
	if req.CoverImageUrl != nil {
		existing.CoverImageUrl = req.CoverImageUrl
	}
	if req.Status != nil {
		// Going draft -> published stamps the publication time once.
		if *req.Status == entity.BlogStatusPublished && existing.Status == entity.BlogStatusDraft {
			now := time.Now()
			existing.PublishedAt = &now
		}
		existing.Status = *req.Status
	}

	if violations := validateBlogFields(existing.Title, existing.Content, existing.Excerpt, existing.Status); len(violations) > 0 {
		return entity.Blog{}, apperror.Validation(violations)
	}

	if err := u.blogRepo.Update(ctx, existing); err != nil {
		return entity.Blog{}, fmt.Errorf("updating blog: %w", err)
	}

	log.Printf("blog updated: %s", blogId)
	return u.blogRepo.Get(ctx, blogId)
}

func (u *blogUsecase) Delete(ctx context.Context, blogId, callerId string) error {
	blog, err := u.blogRepo.Get(ctx, blogId)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return apperror.NotFound("BLOG_NOT_FOUND", "Blog not found")
		}
		return fmt.Errorf("loading blog: %w", err)
	}
	if blog.AuthorId != callerId {
		return apperror.Forbidden("You can only delete your own blogs")
	}

	if err := u.blogRepo.Delete(ctx, blogId); err != nil {
		return fmt.Errorf("deleting blog: %w", err)
	}

	log.Printf("blog deleted: %s", blogId)
	return nil
}

func (u *blogUsecase) Drafts(ctx context.Context, authorId string) ([]entity.BlogSummary, error) {
	drafts, err := u.blogRepo.ListDrafts(ctx, authorId)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	return drafts, nil
}

func (u *blogUsecase) IncrementView(ctx context.Context, blogId, viewerId string) error {
	if err := u.blogRepo.IncrementViewCount(ctx, blogId); err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return apperror.NotFound("BLOG_NOT_FOUND", "Blog not found")
		}
		return fmt.Errorf("incrementing views: %w", err)
	}

	if viewerId != "" {
		if err := u.interactionRepo.Record(ctx, viewerId, entity.InteractionBlogView, blogId, "blog"); err != nil {
			log.Printf("recording view interaction: %v", err)
		}
	}
	return nil
}

func (u *blogUsecase) Save(ctx context.Context, blogId, userId string) error {
	if _, err := u.blogRepo.Get(ctx, blogId); err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return apperror.NotFound("BLOG_NOT_FOUND", "Blog not found")
		}
		return fmt.Errorf("loading blog: %w", err)
	}

	if err := u.savedRepo.Save(ctx, userId, blogId); err != nil {
		if errors.Is(err, repository.ErrAlreadySaved) {
			return apperror.Conflict("ALREADY_SAVED", "Blog already saved")
		}
		return fmt.Errorf("saving blog: %w", err)
	}

	if err := u.interactionRepo.Record(ctx, userId, entity.InteractionBlogSave, blogId, "blog"); err != nil {
		log.Printf("recording save interaction: %v", err)
	}
	return nil
}

func (u *blogUsecase) Unsave(ctx context.Context, blogId, userId string) error {
	if err := u.savedRepo.Unsave(ctx, userId, blogId); err != nil {
		if errors.Is(err, repository.ErrNotSaved) {
			return apperror.NotFound("NOT_SAVED", "Blog not saved")
		}
		return fmt.Errorf("unsaving blog: %w", err)
	}
	return nil
}

func (u *blogUsecase) Saved(ctx context.Context, userId string, page, limit int) ([]entity.BlogSummary, entity.Pagination, error) {
	blogs, total, err := u.savedRepo.ListByUser(ctx, userId, limit, (page-1)*limit)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("listing saved blogs: %w", err)
	}
	return blogs, entity.NewPagination(page, limit, total), nil
}
