package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"cinelog/internal/apperror"
	"cinelog/internal/entity"
	"cinelog/internal/repository"
)

type UserUsecase interface {
	Profile(ctx context.Context, userId, viewerId string) (entity.Profile, error)
	UpdateProfile(ctx context.Context, userId, callerId string, req entity.UpdateProfileRequest) (entity.User, error)
	Blogs(ctx context.Context, userId, viewerId string, page, limit int) ([]entity.BlogSummary, entity.Pagination, error)
	Playlists(ctx context.Context, userId, viewerId string) ([]entity.Playlist, error)
	Followers(ctx context.Context, userId string, page, limit int) ([]entity.AuthorSummary, entity.Pagination, error)
	Following(ctx context.Context, userId string, page, limit int) ([]entity.AuthorSummary, entity.Pagination, error)
	Follow(ctx context.Context, followerId, followeeId string) (entity.Follow, error)
	Unfollow(ctx context.Context, followerId, followeeId string) error
}

type userUsecase struct {
	userRepo        repository.UserRepository
	blogRepo        repository.BlogRepository
	playlistRepo    repository.PlaylistRepository
	followRepo      repository.FollowRepository
	interactionRepo repository.InteractionRepository
}

func NewUserUsecase(
	userRepo repository.UserRepository,
	blogRepo repository.BlogRepository,
	playlistRepo repository.PlaylistRepository,
	followRepo repository.FollowRepository,
	interactionRepo repository.InteractionRepository,
) UserUsecase {
	return &userUsecase{
		userRepo:        userRepo,
		blogRepo:        blogRepo,
		playlistRepo:    playlistRepo,
		followRepo:      followRepo,
		interactionRepo: interactionRepo,
	}
}

func (u *userUsecase) Profile(ctx context.Context, userId, viewerId string) (entity.Profile, error) {
	user, err := u.userRepo.Get(ctx, userId)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return entity.Profile{}, apperror.NotFound("USER_NOT_FOUND", "User not found")
		}
		return entity.Profile{}, fmt.Errorf("loading user: %w", err)
	}

	counts, err := u.userRepo.Counts(ctx, userId)
	if err != nil {
		return entity.Profile{}, fmt.Errorf("loading counts: %w", err)
	}

	profile := entity.Profile{
		User:           user,
		BlogCount:      counts.Blogs,
		PlaylistCount:  counts.Playlists,
		FollowerCount:  counts.Followers,
		FollowingCount: counts.Following,
	}

	if viewerId != "" && viewerId != userId {
		following, err := u.followRepo.Exists(ctx, viewerId, userId)
		if err != nil {
			return entity.Profile{}, fmt.Errorf("checking follow: %w", err)
		}
		profile.IsFollowing = following
	}

	return profile, nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, userId, callerId string, req entity.UpdateProfileRequest) (entity.User, error) {
	if callerId != userId {
		return entity.User{}, apperror.Forbidden("You can only update your own profile")
	}

	var violations []apperror.Violation
	if req.DisplayName != nil && (*req.DisplayName == "" || utf8.RuneCountInString(*req.DisplayName) > 100) {
		violations = append(violations, apperror.Violation{Field: "displayName", Message: "Display name must be 1-100 characters"})
	}
	if req.Bio != nil && utf8.RuneCountInString(*req.Bio) > 500 {
		violations = append(violations, apperror.Violation{Field: "bio", Message: "Bio must be at most 500 characters"})
	}
	if len(violations) > 0 {
		return entity.User{}, apperror.Validation(violations)
	}

	user, err := u.userRepo.Get(ctx, userId)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return entity.User{}, apperror.NotFound("USER_NOT_FOUND", "User not found")
		}
		return entity.User{}, fmt.Errorf("loading user: %w", err)
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarUrl != nil {
		user.AvatarUrl = req.AvatarUrl
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return entity.User{}, fmt.Errorf("updating user: %w", err)
	}

	return u.userRepo.Get(ctx, userId)
}

func (u *userUsecase) Blogs(ctx context.Context, userId, viewerId string, page, limit int) ([]entity.BlogSummary, entity.Pagination, error) {
	if _, err := u.userRepo.Get(ctx, userId); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, entity.Pagination{}, apperror.NotFound("USER_NOT_FOUND", "User not found")
		}
		return nil, entity.Pagination{}, fmt.Errorf("loading user: %w", err)
	}

	// Drafts are visible only on your own profile.
	publishedOnly := viewerId != userId

	blogs, total, err := u.blogRepo.ListByAuthor(ctx, userId, publishedOnly, limit, (page-1)*limit)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("listing blogs: %w", err)
	}
	return blogs, entity.NewPagination(page, limit, total), nil
}

func (u *userUsecase) Playlists(ctx context.Context, userId, viewerId string) ([]entity.Playlist, error) {
	publicOnly := viewerId != userId
	playlists, err := u.playlistRepo.ListByUser(ctx, userId, publicOnly)
	if err != nil {
		return nil, fmt.Errorf("listing playlists: %w", err)
	}
	return playlists, nil
}

func (u *userUsecase) Followers(ctx context.Context, userId string, page, limit int) ([]entity.AuthorSummary, entity.Pagination, error) {
	users, total, err := u.followRepo.Followers(ctx, userId, limit, (page-1)*limit)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("listing followers: %w", err)
	}
	return users, entity.NewPagination(page, limit, total), nil
}

func (u *userUsecase) Following(ctx context.Context, userId string, page, limit int) ([]entity.AuthorSummary, entity.Pagination, error) {
	users, total, err := u.followRepo.Following(ctx, userId, limit, (page-1)*limit)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("listing following: %w", err)
	}
	return users, entity.NewPagination(page, limit, total), nil
}

func (u *userUsecase) Follow(ctx context.Context, followerId, followeeId string) (entity.Follow, error) {
	if followerId == followeeId {
		return entity.Follow{}, apperror.BadRequest("CANNOT_FOLLOW_SELF", "You cannot follow yourself")
	}

	if _, err := u.userRepo.Get(ctx, followeeId); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return entity.Follow{}, apperror.NotFound("USER_NOT_FOUND", "User not found")
		}
		return entity.Follow{}, fmt.Errorf("loading followee: %w", err)
	}

	follow, err := u.followRepo.Create(ctx, followerId, followeeId)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyFollowing) {
			return entity.Follow{}, apperror.Conflict("ALREADY_FOLLOWING", "You are already following this user")
		}
		return entity.Follow{}, fmt.Errorf("creating follow: %w", err)
	}

	// Interaction tracking is best effort.
	if err := u.interactionRepo.Record(ctx, followerId, entity.InteractionFollow, followeeId, "user"); err != nil {
		log.Printf("recording follow interaction: %v", err)
	}

	return follow, nil
}

func (u *userUsecase) Unfollow(ctx context.Context, followerId, followeeId string) error {
	if err := u.followRepo.Delete(ctx, followerId, followeeId); err != nil {
		if errors.Is(err, repository.ErrNotFollowing) {
			return apperror.NotFound("NOT_FOLLOWING", "You are not following this user")
		}
		return fmt.Errorf("deleting follow: %w", err)
	}
	return nil
}
