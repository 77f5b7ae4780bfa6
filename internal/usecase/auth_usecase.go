package usecase

import (
	"context"
	"errors"
	"fmt"

	"cinelog/internal/apperror"
	"cinelog/internal/entity"
	"cinelog/internal/repository"
	"cinelog/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately expensive to resist offline brute force.
const bcryptCost = 10

type AuthUsecase interface {
	Signup(ctx context.Context, req entity.SignupRequest) (entity.AuthResponse, error)
	Login(ctx context.Context, req entity.LoginRequest) (entity.AuthResponse, error)
	Refresh(refreshToken string) (entity.TokenPair, error)
	CurrentUser(ctx context.Context, userId string) (entity.User, error)
}

type authUsecase struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

func NewAuthUsecase(userRepo repository.UserRepository, tokens *token.Manager) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (u *authUsecase) Signup(ctx context.Context, req entity.SignupRequest) (entity.AuthResponse, error) {
	if violations := validateSignup(req); len(violations) > 0 {
		return entity.AuthResponse{}, apperror.Validation(violations)
	}

	// Pre-checks give friendly errors in the common case; the unique
	// constraints in the store remain the final arbiter under races.
	emailExists, err := u.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return entity.AuthResponse{}, fmt.Errorf("checking email: %w", err)
	}
	if emailExists {
		return entity.AuthResponse{}, apperror.Conflict("EMAIL_EXISTS", "Email already registered")
	}

	usernameExists, err := u.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return entity.AuthResponse{}, fmt.Errorf("checking username: %w", err)
	}
	if usernameExists {
		return entity.AuthResponse{}, apperror.Conflict("USERNAME_EXISTS", "Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return entity.AuthResponse{}, fmt.Errorf("hashing password: %w", err)
	}

	user := entity.User{
		Email:        req.Email,
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
	}

	userId, err := u.userRepo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return entity.AuthResponse{}, apperror.Conflict("EMAIL_EXISTS", "Email already registered")
		case errors.Is(err, repository.ErrDuplicateUsername):
			return entity.AuthResponse{}, apperror.Conflict("USERNAME_EXISTS", "Username already taken")
		}
		return entity.AuthResponse{}, fmt.Errorf("creating user: %w", err)
	}

	created, err := u.userRepo.Get(ctx, userId)
	if err != nil {
		return entity.AuthResponse{}, fmt.Errorf("loading created user: %w", err)
	}

	pair, err := u.tokens.IssuePair(entity.Identity{
		UserId:   created.Id,
		Email:    created.Email,
		Username: created.Username,
	})
	if err != nil {
		return entity.AuthResponse{}, fmt.Errorf("issuing tokens: %w", err)
	}

	return entity.AuthResponse{User: created, Tokens: pair}, nil
}

func (u *authUsecase) Login(ctx context.Context, req entity.LoginRequest) (entity.AuthResponse, error) {
	if violations := validateLogin(req); len(violations) > 0 {
		return entity.AuthResponse{}, apperror.Validation(violations)
	}

	// Unknown email and wrong password both produce the identical error so
	// responses cannot be used to enumerate accounts.
	invalidCredentials := apperror.Unauthorized("INVALID_CREDENTIALS", "Invalid email or password")

	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return entity.AuthResponse{}, invalidCredentials
		}
		return entity.AuthResponse{}, fmt.Errorf("loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return entity.AuthResponse{}, invalidCredentials
	}

	pair, err := u.tokens.IssuePair(entity.Identity{
		UserId:   user.Id,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return entity.AuthResponse{}, fmt.Errorf("issuing tokens: %w", err)
	}

	return entity.AuthResponse{User: user, Tokens: pair}, nil
}

// Refresh re-issues a pair from the claim embedded in the refresh token. The
// credential store is intentionally not consulted: a user deleted after
// issuance stays valid until the refresh token expires.
func (u *authUsecase) Refresh(refreshToken string) (entity.TokenPair, error) {
	identity, err := u.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrExpiredToken) {
			return entity.TokenPair{}, apperror.Unauthorized("REFRESH_TOKEN_EXPIRED", "Refresh token has expired")
		}
		return entity.TokenPair{}, apperror.Unauthorized("REFRESH_FAILED", "Failed to refresh token")
	}

	pair, err := u.tokens.IssuePair(identity)
	if err != nil {
		return entity.TokenPair{}, fmt.Errorf("issuing tokens: %w", err)
	}
	return pair, nil
}

func (u *authUsecase) CurrentUser(ctx context.Context, userId string) (entity.User, error) {
	user, err := u.userRepo.Get(ctx, userId)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return entity.User{}, apperror.NotFound("USER_NOT_FOUND", "User not found")
		}
		return entity.User{}, fmt.Errorf("loading user: %w", err)
	}
	return user, nil
}
