package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"cinelog/internal/apperror"
	"cinelog/internal/entity"
	"cinelog/internal/repository"
	"cinelog/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[string]entity.User
	nextId int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]entity.User)}
}

func (f *fakeUserRepo) Get(_ context.Context, userId string) (entity.User, error) {
	user, ok := f.users[userId]
	if !ok {
		return entity.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return entity.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return entity.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepo) Create(ctx context.Context, user entity.User) (string, error) {
	if ok, _ := f.EmailExists(ctx, user.Email); ok {
		return "", repository.ErrDuplicateEmail
	}
	if ok, _ := f.UsernameExists(ctx, user.Username); ok {
		return "", repository.ErrDuplicateUsername
	}
	f.nextId++
	user.Id = "user-" + strconv.Itoa(f.nextId)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.Id] = user
	return user.Id, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user entity.User) error {
	if _, ok := f.users[user.Id]; !ok {
		return repository.ErrUserNotFound
	}
	f.users[user.Id] = user
	return nil
}

func (f *fakeUserRepo) Counts(_ context.Context, _ string) (repository.ProfileCounts, error) {
	return repository.ProfileCounts{}, nil
}

func newTestTokens(t *testing.T) *token.Manager {
	t.Helper()
	return token.NewManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
}

func validSignup() entity.SignupRequest {
	return entity.SignupRequest{
		Email:       "ada@example.com",
		Password:    "Sup3rSecret",
		Username:    "ada_l",
		DisplayName: "Ada Lovelace",
	}
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestSignup_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, newTestTokens(t))

	resp, err := uc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.Id)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.NotEqual(t, resp.Tokens.AccessToken, resp.Tokens.RefreshToken)

	// The stored hash must never be the raw password.
	stored, err := repo.Get(context.Background(), resp.User.Id)
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", stored.PasswordHash)
}

func TestSignup_CollectsEveryViolation(t *testing.T) {
	t.Parallel()

	uc := NewAuthUsecase(newFakeUserRepo(), newTestTokens(t))

	_, err := uc.Signup(context.Background(), entity.SignupRequest{
		Email:       "not-an-email",
		Password:    "short",
		Username:    "a!",
		DisplayName: "",
	})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	fields := map[string]bool{}
	for _, v := range appErr.Details {
		fields[v.Field] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
	assert.True(t, fields["username"])
	assert.True(t, fields["displayName"])
}

func TestSignup_MultibyteDisplayNameCountedInCharacters(t *testing.T) {
	t.Parallel()

	uc := NewAuthUsecase(newFakeUserRepo(), newTestTokens(t))

	// 100 two-byte characters: over 100 bytes but exactly at the
	// character limit, so it must pass.
	req := validSignup()
	req.DisplayName = strings.Repeat("é", 100)
	_, err := uc.Signup(context.Background(), req)
	require.NoError(t, err)

	req = validSignup()
	req.Email = "other@example.com"
	req.Username = "ada_two"
	req.DisplayName = strings.Repeat("é", 101)
	_, err = uc.Signup(context.Background(), req)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "displayName", appErr.Details[0].Field)
}

func TestSignup_DuplicateEmailWinsOverUsername(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, newTestTokens(t))

	_, err := uc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	// Same email and same username: the email conflict is reported first.
	_, err = uc.Signup(context.Background(), validSignup())
	assert.Equal(t, "EMAIL_EXISTS", appErrCode(t, err))
}

// blindPrecheckUserRepo simulates a signup race: the existence pre-checks see
// nothing, but the insert itself hits the unique constraint and returns the
// duplicate sentinel.
type blindPrecheckUserRepo struct {
	*fakeUserRepo
	createErr error
}

func (f *blindPrecheckUserRepo) EmailExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *blindPrecheckUserRepo) UsernameExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *blindPrecheckUserRepo) Create(_ context.Context, _ entity.User) (string, error) {
	return "", f.createErr
}

func TestSignup_ConstraintViolationUnderRace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		createErr error
		wantCode  string
	}{
		{"duplicate email", repository.ErrDuplicateEmail, "EMAIL_EXISTS"},
		{"duplicate username", repository.ErrDuplicateUsername, "USERNAME_EXISTS"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &blindPrecheckUserRepo{fakeUserRepo: newFakeUserRepo(), createErr: tt.createErr}
			uc := NewAuthUsecase(repo, newTestTokens(t))

			_, err := uc.Signup(context.Background(), validSignup())

			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, 409, appErr.Status)
		})
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, newTestTokens(t))

	_, err := uc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	req := validSignup()
	req.Email = "other@example.com"
	_, err = uc.Signup(context.Background(), req)
	assert.Equal(t, "USERNAME_EXISTS", appErrCode(t, err))
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, newTestTokens(t))

	_, err := uc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), entity.LoginRequest{
		Email:    "ada@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada_l", resp.User.Username)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, newTestTokens(t))

	_, err := uc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	_, unknownErr := uc.Login(context.Background(), entity.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Sup3rSecret",
	})
	_, wrongErr := uc.Login(context.Background(), entity.LoginRequest{
		Email:    "ada@example.com",
		Password: "WrongPassw0rd",
	})

	assert.Equal(t, "INVALID_CREDENTIALS", appErrCode(t, unknownErr))
	assert.Equal(t, "INVALID_CREDENTIALS", appErrCode(t, wrongErr))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, newTestTokens(t))

	resp, err := uc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	pair, err := uc.Refresh(resp.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRefresh_Expired(t *testing.T) {
	t.Parallel()

	// Refresh tokens issued already expired.
	expiredTokens := token.NewManager("access-secret", "refresh-secret", 15*time.Minute, -time.Minute)
	pair, err := expiredTokens.IssuePair(entity.Identity{UserId: "u1", Email: "a@b.co", Username: "ab"})
	require.NoError(t, err)

	uc := NewAuthUsecase(newFakeUserRepo(), token.NewManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour))

	_, err = uc.Refresh(pair.RefreshToken)
	assert.Equal(t, "REFRESH_TOKEN_EXPIRED", appErrCode(t, err))
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	t.Parallel()

	tokens := newTestTokens(t)
	pair, err := tokens.IssuePair(entity.Identity{UserId: "u1", Email: "a@b.co", Username: "ab"})
	require.NoError(t, err)

	uc := NewAuthUsecase(newFakeUserRepo(), tokens)

	// An access token presented as a refresh token must not verify.
	_, err = uc.Refresh(pair.AccessToken)
	assert.Equal(t, "REFRESH_FAILED", appErrCode(t, err))
}

func TestRefresh_Garbage(t *testing.T) {
	t.Parallel()

	uc := NewAuthUsecase(newFakeUserRepo(), newTestTokens(t))

	_, err := uc.Refresh("not.a.token")
	assert.Equal(t, "REFRESH_FAILED", appErrCode(t, err))
}

func TestCurrentUser_NotFound(t *testing.T) {
	t.Parallel()

	uc := NewAuthUsecase(newFakeUserRepo(), newTestTokens(t))

	_, err := uc.CurrentUser(context.Background(), "ghost")
	assert.Equal(t, "USER_NOT_FOUND", appErrCode(t, err))
}
