package token

import (
	"errors"
	"time"

	"cinelog/internal/entity"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

type Claims struct {
	UserId   string `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager mints and verifies the two token classes. Access and refresh
// tokens are signed with distinct secrets so a refresh token can never be
// presented as an access token, and vice versa. Tokens are self-contained:
// validity is signature plus expiry, nothing is stored server-side.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssuePair generates a fresh access/refresh token pair for the identity.
func (m *Manager) IssuePair(identity entity.Identity) (entity.TokenPair, error) {
	access, err := m.sign(identity, m.accessSecret, m.accessTTL)
	if err != nil {
		return entity.TokenPair{}, err
	}
	refresh, err := m.sign(identity, m.refreshSecret, m.refreshTTL)
	if err != nil {
		return entity.TokenPair{}, err
	}
	return entity.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates an access token and returns the embedded identity.
// Returns ErrExpiredToken past the expiry instant, ErrInvalidToken for a bad
// signature or malformed payload.
func (m *Manager) VerifyAccess(tokenString string) (entity.Identity, error) {
	return m.verify(tokenString, m.accessSecret)
}

// VerifyRefresh is the same contract as VerifyAccess against the refresh
// signing context.
func (m *Manager) VerifyRefresh(tokenString string) (entity.Identity, error) {
	return m.verify(tokenString, m.refreshSecret)
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

func (m *Manager) sign(identity entity.Identity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserId:   identity.UserId,
		Email:    identity.Email,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (m *Manager) verify(tokenString string, secret []byte) (entity.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return entity.Identity{}, ErrExpiredToken
		}
		return entity.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return entity.Identity{}, ErrInvalidToken
	}

	return entity.Identity{
		UserId:   claims.UserId,
		Email:    claims.Email,
		Username: claims.Username,
	}, nil
}
