package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinelog/internal/entity"
	"cinelog/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity() entity.Identity {
	return entity.Identity{UserId: "u1", Email: "ada@example.com", Username: "ada_l"}
}

// identityEcho writes the identity found in the request context, or an empty
// one for anonymous requests.
func identityEcho(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	writeJSON(w, http.StatusOK, identity)
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func decodeIdentity(t *testing.T, rec *httptest.ResponseRecorder) entity.Identity {
	t.Helper()
	var identity entity.Identity
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&identity))
	return identity
}

func TestRequireAuth_MissingToken(t *testing.T) {
	t.Parallel()

	m := NewAuthMiddleware(token.NewManager("a-secret", "r-secret", 15*time.Minute, time.Hour))
	handler := m.RequireAuth(http.HandlerFunc(identityEcho))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, rec))
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	// Access tokens issued already expired.
	tokens := token.NewManager("a-secret", "r-secret", -time.Minute, time.Hour)
	pair, err := tokens.IssuePair(testIdentity())
	require.NoError(t, err)

	m := NewAuthMiddleware(tokens)
	handler := m.RequireAuth(http.HandlerFunc(identityEcho))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_EXPIRED", decodeErrorCode(t, rec))
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	t.Parallel()

	m := NewAuthMiddleware(token.NewManager("a-secret", "r-secret", 15*time.Minute, time.Hour))
	handler := m.RequireAuth(http.HandlerFunc(identityEcho))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeErrorCode(t, rec))
}

func TestRequireAuth_RefreshTokenRejectedAsAccess(t *testing.T) {
	t.Parallel()

	tokens := token.NewManager("a-secret", "r-secret", 15*time.Minute, time.Hour)
	pair, err := tokens.IssuePair(testIdentity())
	require.NoError(t, err)

	m := NewAuthMiddleware(tokens)
	handler := m.RequireAuth(http.HandlerFunc(identityEcho))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeErrorCode(t, rec))
}

func TestRequireAuth_BearerToken(t *testing.T) {
	t.Parallel()

	tokens := token.NewManager("a-secret", "r-secret", 15*time.Minute, time.Hour)
	pair, err := tokens.IssuePair(testIdentity())
	require.NoError(t, err)

	m := NewAuthMiddleware(tokens)
	handler := m.RequireAuth(http.HandlerFunc(identityEcho))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", decodeIdentity(t, rec).UserId)
}

func TestRequireAuth_CookiePreferredOverHeader(t *testing.T) {
	t.Parallel()

	tokens := token.NewManager("a-secret", "r-secret", 15*time.Minute, time.Hour)
	pair, err := tokens.IssuePair(testIdentity())
	require.NoError(t, err)

	m := NewAuthMiddleware(tokens)
	handler := m.RequireAuth(http.HandlerFunc(identityEcho))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: pair.AccessToken})
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", decodeIdentity(t, rec).UserId)
}

func TestOptionalAuth_NeverRejects(t *testing.T) {
	t.Parallel()

	tokens := token.NewManager("a-secret", "r-secret", 15*time.Minute, time.Hour)
	m := NewAuthMiddleware(tokens)
	handler := m.OptionalAuth(http.HandlerFunc(identityEcho))

	// No token: anonymous.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeIdentity(t, rec).UserId)

	// Garbage token: still anonymous, still 200.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeIdentity(t, rec).UserId)

	// Valid token: identity attached.
	pair, err := tokens.IssuePair(testIdentity())
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: pair.AccessToken})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", decodeIdentity(t, rec).UserId)
}
