package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T) (*chi.Mux, *fakeAuthUsecase) {
	t.Helper()

	uc := newFakeAuthUsecase(t)
	router := chi.NewRouter()
	MapRoutes(router,
		NewAuthHandler(uc, false, 15*time.Minute, time.Hour),
		NewUserHandler(nil),
		NewBlogHandler(nil),
		NewPlaylistHandler(nil),
		NewMovieHandler(nil),
		NewAuthMiddleware(uc.tokens),
		okPinger{},
	)
	return router, uc
}

func TestLogoutRoute_RequiresAuthentication(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, rec))
}

func TestLogoutRoute_AuthenticatedClearsCookies(t *testing.T) {
	t.Parallel()

	router, uc := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: uc.pair().AccessToken})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(rec, "accessToken")
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.Negative(t, access.MaxAge)
}

func TestHealthRoutes(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	for _, path := range []string{"/health", "/api/health"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
