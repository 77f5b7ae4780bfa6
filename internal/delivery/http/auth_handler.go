package http

import (
	"net/http"
	"time"

	"cinelog/internal/apperror"
	"cinelog/internal/entity"
	"cinelog/internal/usecase"
)

type AuthHandler struct {
	authUc     usecase.AuthUsecase
	production bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthHandler(authUc usecase.AuthUsecase, production bool, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authUc:     authUc,
		production: production,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, pair entity.TokenPair) {
	h.setCookie(w, "accessToken", pair.AccessToken, h.accessTTL)
	h.setCookie(w, "refreshToken", pair.RefreshToken, h.refreshTTL)
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	h.setCookie(w, "accessToken", "", -time.Second)
	h.setCookie(w, "refreshToken", "", -time.Second)
}

// Method Post /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req entity.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.authUc.Signup(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setAuthCookies(w, resp.Tokens)
	writeJSON(w, http.StatusCreated, resp)
}

// Method Post /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.authUc.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setAuthCookies(w, resp.Tokens)
	writeJSON(w, http.StatusOK, resp)
}

// Method Post /api/auth/logout
//
// Logout only clears cookies; there is no server-side revocation, so tokens
// already handed out stay valid until they expire. The route sits behind
// RequireAuth, so a caller with no valid access token cannot log out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Method Post /api/auth/refresh
//
// The refresh token is read from its cookie only, never from a header.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("refreshToken")
	if err != nil || c.Value == "" {
		writeError(w, apperror.Unauthorized("NO_REFRESH_TOKEN", "Refresh token required"))
		return
	}

	pair, err := h.authUc.Refresh(c.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, map[string]any{"tokens": pair})
}

// Method Get /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	user, err := h.authUc.CurrentUser(r.Context(), identity.UserId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
