package http

import (
	"net/http"

	"cinelog/internal/entity"
	"cinelog/internal/usecase"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userUc usecase.UserUsecase
}

func NewUserHandler(userUc usecase.UserUsecase) *UserHandler {
	return &UserHandler{userUc: userUc}
}

// Method Get /api/users/{id}
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	profile, err := h.userUc.Profile(r.Context(), userId, identity.UserId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

// Method Put /api/users/{id}
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	var req entity.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.userUc.UpdateProfile(r.Context(), userId, identity.UserId, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Method Get /api/users/{id}/blogs
func (h *UserHandler) Blogs(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())
	page, limit := pageParams(r)

	blogs, pagination, err := h.userUc.Blogs(r.Context(), userId, identity.UserId, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs, "pagination": pagination})
}

// Method Get /api/users/{id}/playlists
func (h *UserHandler) Playlists(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	playlists, err := h.userUc.Playlists(r.Context(), userId, identity.UserId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"playlists": playlists})
}

// Method Get /api/users/{id}/followers
func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "id")
	page, limit := pageParams(r)

	users, pagination, err := h.userUc.Followers(r.Context(), userId, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users, "pagination": pagination})
}

// Method Get /api/users/{id}/following
func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "id")
	page, limit := pageParams(r)

	users, pagination, err := h.userUc.Following(r.Context(), userId, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users, "pagination": pagination})
}

// Method Post /api/users/{id}/follow
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	followeeId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	follow, err := h.userUc.Follow(r.Context(), identity.UserId, followeeId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"follow": follow})
}

// Method Delete /api/users/{id}/follow
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	followeeId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	if err := h.userUc.Unfollow(r.Context(), identity.UserId, followeeId); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Unfollowed"})
}
