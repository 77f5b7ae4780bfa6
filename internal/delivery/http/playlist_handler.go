package http

import (
	"net/http"

	"cinelog/internal/entity"
	"cinelog/internal/usecase"

	"github.com/go-chi/chi/v5"
)

type PlaylistHandler struct {
	playlistUc usecase.PlaylistUsecase
}

func NewPlaylistHandler(playlistUc usecase.PlaylistUsecase) *PlaylistHandler {
	return &PlaylistHandler{playlistUc: playlistUc}
}

// Method Post /api/playlists
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var req entity.CreatePlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	playlist, err := h.playlistUc.Create(r.Context(), identity.UserId, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"playlist": playlist})
}

// Method Get /api/playlists
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	playlists, pagination, err := h.playlistUc.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"playlists": playlists, "pagination": pagination})
}

// Method Get /api/playlists/{id}
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistId := chi.URLParam(r, "id")

	playlist, err := h.playlistUc.Get(r.Context(), playlistId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"playlist": playlist})
}

// Method Put /api/playlists/{id}
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	playlistId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	var req entity.UpdatePlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	playlist, err := h.playlistUc.Update(r.Context(), playlistId, identity.UserId, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"playlist": playlist})
}

// Method Delete /api/playlists/{id}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playlistId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	if err := h.playlistUc.Delete(r.Context(), playlistId, identity.UserId); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Playlist deleted"})
}

// Method Post /api/playlists/{id}/movies
func (h *PlaylistHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	playlistId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	var req entity.AddMovieRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	movie, err := h.playlistUc.AddMovie(r.Context(), playlistId, identity.UserId, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"movie": movie})
}

// Method Delete /api/playlists/{id}/movies/{movieId}
func (h *PlaylistHandler) RemoveMovie(w http.ResponseWriter, r *http.Request) {
	playlistId := chi.URLParam(r, "id")
	movieId := chi.URLParam(r, "movieId")
	identity, _ := IdentityFromContext(r.Context())

	if err := h.playlistUc.RemoveMovie(r.Context(), playlistId, movieId, identity.UserId); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Movie removed"})
}

// Method Put /api/playlists/{id}/reorder
func (h *PlaylistHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	playlistId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	var req entity.ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.playlistUc.Reorder(r.Context(), playlistId, identity.UserId, req.MovieIds); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Playlist reordered"})
}
