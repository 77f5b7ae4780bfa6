package http

import (
	"net/http"

	"cinelog/internal/usecase"

	"github.com/go-chi/chi/v5"
)

type MovieHandler struct {
	movieUc usecase.MovieUsecase
}

func NewMovieHandler(movieUc usecase.MovieUsecase) *MovieHandler {
	return &MovieHandler{movieUc: movieUc}
}

// Method Get /api/movies/search?q=
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page, _ := pageParams(r)

	movies, moviePage, err := h.movieUc.Search(r.Context(), query, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movies": movies, "pagination": moviePage})
}

// Method Get /api/movies/popular
func (h *MovieHandler) Popular(w http.ResponseWriter, r *http.Request) {
	page, _ := pageParams(r)

	movies, moviePage, err := h.movieUc.Popular(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movies": movies, "pagination": moviePage})
}

// Method Get /api/movies/trending?timeWindow=day|week
func (h *MovieHandler) Trending(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("timeWindow")
	page, _ := pageParams(r)

	movies, moviePage, err := h.movieUc.Trending(r.Context(), window, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movies": movies, "pagination": moviePage})
}

// Method Get /api/movies/genres
func (h *MovieHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.movieUc.Genres(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

// Method Get /api/movies/{id}
func (h *MovieHandler) Details(w http.ResponseWriter, r *http.Request) {
	movieId := chi.URLParam(r, "id")

	details, err := h.movieUc.Details(r.Context(), movieId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movie": details})
}
