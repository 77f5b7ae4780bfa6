package http

import (
	"net/http"

	"cinelog/internal/entity"
	"cinelog/internal/usecase"

	"github.com/go-chi/chi/v5"
)

type BlogHandler struct {
	blogUc usecase.BlogUsecase
}

func NewBlogHandler(blogUc usecase.BlogUsecase) *BlogHandler {
	return &BlogHandler{blogUc: blogUc}
}

// Method Post /api/blogs
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var req entity.CreateBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogUc.Create(r.Context(), identity.UserId, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"blog": blog})
}

// Method Get /api/blogs
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	blogs, pagination, err := h.blogUc.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs, "pagination": pagination})
}

// Method Get /api/blogs/{id}
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	blogId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	blog, err := h.blogUc.Get(r.Context(), blogId, identity.UserId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"blog": blog})
}

// Method Put /api/blogs/{id}
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	blogId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	var req entity.UpdateBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogUc.Update(r.Context(), blogId, identity.UserId, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"blog": blog})
}

// Method Delete /api/blogs/{id}
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	blogId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	if err := h.blogUc.Delete(r.Context(), blogId, identity.UserId); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted"})
}

// Method Get /api/blogs/drafts
func (h *BlogHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	drafts, err := h.blogUc.Drafts(r.Context(), identity.UserId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"blogs": drafts})
}

// Method Post /api/blogs/{id}/view
func (h *BlogHandler) View(w http.ResponseWriter, r *http.Request) {
	blogId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	if err := h.blogUc.IncrementView(r.Context(), blogId, identity.UserId); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "View recorded"})
}

// Method Post /api/blogs/{id}/save
func (h *BlogHandler) Save(w http.ResponseWriter, r *http.Request) {
	blogId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	if err := h.blogUc.Save(r.Context(), blogId, identity.UserId); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Blog saved"})
}

// Method Delete /api/blogs/{id}/save
func (h *BlogHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	blogId := chi.URLParam(r, "id")
	identity, _ := IdentityFromContext(r.Context())

	if err := h.blogUc.Unsave(r.Context(), blogId, identity.UserId); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Blog unsaved"})
}

// Method Get /api/blogs/saved
func (h *BlogHandler) Saved(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	page, limit := pageParams(r)

	blogs, pagination, err := h.blogUc.Saved(r.Context(), identity.UserId, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs, "pagination": pagination})
}
