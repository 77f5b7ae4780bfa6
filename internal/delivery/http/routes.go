package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MapRoutes wires every endpoint under /api. Fixed paths like /blogs/drafts
// must be registered before the /blogs/{id} wildcard.
func MapRoutes(
	r *chi.Mux,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	blogHandler *BlogHandler,
	playlistHandler *PlaylistHandler,
	movieHandler *MovieHandler,
	authMiddleware *AuthMiddleware,
	store Pinger,
) {
	health := func(w http.ResponseWriter, req *http.Request) {
		if err := store.Ping(req.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
	r.Get("/health", health)
	r.Get("/api/health", health)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})
	})

	r.Route("/api/blogs", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuth)
			r.Get("/", blogHandler.List)
			r.Get("/{id}", blogHandler.Get)
			r.Post("/{id}/view", blogHandler.View)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/", blogHandler.Create)
			r.Get("/drafts", blogHandler.Drafts)
			r.Get("/saved", blogHandler.Saved)
			r.Put("/{id}", blogHandler.Update)
			r.Delete("/{id}", blogHandler.Delete)
			r.Post("/{id}/save", blogHandler.Save)
			r.Delete("/{id}/save", blogHandler.Unsave)
		})
	})

	r.Route("/api/playlists", func(r chi.Router) {
		r.Get("/", playlistHandler.List)
		r.Get("/{id}", playlistHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/", playlistHandler.Create)
			r.Put("/{id}", playlistHandler.Update)
			r.Delete("/{id}", playlistHandler.Delete)
			r.Post("/{id}/movies", playlistHandler.AddMovie)
			r.Put("/{id}/reorder", playlistHandler.Reorder)
			r.Delete("/{id}/movies/{movieId}", playlistHandler.RemoveMovie)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuth)
			r.Get("/{id}", userHandler.Profile)
			r.Get("/{id}/blogs", userHandler.Blogs)
			r.Get("/{id}/playlists", userHandler.Playlists)
			r.Get("/{id}/followers", userHandler.Followers)
			r.Get("/{id}/following", userHandler.Following)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Put("/{id}", userHandler.UpdateProfile)
			r.Post("/{id}/follow", userHandler.Follow)
			r.Delete("/{id}/follow", userHandler.Unfollow)
		})
	})

	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/search", movieHandler.Search)
		r.Get("/popular", movieHandler.Popular)
		r.Get("/trending", movieHandler.Trending)
		r.Get("/genres", movieHandler.Genres)
		r.Get("/{id}", movieHandler.Details)
	})
}
