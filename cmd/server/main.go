package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"cinelog/infrastructure/cache"
	"cinelog/infrastructure/db"
	"cinelog/infrastructure/moviedb"
	"cinelog/internal/config"
	httpHandler "cinelog/internal/delivery/http"
	"cinelog/internal/repository"
	"cinelog/internal/usecase"
	"cinelog/pkg/token"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("godotenv: error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	store, err := db.NewPostgresStore(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer store.Close()

	log.Println("Connected to Postgres")

	// Initialize repositories
	userRepo := repository.NewUserRepository(store.DB)
	blogRepo := repository.NewBlogRepository(store.DB)
	savedBlogRepo := repository.NewSavedBlogRepository(store.DB)
	playlistRepo := repository.NewPlaylistRepository(store.DB)
	followRepo := repository.NewFollowRepository(store.DB)
	interactionRepo := repository.NewInteractionRepository(store.DB)

	tokenManager := token.NewManager(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	// Movie metadata cache: Redis when configured, in-memory otherwise.
	var movieCache cache.Cache
	if cfg.RedisAddr != "" {
		log.Printf("Using Redis cache at %s", cfg.RedisAddr)
		movieCache = cache.NewRedisCache(cfg.RedisAddr)
	} else {
		log.Println("Using in-memory cache (single server)")
		memCache := cache.NewMemCache(time.Minute)
		defer memCache.Close()
		movieCache = memCache
	}

	var movieClient *moviedb.Client
	if cfg.TMDBAPIKey != "" {
		movieClient = moviedb.NewClient(cfg.TMDBAPIKey)
	} else {
		log.Println("Warning: TMDB_API_KEY not set, movie endpoints disabled")
	}

	// Initialize use cases
	authUc := usecase.NewAuthUsecase(userRepo, tokenManager)
	userUc := usecase.NewUserUsecase(userRepo, blogRepo, playlistRepo, followRepo, interactionRepo)
	blogUc := usecase.NewBlogUsecase(blogRepo, savedBlogRepo, interactionRepo)
	playlistUc := usecase.NewPlaylistUsecase(playlistRepo, interactionRepo)
	movieUc := usecase.NewMovieUsecase(movieClient, movieCache, cfg.MovieCacheTTL)

	// CORS middleware
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			// Handle preflight requests
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Initialize handlers
	authH := httpHandler.NewAuthHandler(authUc, cfg.Production, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userH := httpHandler.NewUserHandler(userUc)
	blogH := httpHandler.NewBlogHandler(blogUc)
	playlistH := httpHandler.NewPlaylistHandler(playlistUc)
	movieH := httpHandler.NewMovieHandler(movieUc)
	authMiddleware := httpHandler.NewAuthMiddleware(tokenManager)

	// Map routes
	httpHandler.MapRoutes(router, authH, userH, blogH, playlistH, movieH, authMiddleware, store)

	log.Printf("HTTP server is running on :%s", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
