package config

import (
	"errors"
	"os"
	"time"
)

// Config holds all runtime settings for the cinelog server. It is built once
// at startup from the process environment and passed to the components that
// need it; nothing reads env vars after that.
type Config struct {
	Port        string
	Production  bool
	CORSOrigin  string
	DatabaseDSN string

	// Token signing. Access and refresh tokens use distinct secrets so one
	// class can never be presented as the other.
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	// Movie metadata provider.
	TMDBAPIKey    string
	MovieCacheTTL time.Duration

	// Optional Redis cache. Empty means the in-memory cache is used.
	RedisAddr string
}

// Load builds a Config from the environment. DATABASE_URL and JWT secrets are
// required; everything else has a development default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Production:      os.Getenv("APP_ENV") == "production",
		CORSOrigin:      getEnv("FRONTEND_URL", "http://localhost:3000"),
		DatabaseDSN:     os.Getenv("DATABASE_URL"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		TMDBAPIKey:      os.Getenv("TMDB_API_KEY"),
		MovieCacheTTL:   10 * time.Minute,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
	}

	cfg.AccessTokenSecret = os.Getenv("JWT_ACCESS_SECRET")
	cfg.RefreshTokenSecret = os.Getenv("JWT_REFRESH_SECRET")

	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, errors.New("access and refresh token secrets must differ")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
