package web

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/evcraddock/sentiboard/internal/auth"
)

// Config holds server configuration.
type Config struct {
	BackendURL    string        // analysis service origin
	DevMode       bool          // text logs at debug level
	SecureCookies bool          // mark the session cookie HTTPS-only; set when served behind TLS
	SessionTTL    time.Duration // browser session lifetime
	UploadTimeout time.Duration // per-upload backend timeout
	Background    bool          // stream the particle background
	BackgroundFPS int
}

// Defaults.
const (
	DefaultBackendURL    = "http://127.0.0.1:5000"
	DefaultSessionTTL    = auth.DefaultSessionTTL
	DefaultUploadTimeout = 60 * time.Second
	DefaultBackgroundFPS = 30
)

// ConfigFromEnv creates a Config from environment variables.
func ConfigFromEnv() Config {
	return Config{
		BackendURL:    envOrDefault("SB_BACKEND_URL", DefaultBackendURL),
		DevMode:       os.Getenv("SB_DEV_MODE") == "true",
		SecureCookies: envBool("SB_SECURE_COOKIES", false),
		SessionTTL:    envDuration("SB_SESSION_TTL", DefaultSessionTTL),
		UploadTimeout: envDuration("SB_UPLOAD_TIMEOUT", DefaultUploadTimeout),
		Background:    envBool("SB_BACKGROUND", true),
		BackgroundFPS: envInt("SB_BACKGROUND_FPS", DefaultBackgroundFPS),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration", "key", key, "value", v)
		return fallback
	}
	return d
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring invalid boolean", "key", key, "value", v)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid integer", "key", key, "value", v)
		return fallback
	}
	return n
}
