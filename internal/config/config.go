package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultAuthAPIBaseURL is the FinArchitect authentication backend.
	DefaultAuthAPIBaseURL = "https://finarchitect-s8u2.onrender.com"

	defaultServerAddr    = ":8080"
	defaultLoginPath     = "/login"
	defaultAPITimeout    = 15 * time.Second
	defaultRedirectDelay = 3 * time.Second
	minRedirectDelay     = 2 * time.Second
	maxRedirectDelay     = 3 * time.Second

	// devSessionSecret is only used when APP_ENV is "development" (or unset)
	// and SESSION_SECRET is missing.
	devSessionSecret = "dev-only-session-secret-change-me!"
)

// Provider exposes read access to application configuration. Handlers and
// services depend on this interface so tests can supply their own values.
type Provider interface {
	GetAuthAPIBaseURL() string
	GetAppBaseURL() string
	GetServerAddr() string
	GetSessionSecret() string
	GetAuthAPITimeout() time.Duration
	GetResetRedirectDelay() time.Duration
	GetLoginPath() string
	GetEnv() string
}

// Config holds all configuration for the application.
type Config struct {
	AuthAPIBaseURL     string
	AppBaseURL         string
	ServerAddr         string
	SessionSecret      string
	AuthAPITimeout     time.Duration
	ResetRedirectDelay time.Duration
	LoginPath          string
	Env                string

	// Warnings collects non-fatal problems found while loading. They are
	// reported by the caller once logging is configured.
	Warnings []string
}

// New loads configuration from a .env file (if present) and environment
// variables. It exits the process if the configuration is invalid.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// Load builds a Config from the current environment without touching .env
// files.
func Load() (*Config, error) {
	cfg := &Config{
		AuthAPIBaseURL:     strings.TrimRight(getEnv("AUTH_API_BASE_URL", DefaultAuthAPIBaseURL), "/"),
		AppBaseURL:         strings.TrimRight(os.Getenv("APP_BASE_URL"), "/"),
		ServerAddr:         getEnv("SERVER_ADDR", defaultServerAddr),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		LoginPath:          getEnv("LOGIN_PATH", defaultLoginPath),
		Env:                getEnv("APP_ENV", "development"),
		AuthAPITimeout:     defaultAPITimeout,
		ResetRedirectDelay: defaultRedirectDelay,
	}

	if _, err := url.ParseRequestURI(cfg.AuthAPIBaseURL); err != nil {
		return nil, fmt.Errorf("AUTH_API_BASE_URL %q is not a valid URL: %w", cfg.AuthAPIBaseURL, err)
	}
	if cfg.AppBaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.AppBaseURL); err != nil {
			return nil, fmt.Errorf("APP_BASE_URL %q is not a valid URL: %w", cfg.AppBaseURL, err)
		}
	}

	if raw := os.Getenv("AUTH_API_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("AUTH_API_TIMEOUT %q must be a positive duration", raw)
		}
		cfg.AuthAPITimeout = d
	}

	if raw := os.Getenv("RESET_REDIRECT_DELAY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("RESET_REDIRECT_DELAY %q is not a duration: %w", raw, err)
		}
		cfg.ResetRedirectDelay = clampRedirectDelay(d)
	}

	if !strings.HasPrefix(cfg.LoginPath, "/") {
		cfg.LoginPath = "/" + cfg.LoginPath
	}

	if cfg.SessionSecret == "" {
		if cfg.Env != "development" {
			return nil, fmt.Errorf("SESSION_SECRET is required when APP_ENV=%s", cfg.Env)
		}
		cfg.Warnings = append(cfg.Warnings, "SESSION_SECRET not set, using development secret")
		cfg.SessionSecret = devSessionSecret
	}

	return cfg, nil
}

// clampRedirectDelay keeps the post-reset navigation delay within 2-3s.
func clampRedirectDelay(d time.Duration) time.Duration {
	if d < minRedirectDelay {
		return minRedirectDelay
	}
	if d > maxRedirectDelay {
		return maxRedirectDelay
	}
	return d
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) GetAuthAPIBaseURL() string             { return c.AuthAPIBaseURL }
func (c *Config) GetAppBaseURL() string                 { return c.AppBaseURL }
func (c *Config) GetServerAddr() string                 { return c.ServerAddr }
func (c *Config) GetSessionSecret() string              { return c.SessionSecret }
func (c *Config) GetAuthAPITimeout() time.Duration      { return c.AuthAPITimeout }
func (c *Config) GetResetRedirectDelay() time.Duration  { return c.ResetRedirectDelay }
func (c *Config) GetLoginPath() string                  { return c.LoginPath }
func (c *Config) GetEnv() string                        { return c.Env }
