package infra

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config represents client configuration loaded from environment variables.
type Config struct {
	AppEnv       string
	APIBaseURL   string
	HTTPTimeout  time.Duration
	SessionFile  string
	CallbackPort string
	DemoFallback bool
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		APIBaseURL:   getEnv("CATALYSTER_API_URL", "https://catalyster.onrender.com/api/v1"),
		HTTPTimeout:  time.Second * time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)),
		SessionFile:  os.Getenv("CATALYSTER_SESSION_FILE"),
		CallbackPort: getEnv("CALLBACK_PORT", "8974"),
		DemoFallback: getEnvBool("CATALYSTER_DEMO_FALLBACK", false),
	}

	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("CATALYSTER_API_URL is not a valid URL: %q", cfg.APIBaseURL)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory for session file: %w", err)
		}
		cfg.SessionFile = filepath.Join(home, ".catalyster", "session.json")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
