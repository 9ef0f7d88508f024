package infra

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CATALYSTER_API_URL", "")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("CATALYSTER_SESSION_FILE", "/tmp/catalyster-test/session.json")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := "https://catalyster.onrender.com/api/v1"
	if cfg.APIBaseURL != expected {
		t.Fatalf("APIBaseURL mismatch: got %q want %q", cfg.APIBaseURL, expected)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("HTTPTimeout mismatch: got %v want %v", cfg.HTTPTimeout, 30*time.Second)
	}
	if cfg.DemoFallback {
		t.Fatalf("DemoFallback should default to false")
	}
}

func TestLoadConfigTrimsTrailingSlash(t *testing.T) {
	t.Setenv("CATALYSTER_API_URL", "http://localhost:8080/api/v1/")
	t.Setenv("CATALYSTER_SESSION_FILE", "/tmp/catalyster-test/session.json")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api/v1" {
		t.Fatalf("APIBaseURL mismatch: got %q", cfg.APIBaseURL)
	}
}

func TestLoadConfigRejectsInvalidBaseURL(t *testing.T) {
	t.Setenv("CATALYSTER_API_URL", "not-a-url")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for invalid CATALYSTER_API_URL")
	}
}

func TestLoadConfigDefaultSessionFile(t *testing.T) {
	t.Setenv("CATALYSTER_API_URL", "")
	t.Setenv("CATALYSTER_SESSION_FILE", "")
	t.Setenv("HOME", "/tmp/catalyster-home")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := filepath.Join("/tmp/catalyster-home", ".catalyster", "session.json")
	if cfg.SessionFile != expected {
		t.Fatalf("SessionFile mismatch: got %q want %q", cfg.SessionFile, expected)
	}
}
