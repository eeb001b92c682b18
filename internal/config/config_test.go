package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Quiz.Source != SourceAPI || cfg.Scoreboard.Interval != "2s" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "9090"
  publicUrl: https://quiz.example.com
backend:
  url: http://backend:3000
quiz:
  source: postgres
  snapshot: finals
redis:
  addr: localhost:6379
  key: quizhost:test
log:
  level: debug
  development: true
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Server.PublicURL != "https://quiz.example.com" {
		t.Fatalf("server section not applied: %+v", cfg.Server)
	}
	if cfg.Quiz.Source != SourcePostgres || cfg.Quiz.Snapshot != "finals" {
		t.Fatalf("quiz section not applied: %+v", cfg.Quiz)
	}
	if cfg.Redis.Key != "quizhost:test" || !cfg.Log.Development {
		t.Fatalf("redis/log sections not applied: %+v %+v", cfg.Redis, cfg.Log)
	}
	// Untouched keys keep their defaults.
	if cfg.Backend.Timeout != "5s" {
		t.Fatalf("expected default backend timeout, got %q", cfg.Backend.Timeout)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTTLDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", time.Minute},
		{"30s", 30 * time.Second},
		{"soon", time.Minute},
	}
	for _, tc := range cases {
		if got := TTLDuration(tc.raw, time.Minute); got != tc.want {
			t.Fatalf("TTLDuration(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
