package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg := Load()

	if len(cfg.Sources) != 4 {
		t.Fatalf("expected 4 default sources, got %d", len(cfg.Sources))
	}
	if cfg.Dispatch.BatchSize != 10 {
		t.Fatalf("expected default batch size 10, got %d", cfg.Dispatch.BatchSize)
	}
	if cfg.Dispatch.PacingMillis != 1100 {
		t.Fatalf("expected default pacing 1100ms, got %d", cfg.Dispatch.PacingMillis)
	}
	if cfg.Ingest.MaxPerSource != 20 {
		t.Fatalf("expected default per-source cap 20, got %d", cfg.Ingest.MaxPerSource)
	}
	if cfg.Retention.Days != 30 {
		t.Fatalf("expected default retention 30 days, got %d", cfg.Retention.Days)
	}

	byName := map[string]SourceConfig{}
	for _, s := range cfg.Sources {
		byName[s.Name] = s
	}
	if byName["anthropic.com"].Category != "Claude" {
		t.Fatalf("expected anthropic.com pinned to Claude, got %q", byName["anthropic.com"].Category)
	}
	if byName["blog.google"].FallbackURL == "" {
		t.Fatal("expected blog.google to carry an html fallback url")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(databaseDSNEnv, "postgres://env/override")
	t.Setenv(telegramTokenEnv, "env-token")
	t.Setenv(telegramChatIDEnv, "env-chat")

	cfg := Load()

	if cfg.Database.DSN != "postgres://env/override" {
		t.Fatalf("expected env DSN, got %q", cfg.Database.DSN)
	}
	if cfg.Telegram.BotToken != "env-token" || cfg.Telegram.ChatID != "env-chat" {
		t.Fatalf("expected env telegram credentials, got %+v", cfg.Telegram)
	}
}

func TestLoadMergesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
dispatch:
  batchSize: 5
sources:
  - name: only.example
    kind: feed
    url: https://only.example/feed
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Dispatch.BatchSize != 5 {
		t.Fatalf("expected file override batch size 5, got %d", cfg.Dispatch.BatchSize)
	}
	// Untouched fields keep their defaults.
	if cfg.Dispatch.PacingMillis != 1100 {
		t.Fatalf("expected default pacing preserved, got %d", cfg.Dispatch.PacingMillis)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Name != "only.example" {
		t.Fatalf("expected file-defined source list, got %+v", cfg.Sources)
	}
}
