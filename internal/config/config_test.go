package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
jwt:
  secret: test-secret
storage:
  type: minio
database:
  driver: sqlite
  path: test.db
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.JWT.ExpireTime != 24*time.Hour {
		t.Fatalf("jwt expiry = %v, want 24h", cfg.JWT.ExpireTime)
	}
	if cfg.Server.Port != "3001" {
		t.Fatalf("port = %q, want default 3001", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "test.db" {
		t.Fatalf("database = %+v", cfg.Database)
	}
	if cfg.Game.CatalogCacheSize != 256 || cfg.Game.GamificationCacheTTL() != 5*time.Minute {
		t.Fatalf("game = %+v", cfg.Game)
	}
	if cfg.RateLimit.Window() != time.Minute {
		t.Fatalf("rate limit window = %v", cfg.RateLimit.Window())
	}
}

func TestLoadConfigRejectsWeakReleaseSecret(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
storage:
  type: minio
`)
	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected error for short release secret")
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	dir := writeConfig(t, `
storage:
  type: minio
`)
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected error for missing secret")
	}
}
