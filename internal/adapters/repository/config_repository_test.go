package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kamal-hamza/shot/internal/core/domain"
	"github.com/kamal-hamza/shot/pkg/config"
)

func TestConfigRepository_SaveCredentials(t *testing.T) {
	t.Setenv(config.EnvAccountID, "")
	t.Setenv(config.EnvToken, "")

	path := filepath.Join(t.TempDir(), "shot", "config.yaml")
	repo := NewConfigRepository(path)

	if repo.Location() != path {
		t.Errorf("Location() = %q, want %q", repo.Location(), path)
	}

	creds := domain.Credentials{AccountID: "acc", Token: "tok"}
	if err := repo.SaveCredentials(context.Background(), creds); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if cfg.Auth.AccountID != "acc" || cfg.Auth.Token != "tok" {
		t.Errorf("reloaded auth = %+v", cfg.Auth)
	}
}

func TestConfigRepository_KeepsOtherSettings(t *testing.T) {
	t.Setenv(config.EnvAccountID, "")
	t.Setenv(config.EnvToken, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	existing := config.DefaultConfig()
	existing.HardLimit = 5_000_000
	existing.CopyFormat = "markdown"
	existing.Auth = config.Auth{AccountID: "old", Token: "old"}
	if err := existing.Save(path); err != nil {
		t.Fatalf("failed to seed config: %v", err)
	}

	repo := NewConfigRepository(path)
	if err := repo.SaveCredentials(context.Background(), domain.Credentials{AccountID: "new", Token: "secret"}); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if cfg.HardLimit != 5_000_000 {
		t.Errorf("HardLimit = %d, want 5000000", cfg.HardLimit)
	}
	if cfg.CopyFormat != "markdown" {
		t.Errorf("CopyFormat = %q, want markdown", cfg.CopyFormat)
	}
	if cfg.Auth.AccountID != "new" || cfg.Auth.Token != "secret" {
		t.Errorf("auth = %+v, want new/secret", cfg.Auth)
	}
}
