package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/kamal-hamza/shot/internal/core/domain"
	"github.com/kamal-hamza/shot/internal/core/ports"
	"github.com/kamal-hamza/shot/pkg/config"
)

// ConfigRepository stores credentials in the YAML config file
type ConfigRepository struct {
	path string
	mu   sync.Mutex
}

// NewConfigRepository creates a credential store backed by the config file at path
func NewConfigRepository(path string) *ConfigRepository {
	return &ConfigRepository{path: path}
}

// Ensure it implements the interface
var _ ports.CredentialStore = (*ConfigRepository)(nil)

// SaveCredentials replaces the auth pair and keeps every other setting
func (r *ConfigRepository) SaveCredentials(ctx context.Context, creds domain.Credentials) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, err := config.Load(r.path)
	if err != nil {
		return fmt.Errorf("failed to load existing config: %w", err)
	}

	cfg.Auth = config.Auth{
		AccountID: creds.AccountID,
		Token:     creds.Token,
	}

	return cfg.Save(r.path)
}

// Location returns the config file path
func (r *ConfigRepository) Location() string {
	return r.path
}
