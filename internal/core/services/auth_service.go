package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kamal-hamza/shot/internal/core/domain"
	"github.com/kamal-hamza/shot/internal/core/ports"
)

// AuthService verifies and stores credentials
type AuthService struct {
	uploader ports.Uploader
	store    ports.CredentialStore
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(uploader ports.Uploader, store ports.CredentialStore, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		uploader: uploader,
		store:    store,
		logger:   logger,
	}
}

// AuthRequest represents a request to configure credentials
type AuthRequest struct {
	Credentials domain.Credentials
	DryRun      bool
}

// AuthResponse reports what Authenticate did
type AuthResponse struct {
	Verified bool
	Saved    bool
	Location string
}

// Authenticate verifies the credentials with the API and saves them.
// A dry run touches neither the network nor the config file.
func (s *AuthService) Authenticate(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	creds := req.Credentials
	if creds.AccountID == "" {
		return nil, fmt.Errorf("account id cannot be empty")
	}
	if creds.Token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	resp := &AuthResponse{Location: s.store.Location()}
	if req.DryRun {
		s.logger.Debug("dry run, skipping verification and save")
		return resp, nil
	}

	if err := s.uploader.VerifyToken(ctx, creds); err != nil {
		return nil, err
	}
	resp.Verified = true

	if err := s.store.SaveCredentials(ctx, creds); err != nil {
		return nil, fmt.Errorf("failed to save credentials: %w", err)
	}
	resp.Saved = true

	return resp, nil
}
