package ports

import (
	"context"
	"image"

	"github.com/kamal-hamza/shot/internal/core/domain"
)

// ImageSource defines the port for obtaining the image to upload
type ImageSource interface {
	// Read returns the decoded image. Implementations release any handle
	// they acquire before returning.
	Read(ctx context.Context) (image.Image, error)

	// Describe names the source for user-facing messages
	Describe() string
}

// RawImageSource is an ImageSource that can also hand out raw RGBA8 pixels,
// letting the fitter validate the buffer before encoding
type RawImageSource interface {
	ImageSource
	ReadRaw(ctx context.Context) (domain.RawImage, error)
}

// Uploader defines the port for the remote image storage API
type Uploader interface {
	// Upload sends one image. An application-level failure
	// (success=false) is returned as a Response, not as an error.
	Upload(ctx context.Context, creds domain.Credentials, req domain.UploadRequest) (*domain.Response, error)

	// VerifyToken checks the credentials against the API
	VerifyToken(ctx context.Context, creds domain.Credentials) error
}

// CredentialStore defines the port for persisting credentials
type CredentialStore interface {
	// SaveCredentials writes the auth pair to persistent configuration
	SaveCredentials(ctx context.Context, creds domain.Credentials) error

	// Location describes where credentials are stored
	Location() string
}
