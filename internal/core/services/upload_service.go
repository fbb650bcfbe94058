package services

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/kamal-hamza/shot/internal/core/domain"
	"github.com/kamal-hamza/shot/internal/core/ports"
	"github.com/kamal-hamza/shot/pkg/metadata"
)

// UploadService reads, fits and uploads a single image
type UploadService struct {
	fitter   *FitService
	uploader ports.Uploader
	logger   *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(fitter *FitService, uploader ports.Uploader, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{
		fitter:   fitter,
		uploader: uploader,
		logger:   logger,
	}
}

// PrepareRequest describes the image to prepare
type PrepareRequest struct {
	Source            ports.ImageSource
	Filename          string
	Metadata          metadata.Metadata
	RequireSignedURLs bool
}

// Prepared is a fitted image ready to send
type Prepared struct {
	Payload *domain.Payload
	Request domain.UploadRequest
}

// SizeLabel formats the payload size for display
func (p *Prepared) SizeLabel() string {
	return humanize.Bytes(uint64(p.Payload.Size()))
}

// Prepare reads the source and fits it under the size limit. It performs
// no network I/O, so --dry-run stops after this step.
func (s *UploadService) Prepare(ctx context.Context, req PrepareRequest) (*Prepared, error) {
	if req.Source == nil {
		return nil, fmt.Errorf("no image source")
	}
	if req.Filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}

	payload, err := s.readAndFit(ctx, req.Source)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("image prepared",
		zap.String("filename", req.Filename),
		zap.Int("width", payload.Width),
		zap.Int("height", payload.Height),
		zap.Int("bytes", payload.Size()),
		zap.Bool("resized", payload.Resized))

	md := metadata.Metadata{}
	md.Merge(req.Metadata)

	return &Prepared{
		Payload: payload,
		Request: domain.UploadRequest{
			Filename:          req.Filename,
			Bytes:             payload.Bytes,
			RequireSignedURLs: req.RequireSignedURLs,
			Metadata:          md,
		},
	}, nil
}

// readAndFit prefers raw pixels when the source offers them
func (s *UploadService) readAndFit(ctx context.Context, source ports.ImageSource) (*domain.Payload, error) {
	var payload *domain.Payload

	if rawSource, ok := source.(ports.RawImageSource); ok {
		raw, err := rawSource.ReadRaw(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source.Describe(), err)
		}
		payload, err = s.fitter.FitRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		return payload, nil
	}

	img, err := source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source.Describe(), err)
	}
	payload, err = s.fitter.Fit(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return payload, nil
}

// Send uploads a prepared image. A response with Success=false is returned
// without error; the caller reports its Errors.
func (s *UploadService) Send(ctx context.Context, creds domain.Credentials, prepared *Prepared) (*domain.Response, error) {
	resp, err := s.uploader.Upload(ctx, creds, prepared.Request)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	if !resp.Success {
		s.logger.Debug("API reported failure", zap.Int("errors", len(resp.Errors)))
	}
	return resp, nil
}
