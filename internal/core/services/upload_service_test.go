package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/kamal-hamza/shot/internal/core/domain"
	"github.com/kamal-hamza/shot/internal/core/ports/mocks"
	"github.com/kamal-hamza/shot/pkg/metadata"
)

func newTestUploadService(t *testing.T, uploader *mocks.MockUploader) *UploadService {
	t.Helper()
	return NewUploadService(newTestFitter(t, DefaultLimits()), uploader, zaptest.NewLogger(t))
}

func TestUploadService_Prepare_NoNetwork(t *testing.T) {
	uploader := mocks.NewMockUploader()
	source := mocks.NewMockImageSource(solidImage(8, 8))
	svc := newTestUploadService(t, uploader)

	prepared, err := svc.Prepare(context.Background(), PrepareRequest{
		Source:   source,
		Filename: "shot.png",
		Metadata: metadata.Metadata{"alt": "a cat"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if source.Reads() != 1 {
		t.Errorf("expected source to be read once, got %d", source.Reads())
	}
	if len(uploader.Uploads()) != 0 {
		t.Errorf("Prepare must not upload, got %d uploads", len(uploader.Uploads()))
	}

	req := prepared.Request
	if req.Filename != "shot.png" {
		t.Errorf("expected filename 'shot.png', got %q", req.Filename)
	}
	if req.RequireSignedURLs {
		t.Error("expected RequireSignedURLs to default to false")
	}
	if req.Metadata["alt"] != "a cat" {
		t.Errorf("expected metadata to be carried, got %v", req.Metadata)
	}
	if len(req.Bytes) == 0 || len(req.Bytes) != prepared.Payload.Size() {
		t.Errorf("expected request bytes to be the payload, got %d bytes", len(req.Bytes))
	}
	if prepared.SizeLabel() == "" {
		t.Error("expected a size label")
	}
}

func TestUploadService_Prepare_NilMetadataBecomesEmpty(t *testing.T) {
	svc := newTestUploadService(t, mocks.NewMockUploader())

	prepared, err := svc.Prepare(context.Background(), PrepareRequest{
		Source:   mocks.NewMockImageSource(solidImage(2, 2)),
		Filename: "a.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := prepared.Request.Metadata.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "{}" {
		t.Errorf("expected empty metadata object, got %q", got)
	}
}

func TestUploadService_Prepare_SourceError(t *testing.T) {
	source := mocks.NewMockImageSource(nil)
	wantErr := errors.New("clipboard is empty")
	source.SetError(wantErr)

	svc := newTestUploadService(t, mocks.NewMockUploader())
	_, err := svc.Prepare(context.Background(), PrepareRequest{Source: source, Filename: "a.png"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected source error to be wrapped, got %v", err)
	}
}

func TestUploadService_Prepare_EncodeError(t *testing.T) {
	source := mocks.NewMockImageSource(solidImage(0, 5))

	svc := newTestUploadService(t, mocks.NewMockUploader())
	_, err := svc.Prepare(context.Background(), PrepareRequest{Source: source, Filename: "a.png"})
	if !errors.Is(err, domain.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestUploadService_Prepare_Validation(t *testing.T) {
	svc := newTestUploadService(t, mocks.NewMockUploader())

	if _, err := svc.Prepare(context.Background(), PrepareRequest{Filename: "a.png"}); err == nil {
		t.Error("expected error for missing source")
	}

	source := mocks.NewMockImageSource(solidImage(1, 1))
	if _, err := svc.Prepare(context.Background(), PrepareRequest{Source: source}); err == nil {
		t.Error("expected error for empty filename")
	}
	if source.Reads() != 0 {
		t.Error("validation should fail before reading the source")
	}
}

func TestUploadService_Send_ApplicationFailureIsNotError(t *testing.T) {
	uploader := mocks.NewMockUploader()
	uploader.SetResponse(&domain.Response{
		Success: false,
		Errors:  []domain.APIError{{Code: 5403, Message: "Invalid token"}},
	})
	svc := newTestUploadService(t, uploader)

	prepared, err := svc.Prepare(context.Background(), PrepareRequest{
		Source:   mocks.NewMockImageSource(solidImage(4, 4)),
		Filename: "a.png",
	})
	if err != nil {
		t.Fatalf("unexpected prepare error: %v", err)
	}

	resp, err := svc.Send(context.Background(), domain.Credentials{AccountID: "acc", Token: "tok"}, prepared)
	if err != nil {
		t.Fatalf("success=false must not be an error, got %v", err)
	}
	if resp.Success {
		t.Error("expected Success=false")
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Code != 5403 {
		t.Errorf("expected one error with code 5403, got %+v", resp.Errors)
	}
	if len(uploader.Uploads()) != 1 {
		t.Errorf("expected exactly one upload, got %d", len(uploader.Uploads()))
	}
}

func TestUploadService_Send_TransportError(t *testing.T) {
	uploader := mocks.NewMockUploader()
	wantErr := errors.New("connection refused")
	uploader.SetUploadError(wantErr)
	svc := newTestUploadService(t, uploader)

	prepared, err := svc.Prepare(context.Background(), PrepareRequest{
		Source:   mocks.NewMockImageSource(solidImage(4, 4)),
		Filename: "a.png",
	})
	if err != nil {
		t.Fatalf("unexpected prepare error: %v", err)
	}

	_, err = svc.Send(context.Background(), domain.Credentials{}, prepared)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected transport error to be wrapped, got %v", err)
	}
}

func TestUploadService_Prepare_RawSourceUsesRawPixels(t *testing.T) {
	src := solidImage(4, 3)
	source := mocks.NewMockRawImageSource(domain.RawImage{Width: 4, Height: 3, Pix: src.Pix})
	svc := newTestUploadService(t, mocks.NewMockUploader())

	prepared, err := svc.Prepare(context.Background(), PrepareRequest{Source: source, Filename: "raw.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	read, readRaw := source.Reads()
	if readRaw != 1 || read != 0 {
		t.Errorf("expected one ReadRaw and no Read, got ReadRaw=%d Read=%d", readRaw, read)
	}
	if prepared.Payload.Width != 4 || prepared.Payload.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", prepared.Payload.Width, prepared.Payload.Height)
	}
}

func TestUploadService_Prepare_RawSourceMismatchedBuffer(t *testing.T) {
	source := mocks.NewMockRawImageSource(domain.RawImage{Width: 10, Height: 10, Pix: make([]byte, 399)})
	svc := newTestUploadService(t, mocks.NewMockUploader())

	_, err := svc.Prepare(context.Background(), PrepareRequest{Source: source, Filename: "raw.png"})
	if !errors.Is(err, domain.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
