package mocks

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/kamal-hamza/shot/internal/core/domain"
)

// --- MockImageSource ---

type MockImageSource struct {
	mu    sync.Mutex
	img   image.Image
	err   error
	reads int
}

// NewMockImageSource returns a source that yields img
func NewMockImageSource(img image.Image) *MockImageSource {
	return &MockImageSource{img: img}
}

func (m *MockImageSource) Read(ctx context.Context) (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	return m.img, nil
}

func (m *MockImageSource) Describe() string {
	return "mock image"
}

func (m *MockImageSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockImageSource) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// --- MockRawImageSource ---

type MockRawImageSource struct {
	mu       sync.Mutex
	raw      domain.RawImage
	rawReads int
	reads    int
}

// NewMockRawImageSource returns a source that yields raw pixels
func NewMockRawImageSource(raw domain.RawImage) *MockRawImageSource {
	return &MockRawImageSource{raw: raw}
}

func (m *MockRawImageSource) ReadRaw(ctx context.Context) (domain.RawImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawReads++
	return m.raw, nil
}

func (m *MockRawImageSource) Read(ctx context.Context) (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return m.raw.Image()
}

func (m *MockRawImageSource) Describe() string {
	return "mock raw image"
}

// Reads returns how many times Read and ReadRaw were called
func (m *MockRawImageSource) Reads() (read, readRaw int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads, m.rawReads
}

// --- MockUploader ---

type MockUploader struct {
	mu        sync.Mutex
	uploads   []domain.UploadRequest
	verifies  []domain.Credentials
	response  *domain.Response
	uploadErr error
	verifyErr error
}

func NewMockUploader() *MockUploader {
	return &MockUploader{
		response: &domain.Response{Success: true, Errors: []domain.APIError{}},
	}
}

func (m *MockUploader) Upload(ctx context.Context, creds domain.Credentials, req domain.UploadRequest) (*domain.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, req)
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return m.response, nil
}

func (m *MockUploader) VerifyToken(ctx context.Context, creds domain.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifies = append(m.verifies, creds)
	return m.verifyErr
}

func (m *MockUploader) SetResponse(resp *domain.Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = resp
}

func (m *MockUploader) SetUploadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadErr = err
}

func (m *MockUploader) SetVerifyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifyErr = err
}

func (m *MockUploader) Uploads() []domain.UploadRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	uploads := make([]domain.UploadRequest, len(m.uploads))
	copy(uploads, m.uploads)
	return uploads
}

func (m *MockUploader) VerifyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.verifies)
}

// --- MockCredentialStore ---

type MockCredentialStore struct {
	mu        sync.Mutex
	saved     []domain.Credentials
	shouldErr bool
}

func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{}
}

func (m *MockCredentialStore) SaveCredentials(ctx context.Context, creds domain.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldErr {
		return fmt.Errorf("mock save failed")
	}
	m.saved = append(m.saved, creds)
	return nil
}

func (m *MockCredentialStore) Location() string {
	return "/fake/config.yaml"
}

func (m *MockCredentialStore) SetShouldFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldErr = fail
}

func (m *MockCredentialStore) Saved() []domain.Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := make([]domain.Credentials, len(m.saved))
	copy(saved, m.saved)
	return saved
}
