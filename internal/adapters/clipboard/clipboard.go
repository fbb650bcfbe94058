package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"golang.design/x/clipboard"
	"golang.org/x/image/draw"

	"github.com/kamal-hamza/shot/internal/core/domain"
	"github.com/kamal-hamza/shot/internal/core/ports"
)

// ErrNoImage is returned when the clipboard holds no image data
var ErrNoImage = errors.New("no image data in clipboard")

var (
	initOnce sync.Once
	initErr  error
)

// systemRead initializes the platform clipboard once and reads PNG bytes
func systemRead() ([]byte, error) {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to access clipboard: %w", initErr)
	}
	return clipboard.Read(clipboard.FmtImage), nil
}

// Source reads the current clipboard image
type Source struct {
	read func() ([]byte, error)
}

// NewSource creates a source backed by the system clipboard
func NewSource() *Source {
	return &Source{read: systemRead}
}

// Describe names the source
func (s *Source) Describe() string {
	return "clipboard image"
}

// Ensure it implements the interface
var _ ports.RawImageSource = (*Source)(nil)

// ReadRaw returns the clipboard image as RGBA8 pixels
func (s *Source) ReadRaw(ctx context.Context) (domain.RawImage, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawImage{}, err
	}

	data, err := s.read()
	if err != nil {
		return domain.RawImage{}, err
	}
	if len(data) == 0 {
		return domain.RawImage{}, ErrNoImage
	}

	return DecodeRaw(data)
}

// Read returns the clipboard image as an *image.NRGBA
func (s *Source) Read(ctx context.Context) (image.Image, error) {
	raw, err := s.ReadRaw(ctx)
	if err != nil {
		return nil, err
	}
	return raw.Image()
}

// DecodeRaw converts the PNG bytes the platform clipboard hands out into
// raw non-premultiplied RGBA8 pixels.
func DecodeRaw(data []byte) (domain.RawImage, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.RawImage{}, fmt.Errorf("failed to decode clipboard image: %w", err)
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	return domain.RawImage{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    dst.Pix,
	}, nil
}
