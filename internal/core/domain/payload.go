package domain

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnsupported is returned when pixel data cannot be read as 8-bit RGBA
// of the declared dimensions, or when the geometry cannot be encoded.
var ErrUnsupported = errors.New("unsupported image data")

// RawImage is a decoded raster image as a packed, non-premultiplied
// RGBA8 buffer, the form clipboard data arrives in.
type RawImage struct {
	Width  int
	Height int
	Pix    []byte
}

// Image validates the buffer and wraps it as an *image.NRGBA without copying
func (r RawImage) Image() (*image.NRGBA, error) {
	if r.Width < 0 || r.Height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrUnsupported, r.Width, r.Height)
	}

	// Guard the multiplication before comparing lengths
	const maxSide = 1 << 20
	if r.Width > maxSide || r.Height > maxSide {
		return nil, fmt.Errorf("%w: dimensions %dx%d too large", ErrUnsupported, r.Width, r.Height)
	}

	want := r.Width * r.Height * 4
	if len(r.Pix) != want {
		return nil, fmt.Errorf("%w: %d bytes of pixel data for %dx%d RGBA (want %d)",
			ErrUnsupported, len(r.Pix), r.Width, r.Height, want)
	}

	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}, nil
}

// Payload is a PNG buffer ready for upload
type Payload struct {
	Bytes          []byte
	Width          int
	Height         int
	OriginalWidth  int
	OriginalHeight int
	OriginalSize   int
	Resized        bool
}

// Size returns the encoded length in bytes
func (p *Payload) Size() int {
	return len(p.Bytes)
}

// DefaultFilename names a pasted image after the upload time,
// e.g. 2021-12-20T01:01:01Z.png
func DefaultFilename(now time.Time) string {
	return now.UTC().Format(time.RFC3339) + ".png"
}

// FilenameFromPath uses the file stem with a .png extension, since the
// upload is always re-encoded. Returns "" when the path has no usable stem.
func FilenameFromPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return ""
	}
	return stem + ".png"
}
