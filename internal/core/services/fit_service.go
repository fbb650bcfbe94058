package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/kamal-hamza/shot/internal/core/domain"
)

// ErrEncodeIO is returned when the PNG encoder cannot write its output
var ErrEncodeIO = errors.New("failed to write encoded image")

// Limits are the provider-imposed size constraints in bytes
type Limits struct {
	// HardLimit is the largest payload the API accepts
	HardLimit int
	// Target is the size the single resize pass aims for. It sits well
	// below HardLimit so the estimate has headroom.
	Target int
}

// DefaultLimits matches Cloudflare Images: 10 MB hard limit, 3 MB target
func DefaultLimits() Limits {
	return Limits{HardLimit: 10_000_000, Target: 3_000_000}
}

// gaussian approximates a Gaussian filter with sigma 0.5
var gaussian = &draw.Kernel{
	Support: 3,
	At: func(t float64) float64 {
		const sigma = 0.5
		return math.Exp(-t*t/(2*sigma*sigma)) / (math.Sqrt(2*math.Pi) * sigma)
	},
}

var pngEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// FitService encodes images to PNG and shrinks them to fit Limits
type FitService struct {
	limits Limits
	logger *zap.Logger
}

// NewFitService creates a new fit service
func NewFitService(limits Limits, logger *zap.Logger) (*FitService, error) {
	if limits.HardLimit <= 0 || limits.Target <= 0 {
		return nil, fmt.Errorf("invalid size limits: hard=%d target=%d", limits.HardLimit, limits.Target)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FitService{limits: limits, logger: logger}, nil
}

// Fit encodes img losslessly to PNG. When the encoding exceeds the hard
// limit the image is resized once, by ShrinkRatio, and re-encoded. The
// result of that single pass is returned as-is, even if it is still
// above the hard limit.
func (s *FitService) Fit(img image.Image) (*domain.Payload, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	encoded, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}

	payload := &domain.Payload{
		Bytes:          encoded,
		Width:          w,
		Height:         h,
		OriginalWidth:  w,
		OriginalHeight: h,
		OriginalSize:   len(encoded),
	}

	if len(encoded) <= s.limits.HardLimit {
		return payload, nil
	}

	ratio := ShrinkRatio(len(encoded), s.limits.Target)
	newW, newH := ScaledDimensions(w, h, ratio)

	s.logger.Info("image too big, resizing",
		zap.String("size", humanize.Bytes(uint64(len(encoded)))),
		zap.Float64("ratio", ratio),
		zap.Int("width", newW),
		zap.Int("height", newH))

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	gaussian.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	encoded, err = EncodePNG(dst)
	if err != nil {
		return nil, err
	}

	if len(encoded) > s.limits.HardLimit {
		s.logger.Warn("resized image still exceeds hard limit",
			zap.Int("size", len(encoded)),
			zap.Int("limit", s.limits.HardLimit))
	}

	payload.Bytes = encoded
	payload.Width = newW
	payload.Height = newH
	payload.Resized = true
	return payload, nil
}

// FitRaw validates a raw RGBA8 buffer and fits it
func (s *FitService) FitRaw(raw domain.RawImage) (*domain.Payload, error) {
	img, err := raw.Image()
	if err != nil {
		return nil, err
	}
	return s.Fit(img)
}

// ShrinkRatio is the linear shrink factor sqrt(encoded/target). PNG size
// scales roughly with pixel count, so dividing both sides by this ratio
// lands near target.
func ShrinkRatio(encodedLen, target int) float64 {
	return math.Sqrt(float64(encodedLen) / float64(target))
}

// ScaledDimensions divides each axis by ratio and truncates independently.
// Integer truncation per axis means the aspect ratio is not preserved
// exactly. Axes that would collapse to zero are clamped to one pixel.
func ScaledDimensions(w, h int, ratio float64) (int, int) {
	newW := int(math.Floor(float64(w) / ratio))
	newH := int(math.Floor(float64(h) / ratio))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH
}

// EncodePNG encodes img into a new buffer
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG encodes img to w. Geometry the encoder rejects is reported as
// domain.ErrUnsupported; any other failure as ErrEncodeIO.
func WritePNG(w io.Writer, img image.Image) error {
	if err := pngEncoder.Encode(w, img); err != nil {
		var formatErr png.FormatError
		if errors.As(err, &formatErr) {
			return fmt.Errorf("%w: %w", domain.ErrUnsupported, err)
		}
		return fmt.Errorf("%w: %w", ErrEncodeIO, err)
	}
	return nil
}
