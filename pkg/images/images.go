package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"anoa.com/hrpayroll/pkg/storage"
)

// Bounds for the two upload kinds.
const (
	ProfileMaxWidth  = 300
	ProfileMaxHeight = 300
	ServiceMaxWidth  = 1200
)

// Meta describes a stored image after normalization.
type Meta struct {
	Size   int64
	Width  int
	Height int
	Format string
}

// NormalizeProfile downscales a stored profile image to fit within
// 300x300 and returns the refreshed metadata.
func NormalizeProfile(fs storage.FileStorage, path string) (*Meta, error) {
	return normalize(fs, path, ProfileMaxWidth, ProfileMaxHeight)
}

// NormalizeService downscales a stored service image to at most 1200px
// wide, preserving aspect ratio.
func NormalizeService(fs storage.FileStorage, path string) (*Meta, error) {
	return normalize(fs, path, ServiceMaxWidth, 0)
}

func normalize(fs storage.FileStorage, path string, maxW, maxH int) (*Meta, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, err := imaging.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	switch {
	case maxH > 0 && (bounds.Dx() > maxW || bounds.Dy() > maxH):
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	case maxH == 0 && bounds.Dx() > maxW:
		img = imaging.Resize(img, maxW, 0, imaging.Lanczos)
	}

	if format == imaging.JPEG {
		img = flatten(img)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	if _, err := fs.Save(&buf, filepath.Dir(path), filepath.Base(path)); err != nil {
		return nil, err
	}

	return readMeta(fs, path)
}

// flatten draws the image over a white background, discarding any alpha
// channel before a JPEG encode.
func flatten(img image.Image) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Over)
	return dst
}

func formatFor(path string) (imaging.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, fmt.Errorf("unsupported image format %q: %w", ext, err)
	}
	return format, nil
}

func readMeta(fs storage.FileStorage, path string) (*Meta, error) {
	size, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image config: %w", err)
	}

	return &Meta{
		Size:   size,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}
