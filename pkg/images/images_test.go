package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"anoa.com/hrpayroll/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveTestPNG(t *testing.T, fs storage.FileStorage, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path, err := fs.Save(&buf, "test", name)
	require.NoError(t, err)
	return path
}

func TestNormalizeProfileFitsBounds(t *testing.T) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path := saveTestPNG(t, fs, "big.png", 900, 600)

	meta, err := NormalizeProfile(fs, path)
	require.NoError(t, err)

	assert.LessOrEqual(t, meta.Width, ProfileMaxWidth)
	assert.LessOrEqual(t, meta.Height, ProfileMaxHeight)
	// Aspect ratio 3:2 preserved.
	assert.Equal(t, 300, meta.Width)
	assert.Equal(t, 200, meta.Height)
	assert.Equal(t, "png", meta.Format)
	assert.Positive(t, meta.Size)
}

func TestNormalizeProfileKeepsSmallImages(t *testing.T) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path := saveTestPNG(t, fs, "small.png", 120, 80)

	meta, err := NormalizeProfile(fs, path)
	require.NoError(t, err)

	assert.Equal(t, 120, meta.Width)
	assert.Equal(t, 80, meta.Height)
}

func TestNormalizeServiceCapsWidth(t *testing.T) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path := saveTestPNG(t, fs, "banner.png", 2400, 800)

	meta, err := NormalizeService(fs, path)
	require.NoError(t, err)

	assert.Equal(t, ServiceMaxWidth, meta.Width)
	assert.Equal(t, 400, meta.Height)
}

func TestNormalizeJPEGFlattensAlpha(t *testing.T) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	// A transparent PNG stored under a .jpg name forces the JPEG path.
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path, err := fs.Save(&buf, "test", "translucent.jpg")
	require.NoError(t, err)

	meta, err := NormalizeProfile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", meta.Format)
}
