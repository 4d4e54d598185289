package plot

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/gomfcc/mfcc"
)

func TestImageLayout(t *testing.T) {
	m := mfcc.Matrix{
		{-500, 100},
		{-200, -200},
		{0, 1000},
	}
	opts := Options{CellWidth: 2, CellHeight: 3, VMin: -500, VMax: 100}

	img := Image(m, opts)
	require.Equal(t, 6, img.Bounds().Dx())
	require.Equal(t, 6, img.Bounds().Dy())

	blue := color.RGBA{R: 59, G: 76, B: 192, A: 255}
	red := color.RGBA{R: 180, G: 4, B: 38, A: 255}
	mid := color.RGBA{R: 221, G: 221, B: 221, A: 255}

	// coefficient 0 of frame 0 is on the bottom row
	assert.Equal(t, blue, img.RGBAAt(0, 5))
	assert.Equal(t, blue, img.RGBAAt(1, 3))
	// coefficient 1 of frame 0 is on the top row
	assert.Equal(t, red, img.RGBAAt(0, 0))
	// -200 is the midpoint of [-500, 100]
	assert.Equal(t, mid, img.RGBAAt(2, 4))
	// values beyond VMax are clipped
	assert.Equal(t, red, img.RGBAAt(5, 0))
}

func TestImageEmpty(t *testing.T) {
	img := Image(mfcc.Matrix{}, DefaultOptions())
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
}

func TestImageFixesOptions(t *testing.T) {
	img := Image(mfcc.Matrix{{0, 1}}, Options{VMin: 5, VMax: 5})
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestCoolwarm(t *testing.T) {
	assert.Equal(t, coolwarm(0), coolwarm(-3))
	assert.Equal(t, coolwarm(1), coolwarm(42))
	assert.Equal(t, coolwarm(0.5), coolwarm(math.NaN()))
}

func TestRenderPNG(t *testing.T) {
	ceps, err := mfcc.Extract(make([]float64, 1600), mfcc.DefaultConfig(16000))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, ceps, DefaultOptions()))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	opts := DefaultOptions()
	assert.Equal(t, ceps.Rows()*opts.CellWidth, decoded.Bounds().Dx())
	assert.Equal(t, ceps.Cols()*opts.CellHeight, decoded.Bounds().Dy())
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mfcc.png")
	require.NoError(t, Save(path, mfcc.Matrix{{1, 2, 3}}, DefaultOptions()))

	err := Save(filepath.Join(t.TempDir(), "missing", "dir", "x.png"), mfcc.Matrix{{1}}, DefaultOptions())
	assert.Error(t, err)
}
