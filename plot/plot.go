// Package plot renders coefficient matrices as PNG heatmaps.
//
// Time runs left to right, one column of cells per frame; coefficients run
// bottom to top with coefficient 0 on the bottom row. Values are mapped onto
// a diverging blue-white-red palette clipped to [VMin, VMax].
package plot

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/neurlang/gomfcc/mfcc"
)

// Options controls the rendering.
type Options struct {
	CellWidth  int     // pixels per frame
	CellHeight int     // pixels per coefficient
	VMin       float64 // value drawn fully blue
	VMax       float64 // value drawn fully red
}

// DefaultOptions matches the dB range used for MFCC plots: -500 to +100.
func DefaultOptions() Options {
	return Options{
		CellWidth:  4,
		CellHeight: 16,
		VMin:       -500,
		VMax:       100,
	}
}

// Image renders m into an RGBA image. An empty matrix yields a 1x1 image.
func Image(m mfcc.Matrix, opts Options) *image.RGBA {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 1
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 1
	}
	if !(opts.VMax > opts.VMin) {
		opts.VMin, opts.VMax = DefaultOptions().VMin, DefaultOptions().VMax
	}

	frames, ceps := m.Rows(), m.Cols()
	if frames == 0 || ceps == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	width, height := frames*opts.CellWidth, ceps*opts.CellHeight
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for x := 0; x < frames; x++ {
		for y := 0; y < ceps; y++ {
			col := coolwarm((m[x][y] - opts.VMin) / (opts.VMax - opts.VMin))
			// origin at the bottom
			top := (ceps - y - 1) * opts.CellHeight
			left := x * opts.CellWidth
			for py := top; py < top+opts.CellHeight; py++ {
				for px := left; px < left+opts.CellWidth; px++ {
					img.SetRGBA(px, py, col)
				}
			}
		}
	}
	return img
}

// Render writes m to w as a PNG heatmap.
func Render(w io.Writer, m mfcc.Matrix, opts Options) error {
	return png.Encode(w, Image(m, opts))
}

// Save writes m as a PNG heatmap to the file name.
func Save(name string, m mfcc.Matrix, opts Options) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := Render(f, m, opts); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

var (
	coolColor = [3]float64{59, 76, 192}
	midColor  = [3]float64{221, 221, 221}
	warmColor = [3]float64{180, 4, 38}
)

// coolwarm maps t in [0, 1] onto the diverging palette. NaN maps to the
// midpoint and values outside the range are clipped.
func coolwarm(t float64) color.RGBA {
	switch {
	case math.IsNaN(t):
		t = 0.5
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}

	from, to, f := coolColor, midColor, t*2
	if t > 0.5 {
		from, to, f = midColor, warmColor, (t-0.5)*2
	}

	var rgb [3]uint8
	for i := range rgb {
		rgb[i] = uint8(math.Round(from[i] + (to[i]-from[i])*f))
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}
