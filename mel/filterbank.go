package mel

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is returned when a filterbank is requested for a
// non-positive sample rate, filter count or FFT size.
var ErrInvalidGeometry = errors.New("mel: invalid filterbank geometry")

// Filterbank holds one triangular filter per row. Every row has
// fftSize/2 + 1 weights, one per non-negative frequency bin.
type Filterbank [][]float64

// NumFilters returns the number of filters.
func (f Filterbank) NumFilters() int {
	return len(f)
}

// NumBins returns the number of spectrum bins each filter spans.
func (f Filterbank) NumBins() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// Bins returns the numFilters+2 filter edges as FFT bin indices. The edges
// are spaced uniformly on the mel scale between 0 Hz and the Nyquist
// frequency and are monotonically non-decreasing.
func Bins(sampleRate, numFilters, fftSize int) ([]int, error) {
	if sampleRate <= 0 || numFilters <= 0 || fftSize <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d, filters %d, fft size %d",
			ErrInvalidGeometry, sampleRate, numFilters, fftSize)
	}

	var halfFFT = fftSize/2 + 1
	var highMel = HzToMel(float64(sampleRate) / 2)
	var points = numFilters + 2

	bins := make([]int, points)
	for i := range bins {
		// same spacing as numpy.linspace, last point pinned to the Nyquist mel
		mel := highMel * float64(i) / float64(points-1)
		if i == points-1 {
			mel = highMel
		}
		hz := MelToHz(mel)
		bin := int(math.Floor(float64(fftSize+1) * hz / float64(sampleRate)))
		if bin < 0 {
			bin = 0
		}
		if bin > halfFFT-1 {
			bin = halfFFT - 1
		}
		bins[i] = bin
	}
	return bins, nil
}

// NewFilterbank builds numFilters triangular filters for a spectrum of
// fftSize/2 + 1 bins sampled at sampleRate.
//
// Filter m rises linearly from 0 at edge m-1 to 1 at edge m and falls back
// towards 0 at edge m+1. When neighbouring edges share a bin the ramp on
// that side has zero width and is skipped; a filter without a falling ramp
// keeps a single sample of weight 1 at its center bin.
func NewFilterbank(sampleRate, numFilters, fftSize int) (Filterbank, error) {
	bins, err := Bins(sampleRate, numFilters, fftSize)
	if err != nil {
		return nil, err
	}

	var halfFFT = fftSize/2 + 1

	backing := make([]float64, numFilters*halfFFT)
	bank := make(Filterbank, numFilters)
	for m := 1; m <= numFilters; m++ {
		filter := backing[(m-1)*halfFFT : m*halfFFT : m*halfFFT]
		left, center, right := bins[m-1], bins[m], bins[m+1]

		if center > left {
			for k := left; k < center && k < halfFFT; k++ {
				filter[k] = float64(k-left) / float64(center-left)
			}
		}
		if right > center {
			for k := center; k < right && k < halfFFT; k++ {
				filter[k] = float64(right-k) / float64(right-center)
			}
		} else if center < halfFFT {
			filter[center] = 1
		}
		bank[m-1] = filter
	}
	return bank, nil
}
