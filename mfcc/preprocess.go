package mfcc

import (
	"math"

	"github.com/mjibson/go-dsp/window"
)

// PreEmphasis applies the first order high-pass filter
// y[i] = x[i] - alpha*x[i-1], keeping the first sample unchanged.
func PreEmphasis(x []float64, alpha float64) []float64 {
	y := make([]float64, len(x))
	if len(x) == 0 {
		return y
	}
	y[0] = x[0]
	for i := 1; i < len(x); i++ {
		y[i] = x[i] - alpha*x[i-1]
	}
	return y
}

// NumFrames returns how many frames of frameLength samples, taken every
// frameStep samples, cover a signal of signalLength samples. It is at least 1.
func NumFrames(signalLength, frameLength, frameStep int) int {
	gap := signalLength - frameLength
	if gap < 0 {
		gap = -gap
	}
	return int(math.Ceil(float64(gap)/float64(frameStep))) + 1
}

// Frame splits x into overlapping frames of frameLength samples starting
// every frameStep samples. The signal is zero-padded at the tail so the last
// frame is complete.
func Frame(x []float64, frameLength, frameStep int) Matrix {
	numFrames := NumFrames(len(x), frameLength, frameStep)
	frames := NewMatrix(numFrames, frameLength)
	for i, frame := range frames {
		start := i * frameStep
		if start < len(x) {
			copy(frame, x[start:])
		}
	}
	return frames
}

// Preprocess turns samples into Hamming windowed frames as described by cfg.
// cfg is expected to be valid.
func Preprocess(samples []float64, cfg Config) Matrix {
	emphasized := PreEmphasis(samples, cfg.PreEmphasis)

	frameLength := cfg.FrameLength()
	frames := Frame(emphasized, frameLength, cfg.FrameStep())

	hamming := window.Hamming(frameLength)
	for _, frame := range frames {
		for i, w := range hamming {
			frame[i] *= w
		}
	}
	return frames
}
