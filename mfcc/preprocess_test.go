package mfcc

import (
	"math"
	"testing"

	"github.com/mjibson/go-dsp/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreEmphasis(t *testing.T) {
	out := PreEmphasis([]float64{1, 2, 3, 4}, 0.97)
	require.Len(t, out, 4)
	assert.Equal(t, 1.0, out[0])
	assert.InDelta(t, 1.03, out[1], 1e-12)
	assert.InDelta(t, 1.06, out[2], 1e-12)
	assert.InDelta(t, 1.09, out[3], 1e-12)

	assert.Empty(t, PreEmphasis(nil, 0.97))
}

func TestNumFrames(t *testing.T) {
	cases := []struct {
		signal, frame, step, want int
	}{
		{16000, 400, 160, 99},
		{400, 400, 160, 1},
		{401, 400, 160, 2},
		{560, 400, 160, 2},
		{561, 400, 160, 3},
		{0, 400, 160, 4},
		{100, 25, 10, 9},
	}
	for _, tc := range cases {
		got := NumFrames(tc.signal, tc.frame, tc.step)
		assert.Equal(t, tc.want, got, "signal=%d frame=%d step=%d", tc.signal, tc.frame, tc.step)
	}
}

func TestFrame(t *testing.T) {
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = float64(i + 1)
	}

	frames := Frame(samples, 25, 10)
	require.Equal(t, 9, frames.Rows())
	require.Equal(t, 25, frames.Cols())

	assert.Equal(t, 11.0, frames[1][0])
	assert.Equal(t, 35.0, frames[1][24])

	// the last frame starts at 80 and runs off the end of the signal
	last := frames[8]
	assert.Equal(t, 81.0, last[0])
	assert.Equal(t, 100.0, last[19])
	for _, v := range last[20:] {
		assert.Zero(t, v)
	}
}

func TestFrameShortSignal(t *testing.T) {
	frames := Frame([]float64{1, 2, 3}, 8, 4)
	require.Equal(t, NumFrames(3, 8, 4), frames.Rows())
	assert.Equal(t, []float64{1, 2, 3, 0, 0, 0, 0, 0}, []float64(frames[0]))
	for _, frame := range frames[1:] {
		for _, v := range frame {
			assert.Zero(t, v)
		}
	}
}

func TestPreprocessAppliesHamming(t *testing.T) {
	cfg := DefaultConfig(16000)
	cfg.PreEmphasis = 0 // keep the input flat so the frame equals the window

	samples := make([]float64, cfg.FrameLength())
	for i := range samples {
		samples[i] = 1
	}

	frames := Preprocess(samples, cfg)
	require.Equal(t, 1, frames.Rows())

	hamming := window.Hamming(cfg.FrameLength())
	assert.InDeltaSlice(t, hamming, []float64(frames[0]), 1e-12)
	assert.InDelta(t, 0.08, frames[0][0], 1e-9)
	assert.InDelta(t, 1.0, frames[0][cfg.FrameLength()/2], 1e-4)
	assert.False(t, math.IsNaN(frames[0][1]))
}
