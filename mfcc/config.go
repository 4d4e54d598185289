package mfcc

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/dsputils"
)

// ErrInvalidConfig is returned by Validate and Extract when a Config cannot
// describe a valid extraction.
var ErrInvalidConfig = errors.New("mfcc: invalid configuration")

// Config holds the extraction parameters. It is a plain value: copy it and
// change fields to derive a new configuration.
type Config struct {
	SampleRate  int     `json:"sample_rate" yaml:"sample_rate" mapstructure:"sample_rate"`
	NumCeps     int     `json:"num_ceps" yaml:"num_ceps" mapstructure:"num_ceps"`
	NumFilters  int     `json:"num_filters" yaml:"num_filters" mapstructure:"num_filters"`
	FFTSize     int     `json:"fft_size" yaml:"fft_size" mapstructure:"fft_size"`
	FrameSize   float64 `json:"frame_size" yaml:"frame_size" mapstructure:"frame_size"`       // seconds
	FrameStride float64 `json:"frame_stride" yaml:"frame_stride" mapstructure:"frame_stride"` // seconds
	PreEmphasis float64 `json:"pre_emphasis" yaml:"pre_emphasis" mapstructure:"pre_emphasis"`
}

// DefaultConfig returns the standard 13 coefficient, 26 filter setup with
// 25 ms frames every 10 ms.
func DefaultConfig(sampleRate int) Config {
	return Config{
		SampleRate:  sampleRate,
		NumCeps:     13,
		NumFilters:  26,
		FFTSize:     512,
		FrameSize:   0.025,
		FrameStride: 0.01,
		PreEmphasis: 0.97,
	}
}

// WithSampleRate returns a copy of c using the given sample rate.
func (c Config) WithSampleRate(sampleRate int) Config {
	c.SampleRate = sampleRate
	return c
}

// FrameLength is the number of samples in one frame.
func (c Config) FrameLength() int {
	return secondsToSamples(c.FrameSize, c.SampleRate)
}

// FrameStep is the number of samples between the starts of two frames.
func (c Config) FrameStep() int {
	return secondsToSamples(c.FrameStride, c.SampleRate)
}

// NumBins is the number of non-negative frequency bins of the spectrum.
func (c Config) NumBins() int {
	return c.FFTSize/2 + 1
}

// Validate reports the first problem found in c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, c.SampleRate)
	case c.NumCeps <= 0:
		return fmt.Errorf("%w: num_ceps %d must be positive", ErrInvalidConfig, c.NumCeps)
	case c.NumFilters <= 0:
		return fmt.Errorf("%w: num_filters %d must be positive", ErrInvalidConfig, c.NumFilters)
	case c.NumCeps > c.NumFilters:
		return fmt.Errorf("%w: num_ceps %d exceeds num_filters %d", ErrInvalidConfig, c.NumCeps, c.NumFilters)
	case c.FFTSize <= 0:
		return fmt.Errorf("%w: fft_size %d must be positive", ErrInvalidConfig, c.FFTSize)
	case !(c.FrameSize > 0) || math.IsInf(c.FrameSize, 0):
		return fmt.Errorf("%w: frame_size %v must be positive", ErrInvalidConfig, c.FrameSize)
	case !(c.FrameStride > 0) || math.IsInf(c.FrameStride, 0):
		return fmt.Errorf("%w: frame_stride %v must be positive", ErrInvalidConfig, c.FrameStride)
	case !(c.PreEmphasis > 0) || math.IsInf(c.PreEmphasis, 0):
		return fmt.Errorf("%w: pre_emphasis %v must be positive", ErrInvalidConfig, c.PreEmphasis)
	}

	frameLength, frameStep := c.FrameLength(), c.FrameStep()
	switch {
	case frameLength < 1:
		return fmt.Errorf("%w: frame_size %v is shorter than one sample at %d Hz", ErrInvalidConfig, c.FrameSize, c.SampleRate)
	case frameStep < 1:
		return fmt.Errorf("%w: frame_stride %v is shorter than one sample at %d Hz", ErrInvalidConfig, c.FrameStride, c.SampleRate)
	case c.FFTSize < frameLength:
		// a shorter transform would silently drop the tail of every frame
		return fmt.Errorf("%w: fft_size %d is smaller than the frame length of %d samples", ErrInvalidConfig, c.FFTSize, frameLength)
	}
	return nil
}

// secondsToSamples floors seconds*sampleRate, tolerating binary rounding
// just below an integer.
func secondsToSamples(seconds float64, sampleRate int) int {
	return int(math.Floor(seconds*float64(sampleRate) + 1e-9))
}

// FitFFT returns a copy of c whose FFT size is raised to the next power of
// two that holds a whole frame. Configurations that already fit are returned
// unchanged.
func (c Config) FitFFT() Config {
	frameLength := c.FrameLength()
	if frameLength > c.FFTSize {
		c.FFTSize = dsputils.NextPowerOf2(frameLength)
	}
	return c
}
