package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrFileNotLoaded is returned when a file decodes to no samples or has
	// no usable sample rate.
	ErrFileNotLoaded = errors.New("audio: file not loaded")

	// ErrUnsupportedFormat is returned for file names whose extension is
	// neither WAV nor FLAC.
	ErrUnsupportedFormat = errors.New("audio: unsupported format")
)

// Waveform is a mono signal sampled at SampleRate Hz.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the length of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

// Format names a supported container.
type Format string

const (
	FormatWav  Format = "wav"
	FormatFlac Format = "flac"
)

// FormatOf picks the container from the extension of name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav", ".wave":
		return FormatWav, nil
	case ".flac":
		return FormatFlac, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Decode reads a waveform from r, choosing the decoder from the extension
// of name.
func Decode(name string, r io.Reader) (Waveform, error) {
	format, err := FormatOf(name)
	if err != nil {
		return Waveform{}, err
	}
	switch format {
	case FormatFlac:
		return DecodeFlac(r)
	default:
		return DecodeWav(r)
	}
}

// Load decodes the WAV or FLAC file at path.
func Load(path string) (Waveform, error) {
	if _, err := FormatOf(path); err != nil {
		return Waveform{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Waveform{}, err
	}
	defer file.Close()

	return Decode(path, file)
}

// LoadWav decodes the WAV file at path.
func LoadWav(path string) (Waveform, error) {
	file, err := os.Open(path)
	if err != nil {
		return Waveform{}, err
	}
	defer file.Close()

	return DecodeWav(file)
}

// LoadFlac decodes the FLAC file at path.
func LoadFlac(path string) (Waveform, error) {
	file, err := os.Open(path)
	if err != nil {
		return Waveform{}, err
	}
	defer file.Close()

	return DecodeFlac(file)
}

func checkLoaded(w Waveform) (Waveform, error) {
	if len(w.Samples) == 0 || w.SampleRate <= 0 {
		return Waveform{}, ErrFileNotLoaded
	}
	return w, nil
}
