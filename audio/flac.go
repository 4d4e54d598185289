package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// DecodeFlac reads a FLAC stream, averaging all channels to mono and scaling
// samples by the stream bit depth.
func DecodeFlac(r io.Reader) (Waveform, error) {
	stream, err := flac.New(r)
	if err != nil {
		return Waveform{}, fmt.Errorf("audio: decode flac: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	if info.NChannels == 0 || info.BitsPerSample == 0 {
		return Waveform{}, ErrFileNotLoaded
	}

	var scale = 1.0 / float64(int64(1)<<(info.BitsPerSample-1)) / float64(info.NChannels)

	var out []float64
	if info.NSamples > 0 {
		out = make([]float64, 0, info.NSamples)
	}
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Waveform{}, fmt.Errorf("audio: decode flac: %w", err)
		}

		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			var sum int64
			for _, sub := range frame.Subframes {
				sum += int64(sub.Samples[i])
			}
			out = append(out, float64(sum)*scale)
		}
	}

	return checkLoaded(Waveform{Samples: out, SampleRate: int(info.SampleRate)})
}
