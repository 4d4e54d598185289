package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	gowav "github.com/go-audio/wav"
)

// wavFormatFloat is the WAVE_FORMAT_IEEE_FLOAT format tag.
const wavFormatFloat = 3

// DecodeWav reads a WAV stream holding 8, 16 or 24-bit PCM or 32-bit IEEE
// float samples. Multi-channel input is averaged to mono and integer PCM is
// scaled by 2^(bits-1).
func DecodeWav(r io.Reader) (Waveform, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Waveform{}, fmt.Errorf("audio: decode wav: %w", err)
	}

	header := gowav.NewDecoder(bytes.NewReader(data))
	header.ReadInfo()
	if header.Err() == nil && header.NumChans > 0 && header.WavAudioFormat == wavFormatFloat {
		return decodeFloatWav(header)
	}
	return decodePCMWav(bytes.NewReader(data))
}

func decodePCMWav(r io.Reader) (Waveform, error) {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return Waveform{}, fmt.Errorf("audio: decode wav: %w", err)
	}
	defer stream.Close()

	var scale = pcmScale(format.Precision)

	var out []float64
	if n := stream.Len(); n > 0 {
		out = make([]float64, 0, n)
	}

	var samples = make([][2]float64, 512)
	for {
		n, ok := stream.Stream(samples)
		for _, frame := range samples[:n] {
			if format.NumChannels == 1 {
				out = append(out, frame[0]*scale)
			} else {
				out = append(out, (frame[0]+frame[1])/2*scale)
			}
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return Waveform{}, fmt.Errorf("audio: decode wav: %w", err)
	}

	return checkLoaded(Waveform{Samples: out, SampleRate: int(format.SampleRate)})
}

// pcmScale corrects the beep decoder, which divides signed PCM by 2^bits-1
// instead of 2^(bits-1).
func pcmScale(precision int) float64 {
	switch precision {
	case 2:
		return float64(1<<16-1) / (1 << 15)
	case 3:
		return float64(1<<24-1) / (1 << 23)
	}
	return 1
}

// decodeFloatWav continues d, whose header has been read, through the PCM
// chunk of a 32-bit IEEE float file.
func decodeFloatWav(d *gowav.Decoder) (Waveform, error) {
	if d.BitDepth != 32 {
		return Waveform{}, fmt.Errorf("%w: %d-bit float wav", ErrUnsupportedFormat, d.BitDepth)
	}
	channels := int(d.NumChans)

	buf, err := d.FullPCMBuffer()
	if err == nil && buf == nil {
		err = d.Err()
	}
	if err != nil {
		return Waveform{}, fmt.Errorf("audio: decode float wav: %w", err)
	}
	if buf == nil {
		return Waveform{}, ErrFileNotLoaded
	}

	out := make([]float64, len(buf.Data)/channels)
	for i := range out {
		var sum float64
		for _, v := range buf.Data[i*channels : (i+1)*channels] {
			sum += float64(math.Float32frombits(uint32(int32(v))))
		}
		out[i] = sum / float64(channels)
	}

	return checkLoaded(Waveform{Samples: out, SampleRate: int(d.SampleRate)})
}

// SaveWav writes w as a 16-bit mono WAV file. Samples outside [-1, 1] are
// clipped.
func SaveWav(path string, w Waveform) error {
	if w.SampleRate <= 0 {
		return fmt.Errorf("audio: save wav: invalid sample rate %d", w.SampleRate)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	var pos int
	streamer := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(w.Samples) {
			return 0, false
		}
		n := copy2(samples, w.Samples[pos:])
		pos += n
		return n, true
	})

	format := beep.Format{
		SampleRate:  beep.SampleRate(w.SampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(file, streamer, format); err != nil {
		file.Close()
		return fmt.Errorf("audio: save wav: %w", err)
	}
	return file.Close()
}

// copy2 fills both channels of dst from src and returns the count copied.
func copy2(dst [][2]float64, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		v := src[i]
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		dst[i][0], dst[i][1] = v, v
	}
	return n
}
