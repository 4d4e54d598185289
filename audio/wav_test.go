package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeIntWav writes interleaved integer samples with the go-audio encoder.
func writeIntWav(t *testing.T, path string, sampleRate, bitDepth, channels, audioFormat int, data []int) {
	t.Helper()
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	enc := gowav.NewEncoder(file, sampleRate, bitDepth, channels, audioFormat)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())
}

func peak(samples []float64) float64 {
	var m float64
	for _, v := range samples {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

func TestDecodeWavKeepsAmplitude(t *testing.T) {
	path := filepath.Join(t.TempDir(), "half.wav")
	require.NoError(t, SaveWav(path, tone(100, 8000, 800)))

	got, err := LoadWav(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, peak(got.Samples), 1e-3)
}

func TestDecodeWav24Bit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep.wav")
	writeIntWav(t, path, 16000, 24, 1, 1, []int{1 << 22, -(1 << 22), 1 << 21, 0})

	got, err := LoadWav(path)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, -0.5, 0.25, 0}, got.Samples, 1e-6)
}

func TestWavAndFlacAgree(t *testing.T) {
	const n = 256
	ints := make([]int32, n)
	data := make([]int, n)
	for i := range ints {
		ints[i] = int32(16000 * math.Sin(2*math.Pi*float64(i)/32))
		data[i] = int(ints[i])
	}

	dir := t.TempDir()
	wavPath := filepath.Join(dir, "sig.wav")
	writeIntWav(t, wavPath, 16000, 16, 1, 1, data)
	flacPath := filepath.Join(dir, "sig.flac")
	require.NoError(t, os.WriteFile(flacPath, encodeFlac(t, 16000, ints), 0o644))

	fromWav, err := Load(wavPath)
	require.NoError(t, err)
	fromFlac, err := Load(flacPath)
	require.NoError(t, err)

	assert.Equal(t, fromFlac.SampleRate, fromWav.SampleRate)
	require.Len(t, fromWav.Samples, n)
	assert.InDeltaSlice(t, fromFlac.Samples, fromWav.Samples, 1e-9)
	assert.InDelta(t, 16000.0/32768, peak(fromWav.Samples), 1e-3)
}

func TestDecodeStereoWavAveragesChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	file, err := os.Create(path)
	require.NoError(t, err)

	left := []float64{0.5, 0.25, -0.5, 0}
	right := []float64{-0.25, 0.25, 0.5, 0.75}
	var pos int
	streamer := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(left) {
			return 0, false
		}
		n := 0
		for ; n < len(samples) && pos < len(left); n, pos = n+1, pos+1 {
			samples[n] = [2]float64{left[pos], right[pos]}
		}
		return n, true
	})
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(file, streamer, format))
	require.NoError(t, file.Close())

	got, err := LoadWav(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, got.SampleRate)
	assert.InDeltaSlice(t, []float64{0.125, 0.25, 0, 0.375}, got.Samples, 1e-3)
}

func TestDecodeFloatWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "float.wav")

	frames := [][2]float32{{0.5, 0.25}, {-1, 1}, {0.125, -0.375}}
	var data []int
	for _, f := range frames {
		data = append(data, int(int32(math.Float32bits(f[0]))), int(int32(math.Float32bits(f[1]))))
	}
	writeIntWav(t, path, 22050, 32, 2, wavFormatFloat, data)

	got, err := LoadWav(path)
	require.NoError(t, err)
	assert.Equal(t, 22050, got.SampleRate)
	assert.InDeltaSlice(t, []float64{0.375, 0, -0.125}, got.Samples, 1e-7)
}
