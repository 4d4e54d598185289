package mel

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMelScaleRoundTrip(t *testing.T) {
	const sampleRate = 16000
	for hz := 0.0; hz <= sampleRate/2; hz += 125 {
		back := MelToHz(HzToMel(hz))
		assert.InDelta(t, hz, back, 1e-9*math.Max(1, hz), "hz=%v", hz)
	}

	// 1000 Hz sits close to 1000 mel on this scale.
	assert.InDelta(t, 1000.0, HzToMel(1000), 1.0)
	assert.Equal(t, 0.0, HzToMel(0))
}

func TestBinsMonotonic(t *testing.T) {
	bins, err := Bins(16000, 26, 512)
	require.NoError(t, err)
	require.Len(t, bins, 28)

	assert.Equal(t, 0, bins[0])
	assert.Equal(t, 256, bins[len(bins)-1])
	for i := 1; i < len(bins); i++ {
		assert.GreaterOrEqual(t, bins[i], bins[i-1], "edge %d", i)
	}
}

func TestBinsStayInsideSpectrum(t *testing.T) {
	for _, fftSize := range []int{511, 512, 513, 1024} {
		bins, err := Bins(22050, 40, fftSize)
		require.NoError(t, err)
		last := fftSize / 2
		for i, bin := range bins {
			assert.LessOrEqual(t, bin, last, "fft %d edge %d", fftSize, i)
		}
		assert.Equal(t, last, bins[len(bins)-1], "fft %d", fftSize)
	}
}

func TestBinsInvalid(t *testing.T) {
	cases := []struct {
		name                            string
		sampleRate, numFilters, fftSize int
	}{
		{"zero sample rate", 0, 26, 512},
		{"negative filters", 16000, -1, 512},
		{"zero fft", 16000, 26, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Bins(tc.sampleRate, tc.numFilters, tc.fftSize)
			assert.ErrorIs(t, err, ErrInvalidGeometry)

			_, err = NewFilterbank(tc.sampleRate, tc.numFilters, tc.fftSize)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestFilterbankShape8k(t *testing.T) {
	bank, err := NewFilterbank(8000, 26, 512)
	require.NoError(t, err)
	require.Equal(t, 26, bank.NumFilters())
	require.Equal(t, 257, bank.NumBins())

	for m, filter := range bank {
		require.Len(t, filter, 257)
		sum := 0.0
		for _, w := range filter {
			sum += w
		}
		assert.Greater(t, sum, 0.0, "filter %d", m)
	}
}

func TestFilterbankTriangles(t *testing.T) {
	const (
		sampleRate = 16000
		numFilters = 26
		fftSize    = 512
	)
	bins, err := Bins(sampleRate, numFilters, fftSize)
	require.NoError(t, err)
	bank, err := NewFilterbank(sampleRate, numFilters, fftSize)
	require.NoError(t, err)

	for m := 1; m <= numFilters; m++ {
		left, center, right := bins[m-1], bins[m], bins[m+1]
		filter := bank[m-1]
		for k, w := range filter {
			assert.GreaterOrEqual(t, w, 0.0)
			assert.LessOrEqual(t, w, 1.0)
			if k < left || k >= right {
				assert.Zero(t, w, "filter %d bin %d outside [%d,%d)", m, k, left, right)
			}
		}
		if left < center && center < right {
			assert.Equal(t, 1.0, filter[center], "filter %d peak", m)
		}
	}
}

func TestFilterbankDegenerateEdges(t *testing.T) {
	// Far more filters than low-frequency bins: neighbouring edges collide.
	bins, err := Bins(16000, 128, 256)
	require.NoError(t, err)

	collisions := 0
	for i := 1; i < len(bins); i++ {
		if bins[i] == bins[i-1] {
			collisions++
		}
	}
	require.Positive(t, collisions, "geometry should contain zero-width ramps")

	bank, err := NewFilterbank(16000, 128, 256)
	require.NoError(t, err)
	for m, filter := range bank {
		peak := 0.0
		for _, w := range filter {
			require.False(t, math.IsNaN(w) || math.IsInf(w, 0), "filter %d not finite", m)
			peak = math.Max(peak, w)
		}
		assert.Equal(t, 1.0, peak, "filter %d", m)
	}
}

func TestCachedSharesFilterbank(t *testing.T) {
	a, err := Cached(22050, 40, 1024)
	require.NoError(t, err)
	b, err := Cached(22050, 40, 1024)
	require.NoError(t, err)
	assert.Same(t, &a[0][0], &b[0][0])

	c, err := Cached(22050, 20, 1024)
	require.NoError(t, err)
	assert.NotEqual(t, a.NumFilters(), c.NumFilters())

	_, err = Cached(0, 20, 1024)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestCachedConcurrent(t *testing.T) {
	const workers = 16
	var wg sync.WaitGroup
	banks := make([]Filterbank, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bank, err := Cached(44100, 26, 2048)
			assert.NoError(t, err)
			banks[i] = bank
		}()
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, &banks[0][0][0], &banks[i][0][0])
	}
	assert.GreaterOrEqual(t, CacheLen(), 1)
}

func BenchmarkNewFilterbank(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		_, _ = NewFilterbank(16000, 26, 512)
	}
}
