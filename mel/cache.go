package mel

import "sync"

type cacheKey struct {
	sampleRate int
	numFilters int
	fftSize    int
}

var cache = struct {
	sync.RWMutex
	banks map[cacheKey]Filterbank
}{banks: make(map[cacheKey]Filterbank)}

// Cached returns the filterbank for the given geometry, building it on first
// use. The result is shared between callers and must not be modified.
func Cached(sampleRate, numFilters, fftSize int) (Filterbank, error) {
	key := cacheKey{sampleRate: sampleRate, numFilters: numFilters, fftSize: fftSize}

	cache.RLock()
	bank, ok := cache.banks[key]
	cache.RUnlock()
	if ok {
		return bank, nil
	}

	bank, err := NewFilterbank(sampleRate, numFilters, fftSize)
	if err != nil {
		return nil, err
	}

	cache.Lock()
	defer cache.Unlock()
	if existing, ok := cache.banks[key]; ok {
		return existing, nil
	}
	cache.banks[key] = bank
	return bank, nil
}

// CacheLen reports how many filterbanks are currently memoized.
func CacheLen() int {
	cache.RLock()
	defer cache.RUnlock()
	return len(cache.banks)
}
