package mfcc

import (
	"github.com/neurlang/gomfcc/mel"
)

// Extract computes the MFCC matrix of samples: one row per frame, cfg.NumCeps
// columns. The configuration is validated before any work is done. An empty
// or silent input still yields at least one row.
func Extract(samples []float64, cfg Config) (Matrix, error) {
	logMel, err := LogMelSpectrum(samples, cfg)
	if err != nil {
		return nil, err
	}
	return Cepstra(logMel, cfg.NumCeps), nil
}

// LogMelSpectrum runs the pipeline up to the decibel scaled filterbank
// energies, returning one row of cfg.NumFilters values per frame.
func LogMelSpectrum(samples []float64, cfg Config) (Matrix, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bank, err := mel.Cached(cfg.SampleRate, cfg.NumFilters, cfg.FFTSize)
	if err != nil {
		return nil, err
	}

	frames := Preprocess(samples, cfg)
	power := PowerSpectrum(frames, cfg.FFTSize)
	return LogMel(MelEnergies(power, bank)), nil
}
