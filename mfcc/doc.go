// Package mfcc computes Mel-Frequency Cepstral Coefficients from a mono waveform.
//
// The pipeline runs strictly forward:
//   - Preprocess applies pre-emphasis, splits the signal into overlapping
//     zero-padded frames and applies a Hamming window
//   - PowerSpectrum takes the real FFT of every frame
//   - MelEnergies projects the spectrum onto a mel filterbank
//   - LogMel compresses the energies to decibels
//   - Cepstra decorrelates them with an orthonormal DCT-II and keeps the
//     lowest coefficients
//
// Extract runs the whole chain for one Config. It keeps no state between calls
// apart from the shared filterbank cache of package mel, so independent
// waveforms may be processed concurrently.
package mfcc
