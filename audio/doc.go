// Package audio decodes WAV and FLAC files into mono waveforms.
//
// Multi-channel input is averaged down to a single channel and integer PCM
// is scaled into the [-1, 1] range, so the result can be fed directly to
// mfcc.Extract together with its sample rate.
package audio
