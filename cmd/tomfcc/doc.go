// Command tomfcc converts audio files (WAV/FLAC) to MFCC matrices.
//
// It computes 13 cepstral coefficients per 25 ms frame, taken every 10 ms,
// and writes two files next to the input: a JSON document holding the
// matrix and a PNG heatmap of it.
//
// Usage:
//
//	tomfcc <audio_file>
//
// The outputs are named <audio_file>.json and <audio_file>.png. A name
// without an extension is read as <audio_file>.wav.
//
// Supported input formats: .wav, .flac
package main
