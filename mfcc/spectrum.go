package mfcc

import (
	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |FFT(frame)|² / fftSize for the fftSize/2 + 1
// non-negative frequencies of every frame. Frames shorter than fftSize are
// zero-padded; frames must not be longer than fftSize.
func PowerSpectrum(frames Matrix, fftSize int) Matrix {
	var bins = fftSize/2 + 1
	var scale = 1.0 / float64(fftSize)

	power := NewMatrix(len(frames), bins)
	for i, frame := range frames {
		spectrum := fft.FFTReal(dsputils.ZeroPadF(frame, fftSize))
		for k := range power[i] {
			re, im := real(spectrum[k]), imag(spectrum[k])
			power[i][k] = (re*re + im*im) * scale
		}
	}
	return power
}
