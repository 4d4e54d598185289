package mel

import "math"

const (
	melBreakFrequencyHertz = 700.0
	melHighFrequencyQ      = 2595.0
)

// HzToMel converts a frequency in Hz to mels.
func HzToMel(hz float64) float64 {
	return melHighFrequencyQ * math.Log10(1.0+hz/melBreakFrequencyHertz)
}

// MelToHz converts mels back to a frequency in Hz.
func MelToHz(mel float64) float64 {
	return melBreakFrequencyHertz * (math.Pow(10, mel/melHighFrequencyQ) - 1.0)
}
