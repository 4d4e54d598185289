package mfcc

import (
	"math"

	"github.com/neurlang/gomfcc/mel"
)

// EnergyFloor replaces filterbank energies that are exactly zero before the
// logarithm is taken. It is the float64 machine epsilon.
const EnergyFloor = 2.220446049250313e-16

// MelEnergies projects every power spectrum row onto the filterbank,
// returning one energy per filter and frame.
func MelEnergies(power Matrix, bank mel.Filterbank) Matrix {
	energies := NewMatrix(len(power), bank.NumFilters())
	for i, spectrum := range power {
		for m, filter := range bank {
			sum := 0.0
			for k, w := range filter {
				if w != 0 {
					sum += w * spectrum[k]
				}
			}
			energies[i][m] = sum
		}
	}
	return energies
}

// LogMel converts energies to decibels, 20*log10(e), flooring zeros to
// EnergyFloor first.
func LogMel(energies Matrix) Matrix {
	out := NewMatrix(energies.Rows(), energies.Cols())
	for i, row := range energies {
		for j, e := range row {
			if e == 0 {
				e = EnergyFloor
			}
			out[i][j] = 20 * math.Log10(e)
		}
	}
	return out
}

// DCT returns the orthonormal DCT-II of x:
// X[k] = s(k) * sum_n x[n]*cos(pi*k*(2n+1)/(2N)), with s(0) = sqrt(1/N) and
// s(k) = sqrt(2/N) otherwise.
func DCT(x []float64) []float64 {
	return dctII(x, len(x))
}

// Cepstra applies the orthonormal DCT-II to every row of logMel and keeps the
// first numCeps coefficients.
func Cepstra(logMel Matrix, numCeps int) Matrix {
	out := NewMatrix(logMel.Rows(), numCeps)
	for i, row := range logMel {
		copy(out[i], dctII(row, numCeps))
	}
	return out
}

// dctII computes the first n orthonormal DCT-II coefficients of x.
func dctII(x []float64, n int) []float64 {
	var size = len(x)
	if n > size {
		n = size
	}
	out := make([]float64, n)
	if size == 0 {
		return out
	}

	var first = math.Sqrt(1 / float64(size))
	var rest = math.Sqrt(2 / float64(size))
	for k := range out {
		sum := 0.0
		for i, v := range x {
			sum += v * math.Cos(math.Pi*float64(k)*float64(2*i+1)/float64(2*size))
		}
		if k == 0 {
			out[k] = sum * first
		} else {
			out[k] = sum * rest
		}
	}
	return out
}
