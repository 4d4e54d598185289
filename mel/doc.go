// Package mel builds triangular mel-scale filterbanks.
//
// A filterbank pools the bins of a power spectrum into bands spaced uniformly
// on the mel scale. It depends only on the sample rate, the number of filters
// and the FFT size, so it is built once per combination and shared:
//   - HzToMel / MelToHz convert between the linear and the mel scale
//   - Bins places the filter edges on FFT bins
//   - NewFilterbank builds the filters
//   - Cached memoizes NewFilterbank for the lifetime of the process
package mel
