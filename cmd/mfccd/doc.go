// mfccd extracts MFCC features from WAV and FLAC audio.
//
// Usage:
//
//	mfccd serve                          # HTTP service on :8000
//	mfccd extract speech.wav             # MFCC matrix as JSON on stdout
//	mfccd extract -f yaml --plot out.png speech.flac
//	mfccd config                         # effective configuration as YAML
//
// Settings come from flags, MFCCD_* environment variables and mfccd.yaml
// in ~/.config/mfccd, /etc/mfccd or ./configs.
package main
