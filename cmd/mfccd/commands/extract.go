package commands

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/neurlang/gomfcc/audio"
	"github.com/neurlang/gomfcc/mfcc"
	"github.com/neurlang/gomfcc/plot"
)

// extraction is the document written by extract in json and yaml format.
type extraction struct {
	File        string      `json:"file" yaml:"file"`
	SampleRate  int         `json:"sample_rate" yaml:"sample_rate"`
	FrameStride float64     `json:"frame_stride" yaml:"frame_stride"`
	Shape       [2]int      `json:"shape" yaml:"shape,flow"`
	Times       []float64   `json:"times" yaml:"times,flow"`
	MFCC        mfcc.Matrix `json:"mfcc" yaml:"mfcc"`
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		format   string
		output   string
		plotPath string
	)

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract MFCCs from a WAV or FLAC file",
		Long: `Extract MFCCs from a WAV or FLAC file.

Formats:
  json  document with shape, frame times and the matrix
  yaml  the same document as YAML
  f16   raw little-endian IEEE 754 half floats, row-major, one row per frame`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(a.v, cmd.Flags(), extractKeys)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "json", "yaml", "f16":
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			s, err := a.settings()
			if err != nil {
				return err
			}

			start := time.Now()
			wave, err := audio.Load(args[0])
			if err != nil {
				return err
			}

			cfg := s.MFCC.config(wave.SampleRate)
			if s.FitFFT {
				cfg = cfg.FitFFT()
			}
			ceps, err := mfcc.Extract(wave.Samples, cfg)
			if err != nil {
				return err
			}
			a.log.Debug("extracted mfcc",
				"file", args[0],
				"sample_rate", wave.SampleRate,
				"fft_size", cfg.FFTSize,
				"frames", ceps.Rows(),
				"elapsed", time.Since(start),
			)

			if plotPath != "" {
				if err := plot.Save(plotPath, ceps, plot.DefaultOptions()); err != nil {
					return fmt.Errorf("save plot: %w", err)
				}
				a.log.Info("plot saved", "path", plotPath)
			}

			doc := extraction{
				File:        args[0],
				SampleRate:  cfg.SampleRate,
				FrameStride: cfg.FrameStride,
				Shape:       [2]int{ceps.Rows(), ceps.Cols()},
				Times:       ceps.TimeAxis(cfg.FrameStride),
				MFCC:        ceps,
			}

			if output == "" || output == "-" {
				return writeExtraction(cmd.OutOrStdout(), format, doc)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := writeExtraction(f, format, doc); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	f := cmd.Flags()
	f.StringVarP(&format, "format", "f", "json", "output format (json, yaml, f16)")
	f.StringVarP(&output, "output", "o", "", "output file (default stdout)")
	f.StringVar(&plotPath, "plot", "", "also save a PNG heatmap to this path")
	f.Bool("fit-fft", true, "raise the FFT size when a frame does not fit")
	f.Int("num-ceps", 13, "number of cepstral coefficients")
	f.Int("num-filters", 26, "number of mel filters")
	f.Int("fft-size", 512, "FFT size")
	f.Float64("frame-size", 0.025, "frame length in seconds")
	f.Float64("frame-stride", 0.01, "frame step in seconds")
	f.Float64("pre-emphasis", 0.97, "pre-emphasis coefficient")
	return cmd
}

var extractKeys = map[string]string{
	"fit-fft":      "fit_fft",
	"num-ceps":     "mfcc.num_ceps",
	"num-filters":  "mfcc.num_filters",
	"fft-size":     "mfcc.fft_size",
	"frame-size":   "mfcc.frame_size",
	"frame-stride": "mfcc.frame_stride",
	"pre-emphasis": "mfcc.pre_emphasis",
}

func writeExtraction(w io.Writer, format string, doc extraction) error {
	switch format {
	case "json":
		return json.NewEncoder(w).Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "f16":
		bw := bufio.NewWriter(w)
		if err := binary.Write(bw, binary.LittleEndian, doc.MFCC.Float16()); err != nil {
			return err
		}
		return bw.Flush()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
