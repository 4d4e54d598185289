package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/neurlang/gomfcc/mfcc"
	"github.com/neurlang/gomfcc/storage"
)

// settings is the decoded configuration.
type settings struct {
	LogLevel  string         `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string         `mapstructure:"log_format" yaml:"log_format"`
	FitFFT    bool           `mapstructure:"fit_fft" yaml:"fit_fft"`
	Server    serverSettings `mapstructure:"server" yaml:"server"`
	Storage   storage.Config `mapstructure:"storage" yaml:"storage"`
	MFCC      mfccSettings   `mapstructure:"mfcc" yaml:"mfcc"`
}

type serverSettings struct {
	Addr           string `mapstructure:"addr" yaml:"addr"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// mfccSettings mirrors mfcc.Config without the sample rate, which always
// comes from the audio.
type mfccSettings struct {
	NumCeps     int     `mapstructure:"num_ceps" yaml:"num_ceps"`
	NumFilters  int     `mapstructure:"num_filters" yaml:"num_filters"`
	FFTSize     int     `mapstructure:"fft_size" yaml:"fft_size"`
	FrameSize   float64 `mapstructure:"frame_size" yaml:"frame_size"`
	FrameStride float64 `mapstructure:"frame_stride" yaml:"frame_stride"`
	PreEmphasis float64 `mapstructure:"pre_emphasis" yaml:"pre_emphasis"`
}

// config returns the extraction parameters for audio at sampleRate.
func (s mfccSettings) config(sampleRate int) mfcc.Config {
	return mfcc.Config{
		SampleRate:  sampleRate,
		NumCeps:     s.NumCeps,
		NumFilters:  s.NumFilters,
		FFTSize:     s.FFTSize,
		FrameSize:   s.FrameSize,
		FrameStride: s.FrameStride,
		PreEmphasis: s.PreEmphasis,
	}
}

func (a *app) settings() (settings, error) {
	var s settings
	if err := a.v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(s); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
