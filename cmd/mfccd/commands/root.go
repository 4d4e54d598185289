package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/neurlang/gomfcc/mfcc"
	"github.com/neurlang/gomfcc/server"
)

const (
	appName   = "mfccd"
	envPrefix = "MFCCD"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	log     *slog.Logger
}

// Execute runs the command line.
func Execute() error {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   appName,
		Short: "MFCC feature extraction",
		Long: `mfccd computes Mel-frequency cepstral coefficients of WAV and FLAC audio.

It runs as an HTTP service that returns the coefficient matrix and stores a
heatmap plot of it, or extracts features from local files on the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(a.v, cmd.Root().PersistentFlags(), rootKeys); err != nil {
				return err
			}
			if err := a.initConfig(); err != nil {
				return err
			}
			return a.initLogging(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/mfccd/mfccd.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")

	root.AddCommand(newServeCmd(a), newExtractCmd(a), newConfigCmd(a))
	return root
}

// initConfig reads the config file and environment on top of the defaults.
func (a *app) initConfig() error {
	v := a.v
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", appName))
	}
	v.AddConfigPath(filepath.Join("/etc", appName))
	v.AddConfigPath("./configs")
	v.SetConfigName(appName)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.max_upload_bytes", server.DefaultMaxUploadBytes)

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.dir", "plots")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.prefix", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.endpoint", "")

	def := mfcc.DefaultConfig(0)
	v.SetDefault("mfcc.num_ceps", def.NumCeps)
	v.SetDefault("mfcc.num_filters", def.NumFilters)
	v.SetDefault("mfcc.fft_size", def.FFTSize)
	v.SetDefault("mfcc.frame_size", def.FrameSize)
	v.SetDefault("mfcc.frame_stride", def.FrameStride)
	v.SetDefault("mfcc.pre_emphasis", def.PreEmphasis)
	v.SetDefault("fit_fft", true)
}

var rootKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
}

// bindFlags binds each flag of fs named in keys to its viper key. Commands
// bind their flags only when they run, so subcommands may share a key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	var lastErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := keys[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})
	return lastErr
}

func (a *app) initLogging(w io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString("log_level"))); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch format := a.v.GetString("log_format"); format {
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	a.log = slog.New(handler)
	slog.SetDefault(a.log)
	return nil
}
