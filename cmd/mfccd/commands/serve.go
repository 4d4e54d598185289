package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/neurlang/gomfcc/plot"
	"github.com/neurlang/gomfcc/server"
	"github.com/neurlang/gomfcc/storage"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP extraction service",
		Long: `Run the HTTP extraction service.

  POST   /extract_mfcc/ multipart upload in field "file"
  GET    /plots/{name}  plot returned by an extraction
  DELETE /plots/{name}  remove a fetched plot
  GET    /healthz       liveness and filterbank cache size

Plots are kept in a local directory or an S3 bucket (storage.backend).`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(a.v, cmd.Flags(), serveKeys)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}

			store, err := storage.New(s.Storage)
			if err != nil {
				return err
			}
			a.log.Info("plot storage ready",
				"backend", s.Storage.Backend,
				"dir", s.Storage.Dir,
				"bucket", s.Storage.Bucket,
			)

			srv := server.New(store, server.Options{
				Config:         s.MFCC.config(0),
				FitFFT:         s.FitFFT,
				MaxUploadBytes: s.Server.MaxUploadBytes,
				Plot:           plot.DefaultOptions(),
				Logger:         a.log,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, s.Server.Addr)
		},
	}

	f := cmd.Flags()
	f.String("addr", ":8000", "listen address")
	f.Int64("max-upload-bytes", server.DefaultMaxUploadBytes, "largest accepted upload")
	f.String("storage", "local", "plot storage backend (local, s3)")
	f.String("dir", "plots", "plot directory for the local backend")
	f.String("bucket", "", "bucket for the s3 backend")
	f.String("prefix", "", "key prefix for the s3 backend")
	f.String("region", "", "region for the s3 backend")
	f.String("endpoint", "", "custom endpoint for S3-compatible stores")
	f.Bool("fit-fft", true, "raise the FFT size when a frame does not fit")
	return cmd
}

var serveKeys = map[string]string{
	"addr":             "server.addr",
	"max-upload-bytes": "server.max_upload_bytes",
	"storage":          "storage.backend",
	"dir":              "storage.dir",
	"bucket":           "storage.bucket",
	"prefix":           "storage.prefix",
	"region":           "storage.region",
	"endpoint":         "storage.endpoint",
	"fit-fft":          "fit_fft",
}
