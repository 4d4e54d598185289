// Package server exposes MFCC extraction over HTTP.
//
//	POST   /extract_mfcc/ multipart upload, field "file" (.wav or .flac)
//	GET    /plots/{name}  a plot rendered by an earlier extraction
//	DELETE /plots/{name}  drop a plot once the client has fetched it
//	GET    /healthz       liveness and filterbank cache size
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/neurlang/gomfcc/audio"
	"github.com/neurlang/gomfcc/mel"
	"github.com/neurlang/gomfcc/mfcc"
	"github.com/neurlang/gomfcc/plot"
	"github.com/neurlang/gomfcc/storage"
)

// DefaultMaxUploadBytes bounds the size of a request body.
const DefaultMaxUploadBytes = 32 << 20

// Options configures a Server.
type Options struct {
	// Config holds the extraction parameters. Its sample rate is replaced
	// by the rate of each upload.
	Config mfcc.Config

	// FitFFT raises the FFT size per request when a frame would not fit,
	// e.g. 25 ms at 44.1 kHz needs 2048 points.
	FitFFT bool

	MaxUploadBytes int64
	Plot           plot.Options
	Logger         *slog.Logger
}

// Server handles extraction requests and serves rendered plots.
type Server struct {
	store storage.FileStore
	opts  Options
	log   *slog.Logger
	mux   *http.ServeMux
}

// New returns a Server that keeps plots in store.
func New(store storage.FileStore, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.Plot == (plot.Options{}) {
		opts.Plot = plot.DefaultOptions()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		store: store,
		opts:  opts,
		log:   opts.Logger,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /extract_mfcc/", s.handleExtract)
	s.mux.HandleFunc("GET /plots/{name}", s.handlePlot)
	s.mux.HandleFunc("DELETE /plots/{name}", s.handleDeletePlot)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ExtractResponse is the JSON body returned by POST /extract_mfcc/.
type ExtractResponse struct {
	MFCC        mfcc.Matrix `json:"mfcc"`
	PlotFile    string      `json:"plot_file"`
	Shape       [2]int      `json:"shape"`
	SampleRate  int         `json:"sample_rate"`
	FrameStride float64     `json:"frame_stride"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.fail(w, http.StatusBadRequest, fmt.Errorf("missing upload field %q: %w", "file", err))
		return
	}
	defer file.Close()

	wave, err := audio.Decode(header.Filename, file)
	if err != nil {
		s.fail(w, decodeStatus(err), err)
		return
	}

	cfg := s.opts.Config.WithSampleRate(wave.SampleRate)
	if s.opts.FitFFT {
		cfg = cfg.FitFFT()
	}
	ceps, err := mfcc.Extract(wave.Samples, cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, mfcc.ErrInvalidConfig) {
			status = http.StatusBadRequest
		}
		s.fail(w, status, err)
		return
	}

	name, err := s.savePlot(r.Context(), ceps)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	s.log.Info("extracted mfcc",
		"file", header.Filename,
		"sample_rate", wave.SampleRate,
		"duration", wave.Duration(),
		"frames", ceps.Rows(),
		"plot", name,
		"elapsed", time.Since(start),
	)

	s.writeJSON(w, http.StatusOK, ExtractResponse{
		MFCC:        ceps,
		PlotFile:    name,
		Shape:       [2]int{ceps.Rows(), ceps.Cols()},
		SampleRate:  cfg.SampleRate,
		FrameStride: cfg.FrameStride,
	})
}

func (s *Server) savePlot(ctx context.Context, ceps mfcc.Matrix) (string, error) {
	var buf bytes.Buffer
	if err := plot.Render(&buf, ceps, s.opts.Plot); err != nil {
		return "", fmt.Errorf("render plot: %w", err)
	}
	name := PlotName(uuid.New())
	if err := storage.Put(ctx, s.store, name, &buf); err != nil {
		return "", fmt.Errorf("store plot: %w", err)
	}
	return name, nil
}

// PlotName returns the artifact name of the plot for one request.
func PlotName(id uuid.UUID) string {
	return "mfcc_" + id.String() + ".png"
}

// plotPath returns the plot name from the request path, or false when it
// cannot name a plot.
func plotPath(r *http.Request) (string, bool) {
	name := r.PathValue("name")
	if err := storage.CheckName(name); err != nil || path.Ext(name) != ".png" {
		return name, false
	}
	return name, true
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	name, ok := plotPath(r)
	if !ok {
		s.fail(w, http.StatusNotFound, fmt.Errorf("plot %q not found", name))
		return
	}

	rc, err := s.store.Read(r.Context(), name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.fail(w, http.StatusNotFound, fmt.Errorf("plot %q not found", name))
			return
		}
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "image/png")
	if _, err := io.Copy(w, rc); err != nil {
		s.log.Warn("failed to stream plot", "plot", name, "error", err)
	}
}

func (s *Server) handleDeletePlot(w http.ResponseWriter, r *http.Request) {
	name, ok := plotPath(r)
	if ok {
		var err error
		ok, err = s.store.Exists(r.Context(), name)
		if err != nil {
			s.fail(w, http.StatusInternalServerError, err)
			return
		}
	}
	if !ok {
		s.fail(w, http.StatusNotFound, fmt.Errorf("plot %q not found", name))
		return
	}

	if err := s.store.Delete(r.Context(), name); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.log.Info("deleted plot", "plot", name)
	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status      string `json:"status"`
	Filterbanks int    `json:"filterbanks"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Filterbanks: mel.CacheLen()})
}

func decodeStatus(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, audio.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "status", status, "error", err)
	} else {
		s.log.Debug("request rejected", "status", status, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}
