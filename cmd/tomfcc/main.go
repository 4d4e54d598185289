package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/neurlang/gomfcc/audio"
	"github.com/neurlang/gomfcc/mfcc"
	"github.com/neurlang/gomfcc/plot"
)

type document struct {
	SampleRate  int         `json:"sample_rate"`
	FrameStride float64     `json:"frame_stride"`
	Shape       [2]int      `json:"shape"`
	MFCC        mfcc.Matrix `json:"mfcc"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: tomfcc <audio_file>")
		os.Exit(1)
	}

	if err := convert(os.Args[1]); err != nil {
		slog.Error("tomfcc failed", "file", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func convert(filename string) error {
	inputFile := filename
	if filepath.Ext(filename) == "" {
		inputFile = filename + ".wav"
	}

	wave, err := audio.Load(inputFile)
	if err != nil {
		return err
	}

	cfg := mfcc.DefaultConfig(wave.SampleRate).FitFFT()
	ceps, err := mfcc.Extract(wave.Samples, cfg)
	if err != nil {
		return err
	}

	if err := plot.Save(filename+".png", ceps, plot.DefaultOptions()); err != nil {
		return err
	}

	data, err := json.Marshal(document{
		SampleRate:  cfg.SampleRate,
		FrameStride: cfg.FrameStride,
		Shape:       [2]int{ceps.Rows(), ceps.Cols()},
		MFCC:        ceps,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename+".json", data, 0o644); err != nil {
		return err
	}

	slog.Info("mfcc written",
		"input", inputFile,
		"frames", ceps.Rows(),
		"duration", wave.Duration(),
		"png", filename+".png",
		"json", filename+".json",
	)
	return nil
}
