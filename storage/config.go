package storage

import (
	"fmt"
	"strings"
)

// Config selects and configures a backend.
type Config struct {
	Backend  string `mapstructure:"backend" yaml:"backend"` // "local" or "s3"
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Bucket   string `mapstructure:"bucket" yaml:"bucket"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
	Region   string `mapstructure:"region" yaml:"region"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

// New opens the store described by cfg. An empty backend means local.
func New(cfg Config) (FileStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "local":
		dir := cfg.Dir
		if dir == "" {
			dir = "plots"
		}
		return NewLocal(dir)
	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("storage: s3 backend requires a bucket")
		}
		client := NewS3Client(S3Options{Region: cfg.Region, Endpoint: cfg.Endpoint})
		return NewS3(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
