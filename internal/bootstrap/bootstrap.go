// Package bootstrap wires configuration, logging and the S3 bucket for the
// function entrypoints.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sh3r4rd/bucket_links/internal/config"
	"github.com/sh3r4rd/bucket_links/internal/logging"
	"github.com/sh3r4rd/bucket_links/internal/storage"
)

// Deps are built once per cold start and shared by every invocation.
type Deps struct {
	Config *config.Config
	Logger *zap.Logger
	Bucket *storage.Bucket
}

// New builds Deps from cfg.
func New(ctx context.Context, cfg *config.Config) (*Deps, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return nil, err
	}

	bucket, err := storage.NewS3Bucket(ctx, cfg.BucketName, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	logger.Debug("dependencies ready",
		zap.String("bucket", cfg.BucketName),
		zap.Int("protected_keys", len(cfg.ProtectedKeys)),
	)
	return &Deps{Config: cfg, Logger: logger, Bucket: bucket}, nil
}

// FromEnv loads the configuration from the environment and calls New.
func FromEnv(ctx context.Context) (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}
