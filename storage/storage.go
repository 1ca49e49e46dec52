// Package storage persists exported run report artifacts, either on the
// local filesystem or in an S3 bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNotFound is returned when a requested artifact does not exist.
	ErrNotFound = errors.New("artifact not found")

	// ErrInvalidPath is returned when a path is empty, absolute, or escapes
	// the storage root.
	ErrInvalidPath = errors.New("invalid artifact path")
)

// BlobStorage stores and locates report artifacts.
type BlobStorage interface {
	// Upload stores data from the reader at the specified path.
	Upload(ctx context.Context, path string, reader io.Reader) error

	// Exists checks if an artifact exists at the specified path.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a URL (or filesystem path) for accessing the artifact.
	GetURL(ctx context.Context, path string) (string, error)
}

// Config selects and parameterizes a storage backend.
type Config struct {
	// Type is "local" or "s3".
	Type string

	// BaseDir is the root directory for local storage.
	BaseDir string

	// Bucket and Region parameterize S3 storage.
	Bucket string
	Region string
}

// New creates a BlobStorage implementation based on configuration.
func New(cfg Config) (BlobStorage, error) {
	switch strings.ToLower(cfg.Type) {
	case "local":
		return NewLocalStorage(cfg.BaseDir)
	case "s3":
		return NewS3Storage(cfg.Bucket, cfg.Region)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
