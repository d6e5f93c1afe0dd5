package storage

import (
	"context"
	"fmt"
	"io"

	"study-tracker/internal/config"
)

// Storage holds the workbook object behind the workbook record store.
type Storage interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key string, data io.ReadSeeker) error
	Exists(ctx context.Context, key string) (bool, error)
}

func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendLocal:
		return NewLocalStorage(cfg.Storage.LocalDir)
	case config.StorageBackendS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
