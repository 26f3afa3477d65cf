package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrisdamba/weaning/internal/logger"
	"github.com/chrisdamba/weaning/internal/models"
	"github.com/spf13/afero"
)

// Open builds the backend named by cfg.Storage.Driver and wraps it in an Adapter.
func Open(ctx context.Context, cfg *models.Config, log *logger.Logger) (*Adapter, error) {
	sc := cfg.Storage
	var (
		backend Backend
		err     error
	)
	switch strings.ToLower(sc.Driver) {
	case "", "file":
		backend, err = NewFileBackend(afero.NewOsFs(), sc.Dir)
	case "sqlite":
		backend, err = NewSQLiteBackend(ctx, sc.SQLitePath)
	case "postgres":
		backend, err = NewPostgresBackend(ctx, sc.PostgresDSN)
	case "s3":
		backend, err = NewS3Backend(ctx, sc.S3Bucket, sc.S3Region, sc.S3Prefix)
	case "memory":
		backend = NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", sc.Driver, err)
	}
	log.Debug("using %s storage", sc.Driver)
	return NewAdapter(backend, log), nil
}
