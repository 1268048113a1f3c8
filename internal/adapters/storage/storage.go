// Package storage elige el proveedor de persistencia según la configuración.
package storage

import (
	"context"
	"fmt"

	badgerstore "livestock-records/internal/adapters/storage/badger"
	"livestock-records/internal/adapters/storage/memory"
	"livestock-records/internal/adapters/storage/postgres"
	s3store "livestock-records/internal/adapters/storage/s3"
	"livestock-records/internal/adapters/storage/sqlite"
	"livestock-records/internal/domain/animals"
	"livestock-records/internal/platform/config"
	"livestock-records/internal/platform/logger"
)

// Closer libera los recursos del proveedor (conexiones, archivos). Nunca es nil.
type Closer func() error

func noopCloser() error { return nil }

// Open construye el repositorio de documentos para cfg.StorageDriver.
func Open(ctx context.Context, cfg config.Config, log logger.Logger) (animals.Repository, Closer, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "storage", "driver": cfg.StorageDriver})

	switch cfg.StorageDriver {
	case config.DriverMemory, "":
		log.Warn("using in-memory storage, data is lost on restart", nil)
		return memory.NewDocumentRepo(), noopCloser, nil

	case config.DriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		log.Info("storage ready", map[string]any{"path": repo.Path()})
		return repo, repo.Close, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		repo, err := postgres.NewDocumentsRepo(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		log.Info("storage ready", nil)
		return repo, db.Close, nil

	case config.DriverBadger:
		repo, err := badgerstore.Open(cfg.BadgerPath)
		if err != nil {
			return nil, nil, fmt.Errorf("badger: %w", err)
		}
		log.Info("storage ready", map[string]any{"path": cfg.BadgerPath})
		return repo, repo.Close, nil

	case config.DriverS3:
		repo, err := s3store.New(ctx, s3store.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("s3: %w", err)
		}
		log.Info("storage ready", map[string]any{"bucket": cfg.S3Bucket, "prefix": cfg.S3Prefix})
		return repo, noopCloser, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
