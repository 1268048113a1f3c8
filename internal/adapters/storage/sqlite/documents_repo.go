package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"livestock-records/internal/domain/animals"

	_ "modernc.org/sqlite" // driver sqlite en Go puro
)

// DocumentsRepo guarda el documento completo en una tabla clave -> payload.
type DocumentsRepo struct {
	db   *sql.DB
	path string
}

// Open abre (o crea) la base en path y asegura la tabla.
func Open(ctx context.Context, path string) (*DocumentsRepo, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite admite un solo escritor
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS documents (
		key        TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}

	return &DocumentsRepo{db: db, path: path}, nil
}

func (r *DocumentsRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM documents WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, animals.ErrNoDocument
		}
		return nil, fmt.Errorf("select document: %w", err)
	}
	return payload, nil
}

func (r *DocumentsRepo) Save(ctx context.Context, key string, doc []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("document key required")
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO documents(key, payload, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`, key, doc)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", key, err)
	}
	return nil
}

func (r *DocumentsRepo) Close() error { return r.db.Close() }

// Path devuelve la ruta configurada de la base.
func (r *DocumentsRepo) Path() string { return r.path }
