package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"livestock-records/internal/domain/animals"
)

// DocumentsRepo guarda el documento completo como JSONB en una fila por clave.
type DocumentsRepo struct {
	db *sql.DB
}

// NewDocumentsRepo asegura la tabla y devuelve el repo.
func NewDocumentsRepo(ctx context.Context, db *sql.DB) (*DocumentsRepo, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			key        TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}
	return &DocumentsRepo{db: db}, nil
}

func (r *DocumentsRepo) Load(ctx context.Context, key string) ([]byte, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, animals.ErrNoDocument
	}

	var payload string
	err := r.db.QueryRowContext(ctx, `
		SELECT payload::text
		FROM documents
		WHERE key = $1
	`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, animals.ErrNoDocument
		}
		return nil, err
	}
	return []byte(payload), nil
}

// Save reemplaza el documento (upsert). Una sola sentencia: no hay estado parcial.
func (r *DocumentsRepo) Save(ctx context.Context, key string, doc []byte) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("document key required")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (key, payload, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload,
		    updated_at = EXCLUDED.updated_at
	`, key, string(doc))
	return err
}
