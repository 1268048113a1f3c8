package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"livestock-records/internal/domain/animals"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "document:"

// DocumentsRepo guarda el documento completo como valor de una clave de Badger.
type DocumentsRepo struct {
	db *badger.DB
}

// Open abre Badger en dir. Con dir vacío abre en memoria (tests).
func Open(dir string) (*DocumentsRepo, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.WARNING)
	if strings.TrimSpace(dir) == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &DocumentsRepo{db: db}, nil
}

func NewDocumentsRepo(db *badger.DB) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

func (r *DocumentsRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, animals.ErrNoDocument
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	return doc, nil
}

func (r *DocumentsRepo) Save(ctx context.Context, key string, doc []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("document key required")
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), doc)
	})
}

func (r *DocumentsRepo) Close() error { return r.db.Close() }
