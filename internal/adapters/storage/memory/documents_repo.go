package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"livestock-records/internal/domain/animals"
)

// documentRepo guarda documentos en un map. Sin durabilidad: sirve para dev y tests.
type documentRepo struct {
	mu    sync.RWMutex
	byKey map[string][]byte
}

func NewDocumentRepo() animals.Repository {
	return &documentRepo{
		byKey: make(map[string][]byte),
	}
}

func (r *documentRepo) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.byKey[key]
	if !ok {
		return nil, animals.ErrNoDocument
	}
	// copia: el caller no debe poder mutar lo guardado
	return append([]byte(nil), doc...), nil
}

func (r *documentRepo) Save(ctx context.Context, key string, doc []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(key) == "" {
		return errors.New("document key required")
	}
	r.byKey[key] = append([]byte(nil), doc...)
	return nil
}
