//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
package animals

import (
	"context"
	"errors"
)

// DefaultStoreKey es la clave fija bajo la cual se guarda el documento completo.
const DefaultStoreKey = "cows"

// ErrNoDocument lo devuelven los proveedores cuando la clave todavía no existe.
var ErrNoDocument = errors.New("no document stored")

// Repository es el proveedor de persistencia: guarda y lee el documento serializado completo.
// Save reemplaza el documento entero (no hay escrituras parciales).
type Repository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, doc []byte) error
}
