package animals

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrNotFound            = errors.New("not found")

	// Import
	ErrMalformedDocument = errors.New("malformed document")
	ErrInvalidRecord     = errors.New("invalid record")

	// ErrPersistence envuelve fallas del proveedor al guardar el documento.
	ErrPersistence = errors.New("persistence failure")
)
