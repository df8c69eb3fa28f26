// internal/validate/errors.go
package validate

import "errors"

// Error taxonomy. Every rejected declaration wraps exactly one of
// these; callers route on errors.Is. All three are fatal for the one
// declaration that raised them, never for the whole load.
var (
	// ErrSchemaViolation: a field is present or absent contrary to
	// its data type's legality.
	ErrSchemaViolation = errors.New("validate: schema violation")

	// ErrLayoutMismatch: a custom structure is malformed or its byte
	// size disagrees with the declared count.
	ErrLayoutMismatch = errors.New("validate: layout mismatch")

	// ErrInvalidNumber: a scalar field cannot be coerced to a number.
	ErrInvalidNumber = errors.New("validate: invalid number")
)
