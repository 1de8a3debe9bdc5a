package domain

import "errors"

// Error kinds shared by every layer. Repositories wrap them with context and
// delivery maps them to transport status codes with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("already exists")
)
