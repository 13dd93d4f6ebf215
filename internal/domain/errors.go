package domain

import "errors"

// Error taxonomy shared by all services. Handlers map these to HTTP status
// codes; anything else surfaces as an internal error.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrForbidden         = errors.New("caller lacks rights over this entity")
	ErrInvalidState      = errors.New("operation not valid for current state")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrConflict          = errors.New("conflicting state")
	ErrValidation        = errors.New("invalid input")
)
