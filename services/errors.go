package services

import "errors"

// Error taxonomy of the order/cart/customization core. Callers branch with
// errors.Is; anything that matches none of these sentinels is an unexpected
// persistence or collaborator failure and maps to HTTP 500.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidValue     = errors.New("invalid value")
	ErrInvalidMethod    = errors.New("invalid payment method")
	ErrInvalidType      = errors.New("invalid item type")
	ErrInvalidSignature = errors.New("invalid payment signature")
)
