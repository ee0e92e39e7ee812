package domain

import "errors"

// Error kinds surfaced by services. The HTTP layer maps each kind to a
// status code; repositories wrap driver failures as ErrStoreUnavailable.
var (
	ErrInvalidReference  = errors.New("unknown or deleted catalog reference")
	ErrEmptyCart         = errors.New("request contains no line items")
	ErrInvalidTransition = errors.New("transaction status does not permit this action")
	ErrUnauthorized      = errors.New("actor is not authorized for this action")
	ErrNotFound          = errors.New("record not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
