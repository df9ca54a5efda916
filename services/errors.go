package services

import "errors"

// Error taxonomy surfaced to controllers, which map each to a status code and
// a {success:false, message} body.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUpstream          = errors.New("upstream gateway failure")
)
