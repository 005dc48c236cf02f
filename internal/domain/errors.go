package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized indicates a missing, invalid, or expired credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates an authenticated actor without entitlement.
	ErrForbidden = errors.New("forbidden")
	// ErrEmptyCart indicates checkout was attempted on a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidOrderState indicates an order is not in the state an
	// operation requires, or a disallowed status transition was requested.
	ErrInvalidOrderState = errors.New("invalid order state")
	// ErrInsufficientStock indicates an order line exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrUpstream indicates the payment processor rejected a call.
	ErrUpstream = errors.New("payment provider error")
)

// Validationf wraps ErrValidation with a human-readable reason so handlers
// can surface the message while matching on the sentinel.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
