package core

import "errors"

var (
	// ErrIdempotencyConflict is returned when an idempotency key is reused
	// with a different amount, currency or recipient.
	ErrIdempotencyConflict = errors.New("idempotency key already used with different parameters")

	// ErrPaymentNotFound is returned when no payment exists for an identifier.
	ErrPaymentNotFound = errors.New("payment not found")
)
