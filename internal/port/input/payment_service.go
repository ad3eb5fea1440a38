package input

import (
	"github.com/the-ivan/fintech-demo/internal/core"
)

// PaymentService is an input port (primary port) for payment operations
// Primary adapters (HTTP handlers) will use this
type PaymentService interface {
	// CreatePayment validates the request, applies idempotency rules and
	// records a new payment. headerIdempotencyKey, when non-empty, takes
	// precedence over the key embedded in the request body.
	CreatePayment(req core.PaymentRequest, headerIdempotencyKey string) (*core.Payment, error)

	// GetPayment retrieves a payment by ID
	GetPayment(id string) (*core.Payment, error)
}
