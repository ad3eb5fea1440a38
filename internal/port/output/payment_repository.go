package output

import (
	"github.com/the-ivan/fintech-demo/internal/core"
)

// PaymentRepository is an output port (secondary port) for payment data access
// Secondary adapters (in-memory and database implementations) will implement this
type PaymentRepository interface {
	// Create stores a new payment. Identifiers are unique, so a second
	// create with the same ID is a caller bug, not an upsert.
	Create(payment *core.Payment) error

	// GetByID retrieves a payment by its ID. Returns core.ErrPaymentNotFound
	// for unknown identifiers.
	GetByID(id string) (*core.Payment, error)
}

// IdempotencyLedger is an output port mapping idempotency keys to payment
// identifiers. Bindings are permanent: once a key maps to a payment it is
// never rebound or removed.
type IdempotencyLedger interface {
	// Get looks up the payment ID bound to key. ok is false when the key is
	// unbound.
	Get(key string) (paymentID string, ok bool, err error)

	// Bind binds key to paymentID. Callers serialize Bind against Get for
	// the same key; the ledger itself only guarantees map consistency.
	Bind(key, paymentID string) error
}
