package memory

import (
	"sync"

	"github.com/the-ivan/fintech-demo/internal/core"
)

// PaymentRepository is a secondary adapter keeping payments and idempotency
// bindings in process memory. It implements both the PaymentRepository and
// IdempotencyLedger output ports, which lets the demo deployment run without
// a database.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*core.Payment
	bindings map[string]string
}

// NewPaymentRepository creates an empty in-memory repository.
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[string]*core.Payment),
		bindings: make(map[string]string),
	}
}

// Create stores a new payment. A copy is stored so callers cannot mutate the
// record after creation.
func (r *PaymentRepository) Create(payment *core.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clonePayment(payment)
	r.payments[stored.ID] = stored
	return nil
}

// GetByID retrieves a payment by its ID.
func (r *PaymentRepository) GetByID(id string) (*core.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, core.ErrPaymentNotFound
	}
	return clonePayment(p), nil
}

// Get looks up the payment ID bound to an idempotency key.
func (r *PaymentRepository) Get(key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bindings[key]
	return id, ok, nil
}

// Bind binds an idempotency key to a payment ID.
func (r *PaymentRepository) Bind(key, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[key] = paymentID
	return nil
}

// Len reports the number of stored payments.
func (r *PaymentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.payments)
}

func clonePayment(p *core.Payment) *core.Payment {
	c := *p
	if p.Metadata != nil {
		c.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}
