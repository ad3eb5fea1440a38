package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/the-ivan/fintech-demo/internal/core"
	"github.com/the-ivan/fintech-demo/internal/port/input"
	"github.com/the-ivan/fintech-demo/internal/port/output"
)

// PaymentServiceImpl implements the PaymentService input port
type PaymentServiceImpl struct {
	paymentRepo output.PaymentRepository
	ledger      output.IdempotencyLedger
	paymentMsg  output.PaymentMessaging
	keyLocks    *keyMutex
}

// NewPaymentService creates a new payment service. paymentMsg may be a no-op
// publisher when no broker is configured.
func NewPaymentService(
	paymentRepo output.PaymentRepository,
	ledger output.IdempotencyLedger,
	paymentMsg output.PaymentMessaging,
) input.PaymentService {
	return &PaymentServiceImpl{
		paymentRepo: paymentRepo,
		ledger:      ledger,
		paymentMsg:  paymentMsg,
		keyLocks:    newKeyMutex(),
	}
}

// CreatePayment creates a new payment, or replays an existing one when the
// effective idempotency key is already bound to a matching request.
func (s *PaymentServiceImpl) CreatePayment(req core.PaymentRequest, headerIdempotencyKey string) (*core.Payment, error) {
	// Header-supplied key takes precedence over a key in the request body.
	req.IdempotencyKey = coalesce(headerIdempotencyKey, req.IdempotencyKey)

	validated, verrs := core.ValidateRequest(req)
	if verrs != nil {
		return nil, verrs
	}

	key := validated.IdempotencyKey
	if key == "" {
		// No key: every request is fresh and never deduplicated.
		return s.createPayment(validated)
	}

	// The read-check-then-write sequence below must be atomic per key, or
	// two concurrent retries could both mint a payment for the same key.
	s.keyLocks.Lock(key)
	defer s.keyLocks.Unlock(key)

	boundID, bound, err := s.ledger.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	if bound {
		existing, err := s.paymentRepo.GetByID(boundID)
		if err != nil {
			return nil, fmt.Errorf("failed to load payment bound to idempotency key: %w", err)
		}
		if !existing.Matches(validated) {
			return nil, core.ErrIdempotencyConflict
		}
		// Idempotent replay: same payment, no new write.
		return existing, nil
	}

	payment, err := s.createPayment(validated)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Bind(key, payment.ID); err != nil {
		return nil, fmt.Errorf("failed to bind idempotency key: %w", err)
	}
	return payment, nil
}

// createPayment mints an identifier, stores the payment and publishes the
// created event. The caller holds the key lock when a key is in play.
func (s *PaymentServiceImpl) createPayment(req core.PaymentRequest) (*core.Payment, error) {
	payment := &core.Payment{
		ID:             uuid.NewString(),
		Status:         core.PaymentStatusPending,
		Amount:         req.Amount,
		Currency:       req.Currency,
		State:          req.State,
		RecipientID:    req.RecipientID,
		Description:    req.Description,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
		Metadata:       req.Metadata,
	}

	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	// The payment is already stored, so a publish failure must not fail the
	// request; retries would replay the stored payment anyway.
	if err := s.paymentMsg.PublishPaymentCreated(payment.ID); err != nil {
		log.Printf("failed to publish payment.created for %s: %v", payment.ID, err)
	}

	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentServiceImpl) GetPayment(id string) (*core.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// coalesce returns the first non-empty value.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
