package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/the-ivan/fintech-demo/internal/constant/model/db"
	"github.com/the-ivan/fintech-demo/internal/core"
	"gorm.io/gorm"
)

// GormPaymentRepository is a secondary adapter that implements the
// PaymentRepository and IdempotencyLedger output ports on Postgres. It lets a
// durable store swap in for the in-memory maps without touching the core.
type GormPaymentRepository struct {
	gormDB *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository
func NewGormPaymentRepository(gormDB *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{gormDB: gormDB}
}

// toCore converts db.Payment to core.Payment
func toCore(p *db.Payment) (*core.Payment, error) {
	metadata := map[string]string{}
	if p.Metadata != "" {
		if err := json.Unmarshal([]byte(p.Metadata), &metadata); err != nil {
			return nil, fmt.Errorf("failed to decode payment metadata: %w", err)
		}
	}
	return &core.Payment{
		ID:             p.ID,
		Status:         core.PaymentStatus(p.Status),
		Amount:         p.Amount,
		Currency:       core.Currency(p.Currency),
		State:          p.State,
		RecipientID:    p.RecipientID,
		Description:    p.Description,
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      p.CreatedAt,
		Metadata:       metadata,
	}, nil
}

// fromCore converts core.Payment to db.Payment
func fromCore(p *core.Payment) (*db.Payment, error) {
	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment metadata: %w", err)
	}
	return &db.Payment{
		ID:             p.ID,
		Status:         string(p.Status),
		Amount:         p.Amount,
		Currency:       string(p.Currency),
		State:          p.State,
		RecipientID:    p.RecipientID,
		Description:    p.Description,
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      p.CreatedAt,
		Metadata:       string(metadata),
	}, nil
}

// Create creates a new payment
func (r *GormPaymentRepository) Create(payment *core.Payment) error {
	dbPayment, err := fromCore(payment)
	if err != nil {
		return err
	}
	if err := r.gormDB.Create(dbPayment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its ID
func (r *GormPaymentRepository) GetByID(id string) (*core.Payment, error) {
	var dbPayment db.Payment
	if err := r.gormDB.Where("id = ?", id).First(&dbPayment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return toCore(&dbPayment)
}

// Get looks up the payment ID bound to an idempotency key.
func (r *GormPaymentRepository) Get(key string) (string, bool, error) {
	var binding db.IdempotencyBinding
	if err := r.gormDB.Where("key = ?", key).First(&binding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	return binding.PaymentID, true, nil
}

// Bind binds an idempotency key to a payment ID. The key is the table's
// primary key, so a racing duplicate insert fails instead of rebinding.
func (r *GormPaymentRepository) Bind(key, paymentID string) error {
	binding := db.IdempotencyBinding{Key: key, PaymentID: paymentID}
	if err := r.gormDB.Create(&binding).Error; err != nil {
		return fmt.Errorf("failed to bind idempotency key: %w", err)
	}
	return nil
}
