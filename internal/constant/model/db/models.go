package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment represents a payment entity in the database. Rows are insert-only;
// payments never change after creation.
type Payment struct {
	ID             string          `gorm:"type:uuid;primary_key" json:"id"`
	Status         string          `gorm:"type:varchar(20);not null" json:"status"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency       string          `gorm:"type:varchar(3);not null" json:"currency"`
	State          string          `gorm:"type:varchar(2);not null" json:"state"`
	RecipientID    string          `gorm:"type:varchar(64);not null" json:"recipient_id"`
	Description    string          `gorm:"type:varchar(256)" json:"description"`
	IdempotencyKey string          `gorm:"type:varchar(64)" json:"idempotency_key"`
	CreatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	Metadata       string          `gorm:"type:text" json:"metadata"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate is a GORM hook that runs before creating a record
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return nil
}

// IdempotencyBinding maps an idempotency key to the payment it created. The
// key is the primary key, so a binding can never point at two payments.
type IdempotencyBinding struct {
	Key       string    `gorm:"type:varchar(64);primary_key" json:"key"`
	PaymentID string    `gorm:"type:uuid;not null" json:"payment_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName specifies the table name for GORM
func (IdempotencyBinding) TableName() string {
	return "idempotency_bindings"
}
