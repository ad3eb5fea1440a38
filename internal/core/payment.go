package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Currency represents supported currencies
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// IsSupported reports whether the currency is one of the enumerated set.
func (c Currency) IsSupported() bool {
	return c == CurrencyUSD || c == CurrencyEUR || c == CurrencyGBP
}

// RestrictedStates maps US state codes to the reason payment intake is
// administratively disabled there.
var RestrictedStates = map[string]string{
	"NY": "Pending regulatory approval.",
}

// PaymentRequest carries the caller's intake parameters. It is validated and
// normalized before a Payment is built from it; it is never persisted.
type PaymentRequest struct {
	Amount         decimal.Decimal
	Currency       Currency
	State          string
	RecipientID    string
	Description    string
	IdempotencyKey string
	Metadata       map[string]string
}

// Payment represents a recorded payment intake. Payments are immutable after
// creation; there is no update operation.
type Payment struct {
	ID             string
	Status         PaymentStatus
	Amount         decimal.Decimal
	Currency       Currency
	State          string
	RecipientID    string
	Description    string
	IdempotencyKey string
	CreatedAt      time.Time
	Metadata       map[string]string
}

// Matches reports whether the request carries the same amount, currency and
// recipient as the payment. Amounts are compared as decimals, so "100.0" and
// "100.00" match.
func (p *Payment) Matches(req PaymentRequest) bool {
	return p.Amount.Equal(req.Amount) &&
		p.Currency == req.Currency &&
		p.RecipientID == req.RecipientID
}

// IsPending checks if payment is in pending status
func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}
