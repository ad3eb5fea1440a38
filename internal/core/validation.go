package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// RejectionKind is the machine-readable kind of a field-level validation
// failure.
type RejectionKind string

const (
	RejectionAmountOutOfRange      RejectionKind = "AMOUNT_OUT_OF_RANGE"
	RejectionAmountPrecision       RejectionKind = "AMOUNT_PRECISION"
	RejectionInvalidCurrency       RejectionKind = "INVALID_CURRENCY"
	RejectionInvalidStateFormat    RejectionKind = "INVALID_STATE_FORMAT"
	RejectionStateRestricted       RejectionKind = "STATE_RESTRICTED"
	RejectionInvalidRecipient      RejectionKind = "INVALID_RECIPIENT"
	RejectionDescriptionTooLong    RejectionKind = "DESCRIPTION_TOO_LONG"
	RejectionIdempotencyKeyTooLong RejectionKind = "IDEMPOTENCY_KEY_TOO_LONG"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string        `json:"field"`
	Kind    RejectionKind `json:"kind"`
	Message string        `json:"message"`
}

// ValidationErrors aggregates every field-level failure found in a request.
// All checks run; callers receive the full list, not just the first failure.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

const (
	maxDescriptionLen    = 256
	maxIdempotencyKeyLen = 64
	maxRecipientIDLen    = 64
)

var maxAmount = decimal.NewFromInt(1_000_000)

var alnumPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidateRequest checks a payment request against amount, currency, state and
// recipient rules. On success it returns the normalized request: state
// uppercased, empty currency defaulted to USD, nil metadata replaced with an
// empty map. On failure it returns every failed check as a ValidationErrors
// list. No side effects either way.
func ValidateRequest(req PaymentRequest) (PaymentRequest, ValidationErrors) {
	var errs ValidationErrors

	if req.Amount.LessThanOrEqual(decimal.Zero) || req.Amount.GreaterThan(maxAmount) {
		errs = append(errs, FieldError{
			Field:   "amount",
			Kind:    RejectionAmountOutOfRange,
			Message: "amount must be greater than 0 and at most 1000000",
		})
	}
	// The exponent of the parsed decimal reflects the exact input
	// representation, so "10.001" fails here while "10.10" passes.
	if req.Amount.Exponent() < -2 {
		errs = append(errs, FieldError{
			Field:   "amount",
			Kind:    RejectionAmountPrecision,
			Message: "amount cannot have more than 2 decimal places",
		})
	}

	currency := req.Currency
	if currency == "" {
		currency = CurrencyUSD
	}
	if !currency.IsSupported() {
		errs = append(errs, FieldError{
			Field:   "currency",
			Kind:    RejectionInvalidCurrency,
			Message: fmt.Sprintf("currency %q is not supported (USD, EUR, GBP)", req.Currency),
		})
	}

	state := strings.ToUpper(req.State)
	if len(state) != 2 {
		errs = append(errs, FieldError{
			Field:   "state",
			Kind:    RejectionInvalidStateFormat,
			Message: "state must be a 2-letter code",
		})
	}
	if reason, restricted := RestrictedStates[state]; restricted {
		errs = append(errs, FieldError{
			Field:   "state",
			Kind:    RejectionStateRestricted,
			Message: fmt.Sprintf("Service unavailable in %s: %s", state, reason),
		})
	}

	if len(req.RecipientID) < 1 || len(req.RecipientID) > maxRecipientIDLen {
		errs = append(errs, FieldError{
			Field:   "recipient_id",
			Kind:    RejectionInvalidRecipient,
			Message: "recipient_id must be between 1 and 64 characters",
		})
	} else {
		stripped := strings.ReplaceAll(strings.ReplaceAll(req.RecipientID, "-", ""), "_", "")
		if !alnumPattern.MatchString(stripped) {
			errs = append(errs, FieldError{
				Field:   "recipient_id",
				Kind:    RejectionInvalidRecipient,
				Message: "recipient_id must be alphanumeric (hyphens and underscores allowed)",
			})
		}
	}

	if len(req.Description) > maxDescriptionLen {
		errs = append(errs, FieldError{
			Field:   "description",
			Kind:    RejectionDescriptionTooLong,
			Message: "description cannot exceed 256 characters",
		})
	}

	if len(req.IdempotencyKey) > maxIdempotencyKeyLen {
		errs = append(errs, FieldError{
			Field:   "idempotency_key",
			Kind:    RejectionIdempotencyKeyTooLong,
			Message: "idempotency key cannot exceed 64 characters",
		})
	}

	if errs != nil {
		return PaymentRequest{}, errs
	}

	normalized := req
	normalized.Currency = currency
	normalized.State = state
	if normalized.Metadata == nil {
		normalized.Metadata = map[string]string{}
	}
	return normalized, nil
}
