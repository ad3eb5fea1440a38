package core

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func validRequest() PaymentRequest {
	return PaymentRequest{
		Amount:      decimal.RequireFromString("100.00"),
		Currency:    CurrencyUSD,
		State:       "CA",
		RecipientID: "user-123",
	}
}

func hasKind(errs ValidationErrors, kind RejectionKind) bool {
	for _, fe := range errs {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}

func TestValidateRequest_Valid(t *testing.T) {
	normalized, errs := ValidateRequest(validRequest())
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if normalized.State != "CA" {
		t.Fatalf("expected state CA, got %q", normalized.State)
	}
	if normalized.Metadata == nil {
		t.Fatalf("expected metadata defaulted to empty map")
	}
}

func TestValidateRequest_NormalizesState(t *testing.T) {
	req := validRequest()
	req.State = "ca"

	normalized, errs := ValidateRequest(req)
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if normalized.State != "CA" {
		t.Fatalf("expected state normalized to CA, got %q", normalized.State)
	}
}

func TestValidateRequest_DefaultsCurrency(t *testing.T) {
	req := validRequest()
	req.Currency = ""

	normalized, errs := ValidateRequest(req)
	if errs != nil {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if normalized.Currency != CurrencyUSD {
		t.Fatalf("expected currency defaulted to USD, got %q", normalized.Currency)
	}
}

func TestValidateRequest_Amount(t *testing.T) {
	tests := []struct {
		amount string
		kind   RejectionKind // empty means accepted
	}{
		{amount: "10.00"},
		{amount: "10.10"},
		{amount: "10.1"},
		{amount: "1000000.00"},
		{amount: "10.001", kind: RejectionAmountPrecision},
		{amount: "10.000", kind: RejectionAmountPrecision},
		{amount: "1000001.00", kind: RejectionAmountOutOfRange},
		{amount: "-10.00", kind: RejectionAmountOutOfRange},
		{amount: "0", kind: RejectionAmountOutOfRange},
	}

	for _, tt := range tests {
		req := validRequest()
		req.Amount = decimal.RequireFromString(tt.amount)

		_, errs := ValidateRequest(req)
		if tt.kind == "" {
			if errs != nil {
				t.Fatalf("amount %q: unexpected errors: %v", tt.amount, errs)
			}
			continue
		}
		if !hasKind(errs, tt.kind) {
			t.Fatalf("amount %q: expected kind %s, got %v", tt.amount, tt.kind, errs)
		}
	}
}

func TestValidateRequest_Currency(t *testing.T) {
	for _, currency := range []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP} {
		req := validRequest()
		req.Currency = currency
		if _, errs := ValidateRequest(req); errs != nil {
			t.Fatalf("currency %q: unexpected errors: %v", currency, errs)
		}
	}

	req := validRequest()
	req.Currency = "BTC"
	_, errs := ValidateRequest(req)
	if !hasKind(errs, RejectionInvalidCurrency) {
		t.Fatalf("expected INVALID_CURRENCY, got %v", errs)
	}
}

func TestValidateRequest_RestrictedState(t *testing.T) {
	for _, state := range []string{"NY", "ny", "Ny"} {
		req := validRequest()
		req.State = state

		_, errs := ValidateRequest(req)
		if !hasKind(errs, RejectionStateRestricted) {
			t.Fatalf("state %q: expected STATE_RESTRICTED, got %v", state, errs)
		}
		if !strings.Contains(errs.Error(), "Pending regulatory approval.") {
			t.Fatalf("state %q: expected registry reason in message, got %v", state, errs)
		}
	}
}

func TestValidateRequest_StateFormat(t *testing.T) {
	for _, state := range []string{"", "C", "CAL"} {
		req := validRequest()
		req.State = state

		_, errs := ValidateRequest(req)
		if !hasKind(errs, RejectionInvalidStateFormat) {
			t.Fatalf("state %q: expected INVALID_STATE_FORMAT, got %v", state, errs)
		}
	}
}

func TestValidateRequest_RecipientID(t *testing.T) {
	for _, id := range []string{"user-123", "user_123", "user-123-abc", "a", "ABC123"} {
		req := validRequest()
		req.RecipientID = id
		if _, errs := ValidateRequest(req); errs != nil {
			t.Fatalf("recipient %q: unexpected errors: %v", id, errs)
		}
	}

	invalid := []string{"user@123", "user@123!", "", "---", strings.Repeat("a", 65)}
	for _, id := range invalid {
		req := validRequest()
		req.RecipientID = id

		_, errs := ValidateRequest(req)
		if !hasKind(errs, RejectionInvalidRecipient) {
			t.Fatalf("recipient %q: expected INVALID_RECIPIENT, got %v", id, errs)
		}
	}
}

func TestValidateRequest_DescriptionTooLong(t *testing.T) {
	req := validRequest()
	req.Description = strings.Repeat("x", 257)

	_, errs := ValidateRequest(req)
	if !hasKind(errs, RejectionDescriptionTooLong) {
		t.Fatalf("expected DESCRIPTION_TOO_LONG, got %v", errs)
	}
}

func TestValidateRequest_IdempotencyKeyTooLong(t *testing.T) {
	req := validRequest()
	req.IdempotencyKey = strings.Repeat("k", 65)

	_, errs := ValidateRequest(req)
	if !hasKind(errs, RejectionIdempotencyKeyTooLong) {
		t.Fatalf("expected IDEMPOTENCY_KEY_TOO_LONG, got %v", errs)
	}
}

func TestValidateRequest_CollectsAllFailures(t *testing.T) {
	req := PaymentRequest{
		Amount:      decimal.RequireFromString("-1.001"),
		Currency:    "BTC",
		State:       "nyc",
		RecipientID: "user@123",
	}

	_, errs := ValidateRequest(req)
	for _, kind := range []RejectionKind{
		RejectionAmountOutOfRange,
		RejectionAmountPrecision,
		RejectionInvalidCurrency,
		RejectionInvalidStateFormat,
		RejectionInvalidRecipient,
	} {
		if !hasKind(errs, kind) {
			t.Fatalf("expected kind %s in collected failures, got %v", kind, errs)
		}
	}
}
