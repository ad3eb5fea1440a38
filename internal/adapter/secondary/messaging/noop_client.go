package messaging

import "github.com/the-ivan/fintech-demo/internal/port/output"

// NoopClient implements PaymentMessaging without a broker. Used when no
// RABBITMQ_URL is configured and in tests.
type NoopClient struct{}

// NewNoopClient creates a publisher that discards every message.
func NewNoopClient() output.PaymentMessaging {
	return NoopClient{}
}

func (NoopClient) PublishPaymentCreated(paymentID string) error { return nil }

func (NoopClient) Close() error { return nil }
