package output

// PaymentMessaging is an output port (secondary port) for payment messaging
// Secondary adapters (RabbitMQ implementations) will implement this
type PaymentMessaging interface {
	// PublishPaymentCreated publishes a payment.created notification
	PublishPaymentCreated(paymentID string) error
	// Close closes the messaging connection
	Close() error
}
