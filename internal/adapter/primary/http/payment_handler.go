package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/the-ivan/fintech-demo/internal/core"
	"github.com/the-ivan/fintech-demo/internal/port/input"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
// A header key overrides one embedded in the request body.
const HeaderIdempotencyKey = "X-Idempotency-Key"

// PaymentHandler is a primary adapter (HTTP handler)
type PaymentHandler struct {
	paymentService input.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService input.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreatePaymentRequest represents the HTTP request to create a payment.
// Amount is a decimal string on the wire, e.g. "100.00".
type CreatePaymentRequest struct {
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	State          string            `json:"state"`
	RecipientID    string            `json:"recipient_id"`
	Description    string            `json:"description"`
	IdempotencyKey string            `json:"idempotency_key"`
	Metadata       map[string]string `json:"metadata"`
}

// PaymentResponse represents the HTTP response for a payment
type PaymentResponse struct {
	PaymentID      string            `json:"payment_id"`
	Status         string            `json:"status"`
	Amount         string            `json:"amount"`
	Currency       string            `json:"currency"`
	State          string            `json:"state"`
	RecipientID    string            `json:"recipient_id"`
	Description    string            `json:"description,omitempty"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	CreatedAt      string            `json:"created_at"`
	Metadata       map[string]string `json:"metadata"`
}

// ErrorResponse is the error body for every failure surfaced to clients.
type ErrorResponse struct {
	ErrorCode string      `json:"error_code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// CreatePayment handles payment creation
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			ErrorCode: "VALIDATION_ERROR",
			Message:   "Invalid request body",
		})
	}

	serviceReq := core.PaymentRequest{
		Amount:         req.Amount,
		Currency:       core.Currency(req.Currency),
		State:          req.State,
		RecipientID:    req.RecipientID,
		Description:    req.Description,
		IdempotencyKey: req.IdempotencyKey,
		Metadata:       req.Metadata,
	}

	payment, err := h.paymentService.CreatePayment(serviceReq, c.Request().Header.Get(HeaderIdempotencyKey))
	if err != nil {
		var verrs core.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				ErrorCode: "VALIDATION_ERROR",
				Message:   "Request validation failed",
				Details:   map[string]interface{}{"errors": verrs},
			})
		case errors.Is(err, core.ErrIdempotencyConflict):
			return c.JSON(http.StatusConflict, ErrorResponse{
				ErrorCode: "IDEMPOTENCY_CONFLICT",
				Message:   "Idempotency key already used with different parameters",
			})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{
				ErrorCode: "INTERNAL_ERROR",
				Message:   "Failed to create payment",
			})
		}
	}

	// Idempotent replays return 201 as well, matching the fresh-create path.
	return c.JSON(http.StatusCreated, toResponse(payment))
}

// GetPayment handles payment retrieval by ID
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	payment, err := h.paymentService.GetPayment(c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				ErrorCode: "NOT_FOUND",
				Message:   "Payment not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			ErrorCode: "INTERNAL_ERROR",
			Message:   "Failed to retrieve payment",
		})
	}

	return c.JSON(http.StatusOK, toResponse(payment))
}

// HealthCheck reports service liveness.
func (h *PaymentHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func toResponse(p *core.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.ID,
		Status:         string(p.Status),
		Amount:         p.Amount.StringFixed(2),
		Currency:       string(p.Currency),
		State:          p.State,
		RecipientID:    p.RecipientID,
		Description:    p.Description,
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		Metadata:       p.Metadata,
	}
}
