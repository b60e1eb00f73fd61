package service

import (
	"context"
	"log/slog"
	"net/http"

	"storefront-api/internal/metrics"
	"storefront-api/internal/payment"
	"storefront-api/pkg/apierror"
)

// PaymentService forwards the client's amount to the processor as-is.
// TODO: check totalAmount against the caller's order total once payment
// intents are tied to orders.
type PaymentService struct {
	processor payment.Processor
}

func NewPaymentService(processor payment.Processor) *PaymentService {
	return &PaymentService{processor: processor}
}

func (s *PaymentService) CreateIntent(ctx context.Context, totalAmount int64) (string, error) {
	if totalAmount <= 0 {
		metrics.RecordPaymentIntent("rejected")
		return "", apierror.BadRequest("totalAmount must be a positive integer", "totalAmount")
	}

	secret, err := s.processor.CreatePaymentIntent(ctx, totalAmount, payment.CurrencyINR)
	if err != nil {
		metrics.RecordPaymentIntent("error")
		slog.Error("payment intent failed", "error", err, "amount", totalAmount)
		return "", apierror.New("PAYMENT_FAILED", "payment processor error", "", http.StatusBadGateway)
	}

	metrics.RecordPaymentIntent("created")
	return secret, nil
}
