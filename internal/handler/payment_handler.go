package handler

import (
	"net/http"

	"storefront-api/internal/model"
	"storefront-api/internal/service"
)

type PaymentHandler struct {
	service *service.PaymentService
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var payload model.PaymentIntentRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	secret, err := h.service.CreateIntent(r.Context(), payload.TotalAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	// The storefront checkout reads clientSecret at the top level, so this
	// route answers without the envelope. Errors still use it.
	writeJSON(w, http.StatusOK, model.PaymentIntentResponse{ClientSecret: secret})
}
