package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront-api/internal/model"
	"storefront-api/internal/service"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreateOrderRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.service.Place(r.Context(), actor, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, order, nil)
}

func (h *OrderHandler) Own(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	orders, err := h.service.ListOwn(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, orders, nil)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	query := r.URL.Query()
	q := model.OrderQuery{
		Sort:  strings.TrimSpace(query.Get("_sort")),
		Order: strings.TrimSpace(query.Get("_order")),
		Page:  parseIntOrDefault(query.Get("_page"), 1),
		Limit: parseIntOrDefault(query.Get("_limit"), 0),
	}

	list, err := h.service.ListAll(r.Context(), actor, q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, list.Items, list.Total, q.Page, q.Limit)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateOrderRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, order, nil)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
