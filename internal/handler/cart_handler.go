package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront-api/internal/model"
	"storefront-api/internal/service"
)

type CartHandler struct {
	service *service.CartService
}

func NewCartHandler(service *service.CartService) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.service.List(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, items, nil)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.AddToCartRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.service.Add(r.Context(), actor.ID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, item, nil)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateCartItemRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.service.Update(r.Context(), actor.ID, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, item, nil)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Remove(r.Context(), actor.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
