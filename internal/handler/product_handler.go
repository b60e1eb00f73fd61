package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront-api/internal/model"
	"storefront-api/internal/service"
)

type ProductHandler struct {
	service *service.CatalogService
}

func NewProductHandler(service *service.CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List accepts category and brand as comma lists plus _sort, _order, _page and _limit.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	query := r.URL.Query()
	q := model.ProductQuery{
		Categories: splitList(query.Get("category")),
		Brands:     splitList(query.Get("brand")),
		Sort:       strings.TrimSpace(query.Get("_sort")),
		Order:      strings.TrimSpace(query.Get("_order")),
		Page:       parseIntOrDefault(query.Get("_page"), 1),
		Limit:      parseIntOrDefault(query.Get("_limit"), 0),
	}

	list, err := h.service.ListProducts(r.Context(), actor, q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, list.Items, list.Total, q.Page, q.Limit)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.service.GetProduct(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product, nil)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreateProductRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), actor, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, product, nil)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateProductRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), actor, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product, nil)
}
