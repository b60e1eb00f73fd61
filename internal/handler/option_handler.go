package handler

import (
	"context"
	"net/http"

	"storefront-api/internal/model"
	"storefront-api/internal/service"
)

// OptionHandler serves one sidebar filter list (categories or brands).
type OptionHandler struct {
	list   func(ctx context.Context) ([]model.Option, error)
	create func(ctx context.Context, actor model.Identity, req model.CreateOptionRequest) (model.Option, error)
}

func NewCategoryHandler(catalog *service.CatalogService) *OptionHandler {
	return &OptionHandler{list: catalog.ListCategories, create: catalog.CreateCategory}
}

func NewBrandHandler(catalog *service.CatalogService) *OptionHandler {
	return &OptionHandler{list: catalog.ListBrands, create: catalog.CreateBrand}
}

func (h *OptionHandler) List(w http.ResponseWriter, r *http.Request) {
	options, err := h.list(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, options, nil)
}

func (h *OptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreateOptionRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	option, err := h.create(r.Context(), actor, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, option, nil)
}
