package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront-api/internal/model"
	"storefront-api/internal/service"
	"storefront-api/pkg/apierror"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Own(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.service.Profile(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile, nil)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, apierror.BadRequest("user id is required", "id"))
		return
	}

	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateUserRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), actor, userID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile, nil)
}
