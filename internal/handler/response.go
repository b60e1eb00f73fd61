package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"storefront-api/internal/middleware"
	"storefront-api/internal/model"
	"storefront-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	writeJSON(w, status, model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// writeList is writeSuccess for paginated listings; total also goes out as X-Total-Count.
func writeList(w http.ResponseWriter, data any, total int64, page int, limit int) {
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))

	var meta *model.Meta
	if limit > 0 {
		meta = model.NewMeta(page, limit, total)
	}
	writeSuccess(w, http.StatusOK, data, meta)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Something went wrong!",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, model.ErrInternal) {
		slog.Error("internal error", "error", err.Error())
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid credentials"
	} else if errors.Is(err, model.ErrUnauthenticated) || errors.Is(err, model.ErrInvalidToken) ||
		errors.Is(err, model.ErrSessionNotFound) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Unauthorized"
	} else if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Access denied"
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	} else if errors.Is(err, model.ErrUserAlreadyExists) {
		status = http.StatusConflict
		body.Code = "ALREADY_EXISTS"
		body.Message = "User already exists"
	} else if errors.Is(err, model.ErrProductNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Product not found"
	} else if errors.Is(err, model.ErrCartItemNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Cart item not found"
	} else if errors.Is(err, model.ErrOrderNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Order not found"
	} else if errors.Is(err, model.ErrOutOfStock) {
		status = http.StatusConflict
		body.Code = "OUT_OF_STOCK"
		body.Message = "Insufficient stock"
		body.Details = detailOf(err, model.ErrOutOfStock)
	} else if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
		body.Details = detailOf(err, model.ErrInvalidInput)
	} else {
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

// detailOf strips the sentinel prefix from a "%w: detail" error.
func detailOf(err error, sentinel error) string {
	detail := strings.TrimPrefix(err.Error(), sentinel.Error())
	return strings.TrimSpace(strings.TrimPrefix(detail, ":"))
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierror.BadRequest("invalid JSON body", "")
	}
	return nil
}

// actorFromRequest is the identity attached by the token gate.
func actorFromRequest(r *http.Request) (model.Identity, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return model.Identity{}, model.ErrUnauthenticated
	}
	return identity, nil
}

func parseIntOrDefault(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
