package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront-api/pkg/apierror"
)

type pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Health(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			writeError(w, apierror.New("UNAVAILABLE", "database unavailable", "", http.StatusServiceUnavailable))
			return
		}
	}

	writeSuccess(w, http.StatusOK, map[string]any{"status": "ok"}, nil)
}
