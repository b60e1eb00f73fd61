package handler

import (
	"log/slog"
	"net/http"
	"os"

	"storefront-api/internal/assets"
	"storefront-api/pkg/apierror"
)

// StaticHandler serves the prebuilt storefront bundle. Unknown GET paths get
// index.html so client-side routes survive a reload.
type StaticHandler struct {
	bundle *assets.Bundle
}

func NewStaticHandler(root string) *StaticHandler {
	bundle, err := assets.NewBundle(root)
	if err != nil {
		slog.Warn("static bundle disabled", "root", root, "error", err)
	}

	return &StaticHandler{bundle: bundle}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, apierror.NotFound("route not found", r.Method+" "+r.URL.Path))
		return
	}

	if h.bundle != nil {
		if file, ok := h.bundle.Resolve(r.URL.Path); ok && serveFile(w, r, file) {
			return
		}
		if index, ok := h.bundle.Index(); ok && serveFile(w, r, index) {
			return
		}
	}

	writeError(w, apierror.NotFound("route not found", r.URL.Path))
}

func serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
