package catalog

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

var handlerLog = log.With().Str("module", "catalog").Logger()

// Handler serves product lookups from a Lookup.
type Handler struct {
	lookup Lookup
}

// NewHandler wraps l.
func NewHandler(l Lookup) *Handler {
	return &Handler{lookup: l}
}

// Router returns a router with the product route and a health check.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(ProductPath, h.Product).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

// Product handles GET /api/vr/product?code=.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	code := NormalizeCode(r.URL.Query().Get("code"))
	if code == "" {
		writeJSON(w, http.StatusBadRequest, productResponse{Error: "Missing code"})
		return
	}
	p, err := h.lookup.Lookup(r.Context(), code)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, productResponse{Product: p})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, productResponse{Error: "Not found"})
	case errors.Is(err, ErrEmptyCode):
		writeJSON(w, http.StatusBadRequest, productResponse{Error: "Missing code"})
	default:
		handlerLog.Error().Err(err).Str("code", code).Msg("lookup failed")
		writeJSON(w, http.StatusInternalServerError, productResponse{Error: "Lookup failed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
