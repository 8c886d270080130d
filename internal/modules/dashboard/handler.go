package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/llanterasoft/pos-panel/internal/backend"
)

// Handler exposes the dashboard widgets.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Get("/stats", h.stats)                // GET /api/v1/dashboard/stats
		r.Get("/top-products", h.topProducts)   // GET /api/v1/dashboard/top-products?limit=5
		r.Get("/recent-sales", h.recentSales)   // GET /api/v1/dashboard/recent-sales?limit=5
		r.Get("/low-stock", h.lowStock)         // GET /api/v1/dashboard/low-stock
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, stats)
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	top, err := h.service.TopProducts(r.Context(), limitParam(r, 5))
	if err != nil {
		fail(w, err)
		return
	}
	if top == nil {
		top = []TopProduct{}
	}
	respond(w, http.StatusOK, top)
}

func (h *Handler) recentSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.RecentSales(r.Context(), limitParam(r, 5))
	if err != nil {
		fail(w, err)
		return
	}
	if sales == nil {
		sales = []backend.Sale{}
	}
	respond(w, http.StatusOK, sales)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.LowStockItems(r.Context(), limitParam(r, 0))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, items)
}

func limitParam(r *http.Request, fallback int) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, backend.ErrSessionExpired) {
		code = http.StatusUnauthorized
	} else {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			code = http.StatusBadGateway
		}
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
