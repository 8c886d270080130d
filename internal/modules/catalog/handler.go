package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/llanterasoft/pos-panel/internal/backend"
)

// Handler exposes the catalog snapshot to the sales screen.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/", h.search)               // GET  /api/v1/catalog?modelo=&marca=&medida=
		r.Get("/filters", h.filters)       // GET  /api/v1/catalog/filters
		r.Post("/reload", h.reload)        // POST /api/v1/catalog/reload
	})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.service.Search(Filter{
		Model: q.Get("modelo"),
		Brand: q.Get("marca"),
		Size:  q.Get("medida"),
	})
	if items == nil {
		items = []Item{}
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) filters(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string][]string{
		"marcas":  h.service.Brands(),
		"medidas": h.service.Sizes(),
	})
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reload(r.Context()); err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, backend.ErrSessionExpired) {
			code = http.StatusUnauthorized
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, h.service.Items())
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
