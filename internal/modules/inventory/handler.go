package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/modules/access"
	"github.com/llanterasoft/pos-panel/internal/modules/catalog"
)

// Handler exposes the inventory screen endpoints. Filtering arrives as a
// POST body because the filter set is structured, matching the screen's
// filter modal. Mutations are guarded per action even though the view-model
// already hides the controls.
type Handler struct {
	service Service
	gate    *access.Gate
}

func NewHandler(service Service, gate *access.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Get("/", h.list)              // GET    /api/v1/inventory
		r.Post("/search", h.search)     // POST   /api/v1/inventory/search
		r.Get("/stats", h.stats)        // GET    /api/v1/inventory/stats

		r.With(h.gate.Require(access.ModuleInventory, access.ActionCreate)).
			Post("/", h.create)         // POST   /api/v1/inventory
		r.With(h.gate.Require(access.ModuleInventory, access.ActionEdit)).
			Put("/{id}", h.update)      // PUT    /api/v1/inventory/{id}
		r.With(h.gate.Require(access.ModuleInventory, access.ActionDelete)).
			Delete("/{id}", h.remove)   // DELETE /api/v1/inventory/{id}?confirm=true
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), FilterSet{})
	if err != nil {
		fail(w, err)
		return
	}
	if items == nil {
		items = []catalog.Item{}
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	var f FilterSet
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	items, err := h.service.List(r.Context(), f)
	if err != nil {
		fail(w, err)
		return
	}
	if items == nil {
		items = []catalog.Item{}
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, stats)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.ProductID = nil
	item, err := h.service.Save(r.Context(), req)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.ProductID = &id
	item, err := h.service.Save(r.Context(), req)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.service.Delete(r.Context(), id, confirm); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrConfirmationRequired):
		code = http.StatusConflict
	case errors.Is(err, backend.ErrSessionExpired):
		code = http.StatusUnauthorized
	case strings.Contains(err.Error(), "required"), strings.Contains(err.Error(), "must be"),
		strings.Contains(err.Error(), "cannot be"):
		code = http.StatusBadRequest
	default:
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
