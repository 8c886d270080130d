package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/modules/access"
)

// Handler exposes the cart over HTTP for the sales screen. Checkout is the
// sale-creating action, so it carries the per-action guard.
type Handler struct {
	service Service
	gate    *access.Gate
}

func NewHandler(service Service, gate *access.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.summary)             // GET    /api/v1/cart
		r.Post("/items", h.add)           // POST   /api/v1/cart/items
		r.Patch("/items/{id}", h.change)  // PATCH  /api/v1/cart/items/{id}
		r.Delete("/items/{id}", h.remove) // DELETE /api/v1/cart/items/{id}
		r.Delete("/", h.clear)            // DELETE /api/v1/cart?confirm=true

		r.With(h.gate.Require(access.ModuleSales, access.ActionCreate)).
			Post("/checkout", h.checkout) // POST /api/v1/cart/checkout
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.service.Summary())
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64 `json:"id_producto"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	summary, err := h.service.Add(req.ProductID)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, summary)
}

func (h *Handler) change(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	summary, err := h.service.ChangeQuantity(id, req.Delta)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, summary)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	summary, err := h.service.Remove(id)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, summary)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	confirm := r.URL.Query().Get("confirm") == "true"
	summary, err := h.service.Clear(confirm)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, summary)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerCI *int64 `json:"ci"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	receipt, err := h.service.Checkout(r.Context(), req.CustomerCI)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, receipt)
}

func fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrLineNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrOutOfStock), errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrConfirmationRequired):
		code = http.StatusConflict
	case errors.Is(err, ErrEmptyCart):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, backend.ErrSessionExpired):
		code = http.StatusUnauthorized
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
