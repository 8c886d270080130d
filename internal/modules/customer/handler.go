package customer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/modules/access"
)

// Handler exposes customer endpoints for the clients screen and the
// point-of-sale search box.
type Handler struct {
	service Service
	gate    *access.Gate
}

func NewHandler(service Service, gate *access.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Get("/", h.list)            // GET /api/v1/customers
		r.Get("/{ci}", h.lookup)      // GET /api/v1/customers/{ci}

		r.With(h.gate.Require(access.ModuleClients, access.ActionCreate)).
			Post("/", h.create)       // POST   /api/v1/customers
		r.With(h.gate.Require(access.ModuleClients, access.ActionEdit)).
			Patch("/{ci}", h.update)  // PATCH  /api/v1/customers/{ci}
		r.With(h.gate.Require(access.ModuleClients, access.ActionDelete)).
			Delete("/{ci}", h.remove) // DELETE /api/v1/customers/{ci}?confirm=true
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	if customers == nil {
		customers = []backend.Customer{}
	}
	respond(w, http.StatusOK, customers)
}

// lookup answers the point-of-sale CI search. A miss is a recoverable
// outcome: the response carries create_offer so the UI opens the create
// form pre-filled with the searched CI.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	ci, err := parseCI(chi.URLParam(r, "ci"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.Lookup(r.Context(), ci)
	if err != nil {
		if errors.Is(err, backend.ErrCustomerNotFound) {
			respond(w, http.StatusNotFound, map[string]interface{}{
				"error":        "cliente no encontrado",
				"create_offer": true,
				"ci":           ci,
			})
			return
		}
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var c backend.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	created, err := h.service.Create(r.Context(), c)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ci, err := parseCI(chi.URLParam(r, "ci"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var c backend.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(r.Context(), ci, c)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	ci, err := parseCI(chi.URLParam(r, "ci"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.service.Delete(r.Context(), ci, confirm); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func parseCI(raw string) (int64, error) {
	ci, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || ci <= 0 {
		return 0, errors.New("ci must be a positive number")
	}
	return ci, nil
}

func fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrConfirmationRequired):
		code = http.StatusConflict
	case errors.Is(err, backend.ErrSessionExpired):
		code = http.StatusUnauthorized
	case strings.Contains(err.Error(), "required"), strings.Contains(err.Error(), "must be"):
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
