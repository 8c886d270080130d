package users

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

// Handler exposes the operator-account screen endpoints.
type Handler struct {
	service Service
	gate    *access.Gate
}

func NewHandler(service Service, gate *access.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/", h.list)            // GET /api/v1/users?busqueda=&rol=&estado=
		r.Get("/{id}", h.get)         // GET /api/v1/users/{id}

		r.With(h.gate.Require(access.ModuleUsers, access.ActionCreate)).
			Post("/", h.create)       // POST   /api/v1/users
		r.With(h.gate.Require(access.ModuleUsers, access.ActionEdit)).
			Patch("/{id}", h.update)  // PATCH  /api/v1/users/{id}
		r.With(h.gate.Require(access.ModuleUsers, access.ActionDelete)).
			Delete("/{id}", h.remove) // DELETE /api/v1/users/{id}?confirm=true
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	accounts, err := h.service.List(r.Context(), ListFilter{
		Search: q.Get("busqueda"),
		Role:   q.Get("rol"),
		Status: q.Get("estado"),
	})
	if err != nil {
		fail(w, err)
		return
	}
	if accounts == nil {
		accounts = []backend.User{}
	}
	respond(w, http.StatusOK, accounts)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.service.Delete(r.Context(), id, confirm); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}

func fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrConfirmationRequired):
		code = http.StatusConflict
	case errors.Is(err, backend.ErrSessionExpired):
		code = http.StatusUnauthorized
	case strings.Contains(err.Error(), "required"), strings.Contains(err.Error(), "invalid"):
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
