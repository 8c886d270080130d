package access

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler lets the UI ask the gate what to render.
type Handler struct{ gate *Gate }

func NewHandler(gate *Gate) *Handler { return &Handler{gate: gate} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/access", func(r chi.Router) {
		r.Get("/ui/{module}", h.uiControls) // GET /api/v1/access/ui/{module}
		r.Get("/menu", h.menu)              // GET /api/v1/access/menu
		r.Get("/check", h.check)            // GET /api/v1/access/check?module=&action=
	})
}

func (h *Handler) uiControls(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.gate.UIControls(chi.URLParam(r, "module")))
}

func (h *Handler) menu(w http.ResponseWriter, r *http.Request) {
	modules := h.gate.VisibleModules()
	if modules == nil {
		modules = []string{}
	}
	respond(w, http.StatusOK, map[string][]string{"modules": modules})
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respond(w, http.StatusOK, map[string]bool{
		"allowed": h.gate.HasPermission(q.Get("module"), q.Get("action")),
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
