package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/llanterasoft/pos-panel/internal/backend"
)

// Handler exposes the login/logout flow. These routes are never gated.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.login)    // POST /api/v1/auth/login
		r.Post("/logout", h.logout)  // POST /api/v1/auth/logout
		r.Get("/me", h.me)           // GET  /api/v1/auth/me
		r.Get("/verify", h.verify)   // GET  /api/v1/auth/verify
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"nombre_usuario"`
		Password string `json:"password"`
		Remember bool   `json:"recordarme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	user, err := h.service.Login(r.Context(), req.Username, req.Password, req.Remember)
	if err != nil {
		code := http.StatusUnauthorized
		if strings.Contains(err.Error(), "required") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"usuario": user})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user := h.service.CurrentUser()
	if user == nil {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return
	}
	respond(w, http.StatusOK, user)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Verify(r.Context())
	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, backend.ErrSessionExpired) {
			code = http.StatusUnauthorized
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, user)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
