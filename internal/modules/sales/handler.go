package sales

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/modules/access"
)

// Handler exposes the sales list and the sale-detail report.
type Handler struct {
	service Service
	gate    *access.Gate
}

func NewHandler(service Service, gate *access.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/sales", func(r chi.Router) {
		r.Get("/", h.listSales)     // GET /api/v1/sales
		r.Get("/details", h.report) // GET /api/v1/sales/details?id_venta=&producto=&cliente=

		r.With(h.gate.Require(access.ModuleSalesDetail, access.ActionExport)).
			Get("/details/export", h.export)
	})
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.ListSales(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	if sales == nil {
		sales = []backend.Sale{}
	}
	respond(w, http.StatusOK, sales)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Report(r.Context(), filterFromQuery(r))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.service.ExportPDF(r.Context(), filterFromQuery(r))
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="detalle-ventas.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func filterFromQuery(r *http.Request) ReportFilter {
	q := r.URL.Query()
	f := ReportFilter{
		Product:  q.Get("producto"),
		Customer: q.Get("cliente"),
	}
	if raw := q.Get("id_venta"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.SaleID = id
		}
	}
	return f
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
