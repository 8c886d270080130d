package access

import (
	"net/http"
	"strings"

	"github.com/llanterasoft/pos-panel/internal/backend"
)

// UserSource resolves the currently logged-in user. The gate calls it on
// every check instead of caching a role, so a re-login under a different
// role takes effect immediately.
type UserSource interface {
	CurrentUser() *backend.User
}

// routeModules maps API route prefixes to gate modules. Routes outside the
// map (auth, the cart itself) carry no page restriction of their own; the
// cart's mutations are guarded per-action under the sales module instead.
var routeModules = map[string]string{
	"/api/v1/dashboard":   ModuleDashboard,
	"/api/v1/inventory":   ModuleInventory,
	"/api/v1/catalog":     ModuleSales,
	"/api/v1/cart":        ModuleSales,
	"/api/v1/sales":       ModuleSalesDetail,
	"/api/v1/customers":   ModuleClients,
	"/api/v1/users":       ModuleUsers,
}

// Gate answers permission questions for the current user. It is UI
// convenience only; the upstream backend independently enforces
// authorization on every request.
type Gate struct {
	table Table
	users UserSource
}

// NewGate builds a Gate over a capability table and a user source.
func NewGate(table Table, users UserSource) *Gate {
	return &Gate{table: table, users: users}
}

// HasPermission reports whether the current user may perform action on
// module. False when nobody is logged in, the role is unknown, or the table
// has no entry. Pure: no side effects, safe to call repeatedly.
func (g *Gate) HasPermission(module, action string) bool {
	user := g.users.CurrentUser()
	if user == nil || user.Role == "" {
		return false
	}
	return g.table.Allows(user.Role, module, action)
}

// RouteModule resolves the gate module for a request path, or "" when the
// path is unrestricted.
func RouteModule(path string) string {
	for prefix, module := range routeModules {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return module
		}
	}
	return ""
}

// EnforcePageAccess redirects away from any module page the current user
// may not view. Unmapped paths pass through untouched, so login and static
// routes are always reachable.
func (g *Gate) EnforcePageAccess(landing string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			module := RouteModule(r.URL.Path)
			if module == "" || g.HasPermission(module, ActionView) {
				next.ServeHTTP(w, r)
				return
			}
			http.Redirect(w, r, landing, http.StatusSeeOther)
		})
	}
}

// Require guards a single action entry point. A denied caller gets a
// rejection notice instead of the action running. The upstream backend
// rejects these too; the gate just answers in the panel's own format.
func (g *Gate) Require(module, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.HasPermission(module, action) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"no tienes permisos para realizar esta acción"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Controls is the declarative gating view-model for one module: which
// action controls the screen should render at all. Computed fresh per
// render pass, which replaces the original's re-apply-on-mutation gating.
type Controls struct {
	Module    string `json:"module"`
	Role      string `json:"role,omitempty"`
	View      bool   `json:"view"`
	CanCreate bool   `json:"create"`
	CanEdit   bool   `json:"edit"`
	CanDelete bool   `json:"delete"`
	CanExport bool   `json:"export"`

	// Inventory-only tightening for non-admins.
	HideValueStat     bool `json:"hide_value_stat,omitempty"`
	HideActionsColumn bool `json:"hide_actions_column,omitempty"`
	PriceReadOnly     bool `json:"price_read_only,omitempty"`
}

// UIControls computes the gating view-model for a module.
func (g *Gate) UIControls(module string) Controls {
	c := Controls{
		Module:    module,
		View:      g.HasPermission(module, ActionView),
		CanCreate: g.HasPermission(module, ActionCreate),
		CanEdit:   g.HasPermission(module, ActionEdit),
		CanDelete: g.HasPermission(module, ActionDelete),
		CanExport: g.HasPermission(module, ActionExport),
	}
	user := g.users.CurrentUser()
	if user == nil {
		return c
	}
	c.Role = user.Role
	if module == ModuleInventory && user.Role != RoleAdmin {
		c.HideValueStat = true
		c.HideActionsColumn = true
		c.PriceReadOnly = true
	}
	return c
}

// VisibleModules lists the modules the current user may view, in menu order.
func (g *Gate) VisibleModules() []string {
	order := []string{
		ModuleDashboard, ModuleInventory, ModuleSales,
		ModuleSalesDetail, ModuleClients, ModuleUsers,
	}
	var out []string
	for _, m := range order {
		if g.HasPermission(m, ActionView) {
			out = append(out, m)
		}
	}
	return out
}
