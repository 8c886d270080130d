package access

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/llanterasoft/pos-panel/internal/backend"
	"gopkg.in/yaml.v3"
)

// Module names the gate knows about.
const (
	ModuleDashboard   = "dashboard"
	ModuleInventory   = "inventory"
	ModuleSales       = "sales"
	ModuleSalesDetail = "salesDetail"
	ModuleClients     = "clients"
	ModuleUsers       = "users"
)

// Actions a module can expose. Not every module supports every action.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionExport = "export"
)

// Roles the backend assigns.
const (
	RoleAdmin  = backend.RoleAdmin
	RoleVendor = backend.RoleVendor
)

// Table is the static role → module → action capability map. Absent keys
// mean denied.
type Table map[string]map[string]map[string]bool

//go:embed permissions.yaml
var defaultTableYAML []byte

// DefaultTable returns the built-in capability table.
func DefaultTable() Table {
	var t Table
	// The embedded table is part of the build; failing to parse it is a bug.
	if err := yaml.Unmarshal(defaultTableYAML, &t); err != nil {
		panic(fmt.Sprintf("access: embedded permission table invalid: %v", err))
	}
	return t
}

// LoadTable reads a capability table from a YAML file, falling back to the
// built-in table when path is empty.
func LoadTable(path string) (Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read permission table: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse permission table: %w", err)
	}
	return t, nil
}

// Allows looks up one capability, defaulting to false whenever any key on
// the path is missing.
func (t Table) Allows(role, module, action string) bool {
	modules, ok := t[role]
	if !ok {
		return false
	}
	actions, ok := modules[module]
	if !ok {
		return false
	}
	return actions[action]
}
