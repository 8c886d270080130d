package access

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name   string
		role   string
		module string
		action string
		want   bool
	}{
		{"admin views users", RoleAdmin, ModuleUsers, ActionView, true},
		{"admin deletes inventory", RoleAdmin, ModuleInventory, ActionDelete, true},
		{"admin exports sale details", RoleAdmin, ModuleSalesDetail, ActionExport, true},
		{"vendor views inventory", RoleVendor, ModuleInventory, ActionView, true},
		{"vendor cannot edit inventory", RoleVendor, ModuleInventory, ActionEdit, false},
		{"vendor cannot delete inventory", RoleVendor, ModuleInventory, ActionDelete, false},
		{"vendor creates sales", RoleVendor, ModuleSales, ActionCreate, true},
		{"vendor exports sale details", RoleVendor, ModuleSalesDetail, ActionExport, true},
		{"vendor edits clients", RoleVendor, ModuleClients, ActionEdit, true},
		{"vendor cannot delete clients", RoleVendor, ModuleClients, ActionDelete, false},
		{"vendor cannot view users", RoleVendor, ModuleUsers, ActionView, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, table.Allows(tc.role, tc.module, tc.action))
		})
	}
}

func TestAllowsDefaultsToDenied(t *testing.T) {
	table := DefaultTable()

	assert.False(t, table.Allows("auditor", ModuleSales, ActionView), "unknown role")
	assert.False(t, table.Allows(RoleAdmin, "reports", ActionView), "unknown module")
	assert.False(t, table.Allows(RoleVendor, ModuleSales, "approve"), "unknown action")
	assert.False(t, Table{}.Allows(RoleAdmin, ModuleSales, ActionView), "empty table")
}

func TestLoadTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permissions.yaml")
	data := []byte("admin:\n  sales:\n    view: true\n    create: false\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.True(t, table.Allows(RoleAdmin, ModuleSales, ActionView))
	assert.False(t, table.Allows(RoleAdmin, ModuleSales, ActionCreate))
	assert.False(t, table.Allows(RoleVendor, ModuleSales, ActionView))
}

func TestLoadTableEmptyPathUsesDefault(t *testing.T) {
	table, err := LoadTable("")
	require.NoError(t, err)
	assert.True(t, table.Allows(RoleAdmin, ModuleDashboard, ActionView))
}

func TestLoadTableErrors(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\t{not yaml"), 0o600))
	_, err = LoadTable(path)
	assert.Error(t, err)
}
