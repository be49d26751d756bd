package access

import (
	"testing"

	"github.com/kosthub/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "root is the marketplace home", path: "/", expected: "marketplace-home"},
		{name: "marketplace browse", path: "/marketplace/kos-melati", expected: "marketplace"},
		{name: "marketplace account is more specific", path: "/marketplace/account/bookings", expected: "marketplace-account"},
		{name: "owner console properties", path: "/properties/42/rooms", expected: "properties"},
		{name: "backoffice subpath", path: "/backoffice/staff", expected: "backoffice"},
		{name: "unknown path falls back to root area", path: "/promo", expected: "marketplace-home"},
		{name: "trailing slash is normalized", path: "/dashboard/", expected: "dashboard"},
		{name: "empty path is the root", path: "", expected: "marketplace-home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			area, ok := registry.Lookup(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.expected, area.Name)
		})
	}
}

func TestRegistryMatchesSegmentBoundaries(t *testing.T) {
	registry := NewRegistry(
		Area{Name: "properties", PathPrefix: "/properties", AllowedRoles: []identity.Role{identity.RoleAdmin}},
	)

	_, ok := registry.Lookup("/properties-export")
	assert.False(t, ok, "prefix match must stop at segment boundaries")

	area, ok := registry.Lookup("/properties/42")
	require.True(t, ok)
	assert.Equal(t, "properties", area.Name)
}

func TestRegistryPrefersLongestPrefix(t *testing.T) {
	registry := NewRegistry(
		Area{Name: "outer", PathPrefix: "/marketplace"},
		Area{Name: "inner", PathPrefix: "/marketplace/account", AllowedRoles: []identity.Role{identity.RoleTenant}},
	)

	area, ok := registry.Lookup("/marketplace/account")
	require.True(t, ok)
	assert.Equal(t, "inner", area.Name)

	area, ok = registry.Lookup("/marketplace/search")
	require.True(t, ok)
	assert.Equal(t, "outer", area.Name)
}

func TestAreaRoles(t *testing.T) {
	t.Run("public area", func(t *testing.T) {
		area := Area{Name: "marketplace", PathPrefix: "/marketplace", Marketplace: true}
		assert.True(t, area.IsPublic())
		assert.Equal(t, MarketplaceLoginPath, area.LoginPath())
	})

	t.Run("restricted area", func(t *testing.T) {
		area := Area{Name: "backoffice", PathPrefix: "/backoffice", AllowedRoles: []identity.Role{identity.RoleSuperadmin}}
		assert.False(t, area.IsPublic())
		assert.True(t, area.Allows(identity.RoleSuperadmin))
		assert.False(t, area.Allows(identity.RoleAdmin))
		assert.Equal(t, GeneralLoginPath, area.LoginPath())
	})
}

func TestDefaultRegistryAreaRoles(t *testing.T) {
	registry := DefaultRegistry()

	t.Run("owner console admits admins only", func(t *testing.T) {
		for _, path := range []string{"/dashboard", "/properties", "/rooms", "/tenants", "/payments"} {
			area, ok := registry.Lookup(path)
			require.True(t, ok, path)
			assert.True(t, area.Allows(identity.RoleAdmin), path)
			assert.False(t, area.Allows(identity.RoleSuperadmin), path)
			assert.False(t, area.Allows(identity.RoleTenant), path)
		}
	})

	t.Run("backoffice admits superadmins only", func(t *testing.T) {
		area, ok := registry.Lookup("/backoffice")
		require.True(t, ok)
		assert.True(t, area.Allows(identity.RoleSuperadmin))
		assert.False(t, area.Allows(identity.RoleAdmin))
	})

	t.Run("marketplace browsing is anonymous", func(t *testing.T) {
		area, ok := registry.Lookup("/marketplace")
		require.True(t, ok)
		assert.True(t, area.IsPublic())
	})
}
