package access

import (
	"sort"
	"strings"

	"github.com/kosthub/backend/internal/domain/identity"
)

// Well-known paths used by redirects and shell dispatch
const (
	MarketplaceRootPath  = "/"
	MarketplaceLoginPath = "/marketplace/login"
	GeneralLoginPath     = "/login"
	BackofficeRootPath   = "/backoffice"
	PropertyListPath     = "/properties"
)

// Area is a named navigational region guarding a path prefix. An area
// with no allowed roles is public. Marketplace areas send anonymous
// visitors to the marketplace login instead of the general one.
type Area struct {
	Name         string
	PathPrefix   string
	AllowedRoles []identity.Role
	Marketplace  bool
}

// IsPublic reports whether the area needs no authentication
func (a Area) IsPublic() bool {
	return len(a.AllowedRoles) == 0
}

// Allows reports whether the role may enter the area
func (a Area) Allows(role identity.Role) bool {
	for _, allowed := range a.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// LoginPath returns the entry point anonymous visitors are sent to
func (a Area) LoginPath() string {
	if a.Marketplace {
		return MarketplaceLoginPath
	}
	return GeneralLoginPath
}

// Registry resolves paths to areas by longest matching prefix
type Registry struct {
	areas []Area
}

// NewRegistry builds a registry. Areas are matched longest prefix
// first, on path segment boundaries.
func NewRegistry(areas ...Area) *Registry {
	sorted := make([]Area, len(areas))
	copy(sorted, areas)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].PathPrefix) > len(sorted[j].PathPrefix)
	})
	return &Registry{areas: sorted}
}

// Lookup finds the most specific area owning the path
func (r *Registry) Lookup(path string) (Area, bool) {
	path = normalizePath(path)
	for _, area := range r.areas {
		if matchesPrefix(path, area.PathPrefix) {
			return area, true
		}
	}
	return Area{}, false
}

// Areas returns the registered areas, most specific first
func (r *Registry) Areas() []Area {
	out := make([]Area, len(r.areas))
	copy(out, r.areas)
	return out
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// matchesPrefix matches on whole path segments: "/properties" owns
// "/properties" and "/properties/123" but not "/properties-x".
func matchesPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// DefaultRegistry returns the platform's area set. The marketplace
// root is the public landing page; owner-console areas admit property
// owners; back-office areas admit platform staff.
func DefaultRegistry() *Registry {
	admin := []identity.Role{identity.RoleAdmin}
	superadmin := []identity.Role{identity.RoleSuperadmin}
	tenant := []identity.Role{identity.RoleTenant}

	return NewRegistry(
		Area{Name: "marketplace-home", PathPrefix: MarketplaceRootPath, Marketplace: true},
		Area{Name: "marketplace", PathPrefix: "/marketplace", Marketplace: true},
		Area{Name: "marketplace-account", PathPrefix: "/marketplace/account", AllowedRoles: tenant, Marketplace: true},
		Area{Name: "auth-login", PathPrefix: GeneralLoginPath},
		Area{Name: "auth-register", PathPrefix: "/register"},
		Area{Name: "dashboard", PathPrefix: "/dashboard", AllowedRoles: admin},
		Area{Name: "properties", PathPrefix: PropertyListPath, AllowedRoles: admin},
		Area{Name: "rooms", PathPrefix: "/rooms", AllowedRoles: admin},
		Area{Name: "tenants", PathPrefix: "/tenants", AllowedRoles: admin},
		Area{Name: "payments", PathPrefix: "/payments", AllowedRoles: admin},
		Area{Name: "backoffice", PathPrefix: BackofficeRootPath, AllowedRoles: superadmin},
	)
}
