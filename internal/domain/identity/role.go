package identity

import (
	"strings"

	"github.com/kosthub/backend/internal/domain/shared"
)

// Role is the closed set of effective roles in the platform.
// There is no privilege ordering between them: superadmin, admin, and
// tenant each own a disjoint navigational area.
type Role string

const (
	RoleSuperadmin Role = "superadmin" // platform operators, back office
	RoleAdmin      Role = "admin"      // property owners and their staff, owner console
	RoleTenant     Role = "tenant"     // prospective renters, marketplace
)

// AllRoles returns every valid role
func AllRoles() []Role {
	return []Role{RoleSuperadmin, RoleAdmin, RoleTenant}
}

// IsValid returns true if the role is one of the closed set
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleTenant:
		return true
	}
	return false
}

// String returns the role as a string
func (r Role) String() string {
	return string(r)
}

// ParseStaffRole parses a role value stored in the staff registry.
// The registry is the authoritative source for privileged roles, so an
// unrecognized stored value is a data-integrity error and is never
// silently coerced to a default.
func ParseStaffRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if !role.IsValid() {
		return "", shared.ErrRoleDataIntegrity
	}
	return role, nil
}

// NormalizeProfileClaim normalizes a role claim embedded in an account
// profile. Claims are not trustworthy: only admin and tenant are accepted,
// anything else (including an absent claim or a forged superadmin claim)
// defaults to tenant. Privileged roles can only come from the staff
// registry via ParseStaffRole.
func NormalizeProfileClaim(claim string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(claim))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleTenant:
		return RoleTenant
	}
	return RoleTenant
}

// ResolveEffectiveRole is the single producer of an effective role.
// A staff registry record strictly overrides any profile claim; without
// one the profile claim is normalized with the tenant default. The
// staff-strict / claim-soft asymmetry is deliberate: a stale or forged
// claim must never grant privilege, while registry corruption must
// surface instead of guessing.
func ResolveEffectiveRole(staff *StaffMember, profileClaim string) (Role, error) {
	if staff != nil {
		return ParseStaffRole(staff.Role)
	}
	return NormalizeProfileClaim(profileClaim), nil
}
