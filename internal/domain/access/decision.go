package access

import (
	"net/url"

	"github.com/kosthub/backend/internal/domain/identity"
)

// DecisionKind classifies a routing decision
type DecisionKind string

const (
	DecisionPending  DecisionKind = "pending"
	DecisionAllow    DecisionKind = "allow"
	DecisionRedirect DecisionKind = "redirect"
)

// Decision is the outcome of authorizing one navigation. Pending means
// the identity snapshot is still unknown and the caller must hold the
// navigation instead of flashing a login redirect.
type Decision struct {
	Kind       DecisionKind
	RedirectTo string
}

// Pending returns the hold-navigation decision
func Pending() Decision {
	return Decision{Kind: DecisionPending}
}

// Allow returns the proceed decision
func Allow() Decision {
	return Decision{Kind: DecisionAllow}
}

// Redirect returns a decision sending the visitor elsewhere
func Redirect(path string) Decision {
	return Decision{Kind: DecisionRedirect, RedirectTo: path}
}

// IsPending reports whether navigation must hold
func (d Decision) IsPending() bool {
	return d.Kind == DecisionPending
}

// IsAllow reports whether navigation may proceed
func (d Decision) IsAllow() bool {
	return d.Kind == DecisionAllow
}

// IsRedirect reports whether the visitor is sent elsewhere
func (d Decision) IsRedirect() bool {
	return d.Kind == DecisionRedirect
}

// Decide authorizes one navigation against an area. It consumes the
// snapshot's already-resolved effective role and never re-derives it.
// For an unchanged snapshot the same inputs give the same decision.
func Decide(area Area, requestedPath string, snapshot identity.IdentitySnapshot) Decision {
	if area.IsPublic() {
		return Allow()
	}
	if snapshot.IsUnknown() {
		return Pending()
	}
	if !snapshot.IsAuthenticated() {
		return Redirect(LoginRedirect(area, requestedPath))
	}

	role, ok := snapshot.EffectiveRole()
	if !ok || !area.Allows(role) {
		return Redirect(HomeFor(role))
	}
	return Allow()
}

// LoginRedirect builds the login path for an area, carrying the
// requested destination for the post-login return
func LoginRedirect(area Area, requestedPath string) string {
	login := area.LoginPath()
	if requestedPath == "" {
		return login
	}
	requestedPath = normalizePath(requestedPath)
	if requestedPath == login {
		return login
	}
	return login + "?return_to=" + url.QueryEscape(requestedPath)
}

// HomeFor maps a role to its own legal home. Every home lies inside an
// area that admits the role, so a denied navigation can never loop.
func HomeFor(role identity.Role) string {
	switch role {
	case identity.RoleSuperadmin:
		return BackofficeRootPath
	case identity.RoleAdmin:
		return PropertyListPath
	default:
		return MarketplaceRootPath
	}
}
