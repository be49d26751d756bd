package access

import (
	"strings"

	"github.com/kosthub/backend/internal/domain/identity"
)

// Shell identifies which of the three disjoint UI shells owns a request
type Shell string

const (
	ShellOwnerConsole Shell = "owner_console"
	ShellBackoffice   Shell = "backoffice"
	ShellMarketplace  Shell = "marketplace"
)

// SelectShell picks the shell that owns a path. Selection is pure
// presentation dispatch on the path; authorization has already decided
// access before a shell is chosen, so the resolved role does not alter
// the outcome.
func SelectShell(path string, role identity.Role) Shell {
	path = normalizePath(path)

	if path == BackofficeRootPath || strings.HasPrefix(path, BackofficeRootPath+"/") {
		return ShellBackoffice
	}
	if path == MarketplaceRootPath || path == "/marketplace" || strings.HasPrefix(path, "/marketplace/") {
		return ShellMarketplace
	}
	return ShellOwnerConsole
}
