package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Session and entitlement resolution errors. AuthCheckFailed is recoverable:
// the caller treats the session as unauthenticated and retries on the next
// navigation. RoleDataIntegrity is fatal for that session and must surface
// to support instead of guessing a role.
var (
	ErrAuthCheckFailed      = NewDomainError("AUTH_CHECK_FAILED", "Authentication check failed, please retry")
	ErrRoleDataIntegrity    = NewDomainError("ROLE_DATA_INTEGRITY", "Staff record carries an unrecognized role, contact support")
	ErrEntitlementLookup    = NewDomainError("ENTITLEMENT_LOOKUP_FAILED", "Entitlement lookup failed")
	ErrCatalogRead          = NewDomainError("CATALOG_READ_FAILED", "Catalog read failed for one or more properties")
	ErrFeatureNotEntitled   = NewDomainError("FEATURE_NOT_ENTITLED", "Active subscription plan does not include this feature")
	ErrNoActiveSubscription = NewDomainError("NO_ACTIVE_SUBSCRIPTION", "No active subscription found for this owner")
)
