package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
	// ErrCodeValidationLength is used when a field length is invalid
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Authentication and session error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the account lacks access to an area or resource
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeAuthCheckFailed is used when the session provider could not be
	// reached. The session is treated as unauthenticated and the client
	// should retry on its next navigation.
	ErrCodeAuthCheckFailed = "ERR_AUTH_CHECK_FAILED"
	// ErrCodeRoleDataIntegrity is used when a staff record carries an
	// unrecognized role. Fatal for the session, never downgraded to a guess.
	ErrCodeRoleDataIntegrity = "ERR_ROLE_DATA_INTEGRITY"
	// ErrCodeAccountLocked is used when the account is temporarily locked
	ErrCodeAccountLocked = "ERR_ACCOUNT_LOCKED"
	// ErrCodeAccountDeactivated is used when the account has been deactivated
	ErrCodeAccountDeactivated = "ERR_ACCOUNT_DEACTIVATED"
	// ErrCodeInvalidCredentials is used when login credentials do not match
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	// ErrCodeInvalidPassword is used when a password change carries the wrong current password
	ErrCodeInvalidPassword = "ERR_INVALID_PASSWORD"
)

// Entitlement error codes
const (
	// ErrCodeFeatureNotEntitled is used when the active plan does not include a feature
	ErrCodeFeatureNotEntitled = "ERR_FEATURE_NOT_ENTITLED"
	// ErrCodeNoActiveSubscription is used when the owner has no active subscription
	ErrCodeNoActiveSubscription = "ERR_NO_ACTIVE_SUBSCRIPTION"
	// ErrCodePlanLimitReached is used when a plan quantity limit blocks the operation
	ErrCodePlanLimitReached = "ERR_PLAN_LIMIT_REACHED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Dependency error codes
const (
	// ErrCodeEntitlementLookup is used when the subscription/plan store is
	// unreachable. Gates fail closed, so the request is denied but the code
	// tells the client this is transient rather than a missing entitlement.
	ErrCodeEntitlementLookup = "ERR_ENTITLEMENT_LOOKUP_FAILED"
	// ErrCodeCatalogRead is used when the property catalog could not be read
	// at all. Per-property failures do not use this, they ride in response
	// meta as partial failures instead.
	ErrCodeCatalogRead = "ERR_CATALOG_READ_FAILED"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeTooManyRequests is an alias for rate limiting
	ErrCodeTooManyRequests = "ERR_TOO_MANY_REQUESTS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeAuthCheckFailed:    http.StatusUnauthorized,
	ErrCodeRoleDataIntegrity:  http.StatusInternalServerError,
	ErrCodeAccountLocked:      http.StatusForbidden,
	ErrCodeAccountDeactivated: http.StatusForbidden,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeInvalidPassword:    http.StatusUnprocessableEntity,

	// Entitlement errors
	ErrCodeFeatureNotEntitled:   http.StatusForbidden,
	ErrCodeNoActiveSubscription: http.StatusNotFound,
	ErrCodePlanLimitReached:     http.StatusUnprocessableEntity,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Dependency errors -> 503 Service Unavailable
	ErrCodeEntitlementLookup: http.StatusServiceUnavailable,
	ErrCodeCatalogRead:       http.StatusServiceUnavailable,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to their wire format.
// Domain errors carry bare codes (shared.DomainError), the API responds
// with the ERR_ prefixed form.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                 ErrCodeNotFound,
	"LISTING_NOT_FOUND":         ErrCodeNotFound,
	"ALREADY_EXISTS":            ErrCodeAlreadyExists,
	"INVALID_INPUT":             ErrCodeInvalidInput,
	"INVALID_STATE":             ErrCodeInvalidState,
	"UNAUTHORIZED":              ErrCodeUnauthorized,
	"FORBIDDEN":                 ErrCodeForbidden,
	"CONCURRENCY_CONFLICT":      ErrCodeConcurrencyConflict,
	"AUTH_CHECK_FAILED":         ErrCodeAuthCheckFailed,
	"ROLE_DATA_INTEGRITY":       ErrCodeRoleDataIntegrity,
	"ENTITLEMENT_LOOKUP_FAILED": ErrCodeEntitlementLookup,
	"CATALOG_READ_FAILED":       ErrCodeCatalogRead,
	"FEATURE_NOT_ENTITLED":      ErrCodeFeatureNotEntitled,
	"NO_ACTIVE_SUBSCRIPTION":    ErrCodeNoActiveSubscription,
	"ACCOUNT_LOCKED":            ErrCodeAccountLocked,
	"ACCOUNT_DEACTIVATED":       ErrCodeAccountDeactivated,
	"ACCOUNT_NOT_FOUND":         ErrCodeNotFound,
	"ALREADY_ACTIVE":            ErrCodeInvalidState,
	"ALREADY_DEACTIVATED":       ErrCodeInvalidState,
	"NOT_LOCKED":                ErrCodeInvalidState,
	"INVALID_CREDENTIALS":       ErrCodeInvalidCredentials,
	"INVALID_PASSWORD":          ErrCodeInvalidPassword,
	"EMAIL_EXISTS":              ErrCodeAlreadyExists,
	"TOKEN_INVALID":             ErrCodeTokenInvalid,
	"TOKEN_EXPIRED":             ErrCodeTokenExpired,
	"TOKEN_MAX_REFRESH":         ErrCodeTokenInvalid,
	"STAFF_EXISTS":              ErrCodeAlreadyExists,
	"STAFF_NOT_FOUND":           ErrCodeNotFound,
	"PROPERTY_NOT_FOUND":        ErrCodeNotFound,
	"ROOM_TYPE_NOT_FOUND":       ErrCodeNotFound,
	"ROOM_NOT_FOUND":            ErrCodeNotFound,
	"ROOM_TYPE_EXISTS":          ErrCodeAlreadyExists,
	"ROOM_EXISTS":               ErrCodeAlreadyExists,
	"ROOM_TYPE_IN_USE":          ErrCodeBusinessRule,
	"PROPERTY_LIMIT_REACHED":    ErrCodePlanLimitReached,
	"ROOM_LIMIT_REACHED":        ErrCodePlanLimitReached,
	"ALREADY_PUBLISHED":         ErrCodeInvalidState,
	"NOT_PUBLISHED":             ErrCodeInvalidState,
	"ALREADY_ENABLED":           ErrCodeInvalidState,
	"ALREADY_DISABLED":          ErrCodeInvalidState,
	"INVALID_ADDRESS":           ErrCodeInvalidInput,
	"PLAN_NOT_FOUND":            ErrCodeNotFound,
	"PLAN_CODE_EXISTS":          ErrCodeAlreadyExists,
	"PLAN_IN_USE":               ErrCodeBusinessRule,
	"PLAN_RETIRED":              ErrCodeInvalidState,
	"ALREADY_SUBSCRIBED":        ErrCodeBusinessRule,
	"PLAN_UNCHANGED":            ErrCodeBusinessRule,
	"VALIDATION_ERROR":          ErrCodeValidation,
	"BAD_REQUEST":               ErrCodeBadRequest,
	"INTERNAL_ERROR":            ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire format
// If the code is already in the wire format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
