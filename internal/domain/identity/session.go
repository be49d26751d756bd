package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoSession is returned by a SessionProvider when the auth handle
// carries no valid session (absent, malformed, or expired credentials).
// It is a clean unauthenticated outcome, not a failure.
var ErrNoSession = errors.New("no session for handle")

// Session is the authoritative session record behind an auth handle.
type Session struct {
	AccountID uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionProvider supplies the current session for an auth handle (a
// bearer token or session cookie value). Implementations return
// ErrNoSession for handles without a valid session; any other error is
// a provider failure and is treated as recoverable.
type SessionProvider interface {
	CurrentSession(ctx context.Context, handle string) (*Session, error)
}
