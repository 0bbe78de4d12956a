package ports

import (
	"context"

	"github.com/admindesk/directory-system/internal/core/domain"
)

// SessionService owns the single authentication state. It is reconstructible
// across restarts from the durable session snapshot.
type SessionService interface {
	// Login authenticates by case-insensitive email lookup against the fixed
	// reference credential. On success it returns a signed bearer token for
	// the HTTP surface along with the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout unconditionally drops the session and clears the durable record.
	// Idempotent.
	Logout(ctx context.Context) error

	IsAuthenticated() bool
	// HasRole reports whether the session is authenticated and the user's
	// role equals role, case-insensitively.
	HasRole(role string) bool
	// IsExpired is a pure predicate over wall-clock time; callers (typically
	// the navigation guard) check it on each transition attempt.
	IsExpired() bool
	CurrentUser() *domain.User
}
