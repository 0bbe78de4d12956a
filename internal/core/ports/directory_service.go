package ports

import (
	"context"

	"github.com/admindesk/directory-system/internal/core/domain"
)

// DirectoryService is the operation surface the UI calls. It enforces
// authorization before delegating to the backend and tracks the
// loading/error/result state the UI renders.
type DirectoryService interface {
	// FetchUsers never propagates backend failures: on error it records a
	// human-readable message and returns the empty page shape.
	FetchUsers(ctx context.Context, q ListQuery) *Page
	// FetchRoles requires the admin role.
	FetchRoles(ctx context.Context) ([]domain.Role, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// CreateUser requires admin or manager and raises domain.ErrUnauthorized
	// to the caller on failure.
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	// UpdateUser requires admin or manager but, unlike CreateUser, an
	// unauthorized attempt only records the error and returns nil, nil.
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	// DeleteUser requires admin. It does not delete directly: it opens a
	// confirmation request and returns a channel that receives the outcome
	// once the request is confirmed. If the request is cancelled (or
	// overwritten by a newer one) the channel is never written to.
	DeleteUser(ctx context.Context, id string) (<-chan error, error)

	// Observable state.
	Users() []domain.User
	Roles() []domain.Role
	Total() int
	Loading() bool
	LastError() string
}
