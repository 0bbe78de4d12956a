package ports

import (
	"context"
	"time"

	"github.com/admindesk/directory-system/internal/core/domain"
)

// ListQuery carries all query parameters for listing users. Zero values mean
// "not set"; defaults (page=1, pageSize=10, ascending) are applied by the
// repository.
type ListQuery struct {
	Page      int
	PageSize  int
	Search    string // case-insensitive substring over first name, last name, email
	Role      string // exact match
	Status    string // exact match
	SortBy    string // one of the user field keys: id, firstName, lastName, email, role, status, dateJoined, lastLogin
	SortOrder string // "asc" (default) or "desc"
}

// Page is one page of results plus the total count after filtering but before
// pagination.
type Page struct {
	Data     []domain.User `json:"data"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// CreateUserInput carries the fields for a new user. DateJoined and LastLogin
// default to the current time when zero.
type CreateUserInput struct {
	FirstName  string
	LastName   string
	Email      string
	Role       string
	Status     string
	DateJoined time.Time
	LastLogin  time.Time
}

// UpdateUserInput is a partial user: nil fields are left untouched. Merged
// fields are not re-validated, so an update may introduce values a create
// would reject.
type UpdateUserInput struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Role       *string
	Status     *string
	DateJoined *time.Time
	LastLogin  *time.Time
}

// UserRepository is the directory backend contract. Every operation injects
// artificial latency and may fail with domain.ErrTransient before doing any
// work; callers must treat such failures as retryable.
type UserRepository interface {
	List(ctx context.Context, q ListQuery) (*Page, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Roles(ctx context.Context) ([]domain.Role, error)
}
