package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/admindesk/directory-system/internal/core/domain"
	"github.com/admindesk/directory-system/internal/core/ports"
)

const (
	defaultPage     = 1
	defaultPageSize = 10

	deleteConfirmTitle   = "Confirm Delete"
	deleteConfirmMessage = "Are you sure you want to delete this user? This action cannot be undone."
)

// DirectoryService is the coordinator the UI talks to. It gates every
// operation on the session's role, delegates to the directory backend, routes
// deletes through the confirmation gate, and tracks the loading/error/result
// state the UI renders.
//
// It deliberately does not reorder or discard stale responses from
// overlapping fetches: whichever call completes last wins. Callers that fire
// rapid search queries should go through Searcher.
type DirectoryService struct {
	repo    ports.UserRepository
	session ports.SessionService
	gate    *ConfirmationGate
	log     zerolog.Logger

	mu      sync.Mutex
	users   []domain.User
	roles   []domain.Role
	total   int
	loading bool
	lastErr string
}

func NewDirectoryService(repo ports.UserRepository, session ports.SessionService, gate *ConfirmationGate, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, session: session, gate: gate, log: log}
}

// FetchUsers loads a page from the backend. Failures are absorbed: the error
// is recorded on the observable state and the empty page shape is returned,
// never an error.
func (s *DirectoryService) FetchUsers(ctx context.Context, q ports.ListQuery) *ports.Page {
	s.begin()
	defer s.end()

	page := q.Page
	if page <= 0 {
		page = defaultPage
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	res, err := s.repo.List(ctx, q)
	if err != nil {
		s.fail("Failed to fetch users: " + err.Error())
		return &ports.Page{Data: []domain.User{}, Total: 0, Page: page, PageSize: pageSize}
	}

	s.mu.Lock()
	s.users = res.Data
	s.total = res.Total
	s.mu.Unlock()
	return res
}

// FetchRoles requires the admin role. An unauthorized attempt records the
// error and returns without touching the backend; only backend failures
// surface as errors.
func (s *DirectoryService) FetchRoles(ctx context.Context) ([]domain.Role, error) {
	if !s.session.HasRole(domain.RoleAdmin) {
		s.fail("Unauthorized: Only admins can fetch roles")
		return nil, nil
	}

	s.begin()
	defer s.end()

	roles, err := s.repo.Roles(ctx)
	if err != nil {
		s.fail("Failed to fetch roles: " + err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.roles = roles
	s.mu.Unlock()
	return roles, nil
}

// GetUser loads a single record; any authenticated role may read.
func (s *DirectoryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.begin()
	defer s.end()

	user, err := s.repo.Get(ctx, id)
	if err != nil {
		s.fail("Failed to fetch user: " + err.Error())
		return nil, err
	}
	return user, nil
}

// CreateUser requires admin or manager. On success the new record is pushed
// onto the locally cached page and the total incremented, keeping the cache
// consistent without a refetch. Unauthorized attempts both record the error
// and raise it.
func (s *DirectoryService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if !s.session.HasRole(domain.RoleAdmin) && !s.session.HasRole(domain.RoleManager) {
		s.fail("Unauthorized: Only admin or manager can create users")
		return nil, domain.ErrUnauthorized
	}

	s.begin()
	defer s.end()

	user, err := s.repo.Create(ctx, in)
	if err != nil {
		s.fail("Failed to create user: " + err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.users = append(s.users, *user)
	s.total++
	s.mu.Unlock()

	return user, nil
}

// UpdateUser requires admin or manager. Unlike CreateUser, an unauthorized
// attempt only records the error and returns nil, nil. On success the cached
// entry with the matching id is replaced in place.
func (s *DirectoryService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if !s.session.HasRole(domain.RoleAdmin) && !s.session.HasRole(domain.RoleManager) {
		s.fail("Unauthorized: Only admin or manager can update users")
		return nil, nil
	}

	s.begin()
	defer s.end()

	user, err := s.repo.Update(ctx, id, in)
	if err != nil {
		s.fail("Failed to update user: " + err.Error())
		return nil, err
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = *user
			break
		}
	}
	s.mu.Unlock()

	return user, nil
}

// DeleteUser requires admin. It never deletes directly: it opens a
// confirmation request whose deferred action performs the backend delete and
// the local cache removal, and returns a channel that receives the outcome
// when that action runs.
//
// If the request is cancelled, or replaced by a newer Show, the channel is
// never written to; callers must not assume the delete always settles. An
// unauthorized attempt records the error and resolves immediately without
// deleting.
func (s *DirectoryService) DeleteUser(ctx context.Context, id string) (<-chan error, error) {
	done := make(chan error, 1)

	if !s.session.HasRole(domain.RoleAdmin) {
		s.fail("Unauthorized: Only admin can delete users")
		done <- nil
		return done, nil
	}

	// The action runs after the originating request is long gone; detach it
	// from that request's cancellation.
	actionCtx := context.WithoutCancel(ctx)

	s.gate.Show(deleteConfirmTitle, deleteConfirmMessage, func() {
		s.begin()
		defer s.end()

		if err := s.repo.Delete(actionCtx, id); err != nil {
			s.fail("Failed to delete user: " + err.Error())
			done <- err
			return
		}

		s.mu.Lock()
		kept := s.users[:0]
		for _, u := range s.users {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		s.users = kept
		s.total--
		s.mu.Unlock()

		s.log.Info().Str("id", id).Msg("user delete confirmed")
		done <- nil
	})

	return done, nil
}

// Users returns the currently cached result set.
func (s *DirectoryService) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// Roles returns the cached role descriptors from the last FetchRoles.
func (s *DirectoryService) Roles() []domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Role, len(s.roles))
	copy(out, s.roles)
	return out
}

func (s *DirectoryService) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *DirectoryService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError is the human-readable message from the most recent failure;
// empty after a successful operation.
func (s *DirectoryService) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// begin marks loading and clears the previous error.
func (s *DirectoryService) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *DirectoryService) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *DirectoryService) fail(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
	s.log.Warn().Msg(msg)
}
