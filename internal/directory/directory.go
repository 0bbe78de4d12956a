// Package directory implements the simulated remote backend behind the admin
// dashboard: an authoritative in-memory user collection with durable
// key-value snapshotting, query/sort/pagination, create-time validation, and
// randomized latency plus fault injection on every operation.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/admindesk/directory-system/internal/api/metrics"
	"github.com/admindesk/directory-system/internal/core/domain"
	"github.com/admindesk/directory-system/internal/core/ports"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// Options tunes the simulated unreliability. The zero value disables both
// latency and fault injection, which is what tests want.
type Options struct {
	// DelayMin and DelayMax bound the uniformly random artificial delay
	// applied before every operation.
	DelayMin time.Duration
	DelayMax time.Duration
	// FailureRate is the independent probability, per call, of failing with
	// domain.ErrTransient before any work is done.
	FailureRate float64
}

// Directory is the sole authoritative source of the user collection. It
// implements ports.UserRepository.
//
// Every mutating call re-serializes the whole collection to the snapshot
// store before returning, so durable and in-memory state never diverge after
// a successful call. There is no cancellation: once an operation starts, its
// delay and fault roll always run to completion.
type Directory struct {
	store ports.SnapshotStore
	log   zerolog.Logger
	opts  Options

	mu    sync.Mutex
	users []domain.User
}

// New loads the persisted snapshot, falling back to the deterministic seed
// set when the snapshot is absent or corrupt (anything that does not decode
// as an array), and persists the seed in that case.
func New(ctx context.Context, store ports.SnapshotStore, log zerolog.Logger, opts Options) (*Directory, error) {
	d := &Directory{store: store, log: log, opts: opts}

	raw, err := store.Get(ctx, ports.UsersKey)
	switch {
	case err == nil:
		// Anything that does not decode as an array counts as corruption.
		if jsonErr := json.Unmarshal(raw, &d.users); jsonErr != nil || d.users == nil {
			log.Warn().Err(jsonErr).Msg("users snapshot corrupt, reseeding")
			d.users = seedUsers()
			if err := d.persist(ctx); err != nil {
				return nil, err
			}
		}
	case errors.Is(err, domain.ErrSnapshotMissing):
		d.users = seedUsers()
		if err := d.persist(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("load users snapshot: %w", err)
	}

	log.Info().Int("users", len(d.users)).Msg("directory initialized")
	return d, nil
}

// List applies search, role and status filters, a stable sort, and a 1-based
// pagination slice. Total reflects the filtered count before pagination.
func (d *Directory) List(ctx context.Context, q ports.ListQuery) (*ports.Page, error) {
	if err := d.simulate("list"); err != nil {
		return nil, err
	}

	matched := d.snapshot()

	if q.Search != "" {
		term := strings.ToLower(q.Search)
		filtered := matched[:0]
		for _, u := range matched {
			if strings.Contains(strings.ToLower(u.FirstName), term) ||
				strings.Contains(strings.ToLower(u.LastName), term) ||
				strings.Contains(strings.ToLower(u.Email), term) {
				filtered = append(filtered, u)
			}
		}
		matched = filtered
	}
	if q.Role != "" {
		filtered := matched[:0]
		for _, u := range matched {
			if u.Role == q.Role {
				filtered = append(filtered, u)
			}
		}
		matched = filtered
	}
	if q.Status != "" {
		filtered := matched[:0]
		for _, u := range matched {
			if u.Status == q.Status {
				filtered = append(filtered, u)
			}
		}
		matched = filtered
	}

	if q.SortBy != "" {
		sortUsers(matched, q.SortBy, q.SortOrder == "desc")
	}

	page := q.Page
	if page <= 0 {
		page = defaultPage
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &ports.Page{
		Data:     matched[start:end],
		Total:    len(matched),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Get returns the record with the given id.
func (d *Directory) Get(ctx context.Context, id string) (*domain.User, error) {
	if err := d.simulate("get"); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.ID == id {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create validates the input, allocates the next id as max existing numeric
// id + 1, defaults the timestamps to now, appends, and persists.
func (d *Directory) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if err := d.simulate("create"); err != nil {
		return nil, err
	}

	if in.Email == "" || in.FirstName == "" || in.LastName == "" {
		return nil, domain.ErrMissingFields
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	if !domain.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if strings.EqualFold(u.Email, in.Email) {
			return nil, domain.ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:         strconv.Itoa(d.nextIDLocked()),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Role:       in.Role,
		Status:     in.Status,
		DateJoined: in.DateJoined,
		LastLogin:  in.LastLogin,
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = now
	}
	if user.LastLogin.IsZero() {
		user.LastLogin = now
	}

	d.users = append(d.users, user)
	if err := d.persist(ctx); err != nil {
		return nil, err
	}

	d.log.Info().Str("id", user.ID).Str("email", user.Email).Msg("user created")
	clone := user
	return &clone, nil
}

// Update shallow-merges the non-nil fields into the existing record and
// persists. Merged fields are deliberately not re-validated.
func (d *Directory) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := d.simulate("update"); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOfLocked(id)
	if idx < 0 {
		return nil, domain.ErrUserNotFound
	}

	u := &d.users[idx]
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Status != nil {
		u.Status = *in.Status
	}
	if in.DateJoined != nil {
		u.DateJoined = *in.DateJoined
	}
	if in.LastLogin != nil {
		u.LastLogin = *in.LastLogin
	}

	if err := d.persist(ctx); err != nil {
		return nil, err
	}

	clone := *u
	return &clone, nil
}

// Delete removes the record and persists.
func (d *Directory) Delete(ctx context.Context, id string) error {
	if err := d.simulate("delete"); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOfLocked(id)
	if idx < 0 {
		return domain.ErrUserNotFound
	}

	d.users = append(d.users[:idx], d.users[idx+1:]...)
	if err := d.persist(ctx); err != nil {
		return err
	}

	d.log.Info().Str("id", id).Msg("user deleted")
	return nil
}

// Roles returns the fixed role descriptor set.
func (d *Directory) Roles(ctx context.Context) ([]domain.Role, error) {
	if err := d.simulate("roles"); err != nil {
		return nil, err
	}
	roles := make([]domain.Role, len(domain.RoleSet))
	copy(roles, domain.RoleSet)
	return roles, nil
}

// simulate sleeps the randomized artificial delay, then rolls the independent
// failure probability. Both always run to completion; there is no way to
// cancel an in-flight call.
func (d *Directory) simulate(op string) error {
	start := time.Now()
	time.Sleep(d.delay())
	metrics.SimulatedOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	metrics.SimulatedOpsTotal.WithLabelValues(op).Inc()

	if d.opts.FailureRate > 0 && rand.Float64() < d.opts.FailureRate {
		metrics.FaultsInjectedTotal.WithLabelValues(op).Inc()
		d.log.Debug().Str("op", op).Msg("fault injected")
		return fmt.Errorf("%s: %w", op, domain.ErrTransient)
	}
	return nil
}

func (d *Directory) delay() time.Duration {
	window := d.opts.DelayMax - d.opts.DelayMin
	if window <= 0 {
		return d.opts.DelayMin
	}
	return d.opts.DelayMin + rand.N(window)
}

// snapshot returns a copy of the collection for filtering outside the lock.
func (d *Directory) snapshot() []domain.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.User, len(d.users))
	copy(out, d.users)
	return out
}

func (d *Directory) indexOfLocked(id string) int {
	for i, u := range d.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// nextIDLocked allocates max existing numeric id + 1; non-numeric ids are
// ignored.
func (d *Directory) nextIDLocked() int {
	max := 0
	for _, u := range d.users {
		if n, err := strconv.Atoi(u.ID); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

// persist synchronously re-serializes the whole collection. Callers hold the
// lock during mutations, so the persisted write reflects the state of the
// call that completed it.
func (d *Directory) persist(ctx context.Context) error {
	raw, err := json.Marshal(d.users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := d.store.Set(ctx, ports.UsersKey, raw); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}
