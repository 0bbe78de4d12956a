package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/admindesk/directory-system/internal/api/metrics"
	"github.com/admindesk/directory-system/internal/core/domain"
	"github.com/admindesk/directory-system/internal/core/ports"
)

// The directory is a simulation: every account shares one fixed reference
// credential. It is still stored hashed and compared with bcrypt so the
// login path behaves like a real one.
const referencePassword = "password"

// credentialLookupPageSize bounds the list call used to resolve an email to a
// user at login time.
const credentialLookupPageSize = 1000

// SessionService implements ports.SessionService: at most one authenticated
// user, a fixed lifetime, lazy expiry, and durable reconstruction across
// restarts.
type SessionService struct {
	repo      ports.UserRepository
	store     ports.SnapshotStore
	log       zerolog.Logger
	jwtSecret string
	refHash   []byte

	// now is swappable in tests to control the expiry window.
	now func() time.Time

	mu            sync.Mutex
	user          *domain.User
	sessionStart  time.Time
	authenticated bool
}

// NewSessionService builds the session manager and immediately attempts to
// reconstruct a persisted session; a stored record outside the lifetime
// window is cleared rather than trusted.
func NewSessionService(ctx context.Context, repo ports.UserRepository, store ports.SnapshotStore, jwtSecret string, log zerolog.Logger) (*SessionService, error) {
	refHash, err := bcrypt.GenerateFromPassword([]byte(referencePassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash reference credential: %w", err)
	}

	s := &SessionService{
		repo:      repo,
		store:     store,
		log:       log,
		jwtSecret: jwtSecret,
		refHash:   refHash,
		now:       time.Now,
	}
	s.restore(ctx)
	return s, nil
}

// Login resolves the email case-insensitively through the directory backend,
// checks the password against the reference credential, and persists the new
// session. The two failure modes are distinct: unknown email yields
// domain.ErrUserNotFound, a wrong password domain.ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	page, err := s.repo.List(ctx, ports.ListQuery{Page: 1, PageSize: credentialLookupPageSize})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login lookup: %w", err)
	}

	var found *domain.User
	for i := range page.Data {
		if strings.EqualFold(page.Data[i].Email, email) {
			found = &page.Data[i]
			break
		}
	}
	if found == nil {
		metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		return "", nil, domain.ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword(s.refHash, []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	start := s.now()

	s.mu.Lock()
	s.user = found
	s.sessionStart = start
	s.authenticated = true
	s.mu.Unlock()

	if err := s.persist(ctx, domain.Session{User: *found, Timestamp: start}); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session")
	}

	token, err := s.signToken(found, start)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("email", found.Email).Str("role", found.Role).Msg("logged in")
	return token, found, nil
}

// Logout unconditionally transitions to anonymous and clears the durable
// record. Safe to call repeatedly.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.sessionStart = time.Time{}
	s.authenticated = false
	s.mu.Unlock()

	if err := s.store.Delete(ctx, ports.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// HasRole is false in every non-authenticated state; role comparison is
// case-insensitive.
func (s *SessionService) HasRole(role string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated || s.user == nil {
		return false
	}
	return strings.EqualFold(s.user.Role, role)
}

// IsExpired is true when no session start exists or the elapsed wall-clock
// time has reached the lifetime. It never mutates state; callers decide when
// to act on it.
func (s *SessionService) IsExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionStart.IsZero() {
		return true
	}
	return s.now().Sub(s.sessionStart) >= domain.SessionLifetime
}

func (s *SessionService) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	clone := *s.user
	return &clone
}

// SessionStart exposes the login timestamp; zero when anonymous.
func (s *SessionService) SessionStart() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionStart
}

// restore loads the durable session and trusts it only when the stored
// timestamp is still inside the lifetime window; otherwise the stale record
// is cleared and the state stays anonymous.
func (s *SessionService) restore(ctx context.Context) {
	raw, err := s.store.Get(ctx, ports.SessionKey)
	if err != nil {
		return
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.Warn().Err(err).Msg("session snapshot corrupt, clearing")
		_ = s.store.Delete(ctx, ports.SessionKey)
		return
	}

	if sess.Expired(s.now()) {
		s.log.Info().Msg("session expired on load, clearing")
		_ = s.store.Delete(ctx, ports.SessionKey)
		return
	}

	s.mu.Lock()
	user := sess.User
	s.user = &user
	s.sessionStart = sess.Timestamp
	s.authenticated = true
	s.mu.Unlock()
	s.log.Info().Str("email", user.Email).Time("session_start", sess.Timestamp).Msg("session restored")
}

func (s *SessionService) persist(ctx context.Context, sess domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.store.Set(ctx, ports.SessionKey, raw)
}

// signToken issues the bearer token the HTTP surface hands back to the
// dashboard. The token expires with the session.
func (s *SessionService) signToken(user *domain.User, start time.Time) (string, error) {
	claims := jwt.MapClaims{
		"email": user.Email,
		"role":  user.Role,
		"iat":   start.Unix(),
		"exp":   start.Add(domain.SessionLifetime).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
