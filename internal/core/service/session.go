package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
	"github.com/realestate/portal/internal/metrics"
)

var errNilUser = errors.New("session user is required")

// Teardown reasons, used as metric labels.
const (
	ReasonLogout       = "logout"
	ReasonUnauthorized = "unauthorized"
)

// SessionService is the single authority on who is logged in.
// Reads never fail: an unreadable backend is reported as logged out.
type SessionService struct {
	backend ports.SessionBackend
	nav     ports.Navigator
	log     zerolog.Logger
	now     func() time.Time

	// mu serialises read-modify-write sequences within this process.
	mu sync.Mutex
}

// NewSessionService wires a session store to its backend and navigator.
// A nil navigator disables navigation.
func NewSessionService(backend ports.SessionBackend, nav ports.Navigator, log zerolog.Logger) *SessionService {
	if nav == nil {
		nav = ports.NavigatorFunc(func(context.Context) {})
	}
	return &SessionService{backend: backend, nav: nav, log: log, now: time.Now}
}

// SetAuth stores token and user in one write. The token shape is not checked.
func (s *SessionService) SetAuth(ctx context.Context, token string, user *domain.User) error {
	if user == nil {
		return errNilUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &domain.Session{Token: token, User: user.Clone(), SavedAt: s.now().UTC()}
	if err := s.backend.Save(ctx, sess); err != nil {
		s.log.Error().Err(err).Msg("failed to persist session")
		return err
	}

	ev := s.log.Info().Str("email", user.Email).Str("role", string(user.Role))
	if exp, ok := sess.TokenExpiry(); ok {
		ev = ev.Time("token_expires_at", exp)
	}
	ev.Msg("session stored")
	return nil
}

// Current returns the stored session, or false when there is none usable.
func (s *SessionService) Current(ctx context.Context) (*domain.Session, bool) {
	sess, err := s.backend.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNoSession) {
			s.log.Warn().Err(err).Msg("session unreadable, treating as logged out")
		}
		return nil, false
	}
	if !sess.Valid() {
		s.log.Warn().Msg("incomplete session record, treating as logged out")
		return nil, false
	}
	return sess, true
}

// Token returns the bearer token, read at call time.
func (s *SessionService) Token(ctx context.Context) (string, bool) {
	sess, ok := s.Current(ctx)
	if !ok {
		return "", false
	}
	return sess.Token, true
}

// User returns a copy of the stored user.
func (s *SessionService) User(ctx context.Context) (*domain.User, bool) {
	sess, ok := s.Current(ctx)
	if !ok {
		return nil, false
	}
	return sess.User.Clone(), true
}

// IsAuthenticated reports token presence only; expiry is not checked.
func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// IsAdmin reports whether the stored user has the admin role.
func (s *SessionService) IsAdmin(ctx context.Context) bool {
	u, ok := s.User(ctx)
	return ok && u.IsAdmin()
}

// Access snapshots the session for the route guard.
func (s *SessionService) Access(ctx context.Context) domain.Access {
	u, ok := s.User(ctx)
	return domain.Access{Authenticated: ok, Admin: ok && u.IsAdmin()}
}

// UpdateUser replaces the stored user and keeps the token.
func (s *SessionService) UpdateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.Current(ctx)
	if !ok {
		return domain.ErrNotAuthenticated
	}
	sess.User = user.Clone()
	sess.SavedAt = s.now().UTC()
	if err := s.backend.Save(ctx, sess); err != nil {
		s.log.Error().Err(err).Msg("failed to persist updated user")
		return err
	}
	return nil
}

// Logout clears the session and navigates to the login view.
func (s *SessionService) Logout(ctx context.Context) {
	s.teardown(ctx, ReasonLogout)
}

// Teardown is Logout triggered by the server rejecting our credentials.
// It is safe to call repeatedly and concurrently.
func (s *SessionService) Teardown(ctx context.Context, _ *domain.AuthError) {
	s.teardown(ctx, ReasonUnauthorized)
}

func (s *SessionService) teardown(ctx context.Context, reason string) {
	s.mu.Lock()
	err := s.backend.Clear(ctx)
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("reason", reason).Msg("failed to clear session")
	} else {
		s.log.Info().Str("reason", reason).Msg("session cleared")
	}
	metrics.SessionTeardownsTotal.WithLabelValues(reason).Inc()
	s.nav.ToLogin(ctx)
}

// Ping checks the backend; used by readiness probes.
func (s *SessionService) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}
