package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
	"github.com/realestate/portal/internal/infrastructure/db/memory"
)

// stubBackend lets tests inject storage failures and raw records.
type stubBackend struct {
	mu       sync.Mutex
	sess     *domain.Session
	loadErr  error
	saveErr  error
	clearErr error
	clears   int
}

func (b *stubBackend) Load(context.Context) (*domain.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	if b.sess == nil {
		return nil, ports.ErrNoSession
	}
	c := *b.sess
	return &c, nil
}

func (b *stubBackend) Save(_ context.Context, s *domain.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	c := *s
	b.sess = &c
	return nil
}

func (b *stubBackend) Clear(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clears++
	if b.clearErr != nil {
		return b.clearErr
	}
	b.sess = nil
	return nil
}

func (b *stubBackend) Ping(context.Context) error { return b.loadErr }

type navRecorder struct {
	mu    sync.Mutex
	calls int
}

func (n *navRecorder) ToLogin(context.Context) {
	n.mu.Lock()
	n.calls++
	n.mu.Unlock()
}

func (n *navRecorder) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

func newSessions(t *testing.T) (*SessionService, *navRecorder) {
	t.Helper()
	nav := &navRecorder{}
	return NewSessionService(memory.NewSessionStore(), nav, zerolog.Nop()), nav
}

func TestSessionService_RoundTrip(t *testing.T) {
	svc, _ := newSessions(t)
	ctx := context.Background()
	user := &domain.User{ID: 3, Email: "bob@example.com", Nom: "Bob", Telephone: "0612345678", Role: domain.RoleUser}

	if err := svc.SetAuth(ctx, "jwt-abc", user); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}

	token, ok := svc.Token(ctx)
	if !ok || token != "jwt-abc" {
		t.Fatalf("Token() = %q, %v", token, ok)
	}
	got, ok := svc.User(ctx)
	if !ok {
		t.Fatalf("expected a user")
	}
	if *got != *user {
		t.Fatalf("User() = %+v, want %+v", got, user)
	}
	if !svc.IsAuthenticated(ctx) {
		t.Fatalf("expected authenticated")
	}
	if svc.IsAdmin(ctx) {
		t.Fatalf("ROLE_USER must not be admin")
	}
}

func TestSessionService_LogoutClearsAndNavigates(t *testing.T) {
	svc, nav := newSessions(t)
	ctx := context.Background()
	_ = svc.SetAuth(ctx, "t", &domain.User{Email: "a@example.com", Role: domain.RoleAdmin})

	svc.Logout(ctx)

	if svc.IsAuthenticated(ctx) {
		t.Fatalf("expected logged out")
	}
	if _, ok := svc.User(ctx); ok {
		t.Fatalf("expected no user after logout")
	}
	if svc.IsAdmin(ctx) {
		t.Fatalf("no user means not admin")
	}
	if nav.count() != 1 {
		t.Fatalf("expected one navigation to login, got %d", nav.count())
	}
}

func TestSessionService_IsAdmin(t *testing.T) {
	svc, _ := newSessions(t)
	ctx := context.Background()

	if svc.IsAdmin(ctx) {
		t.Fatalf("absent user must not be admin")
	}
	_ = svc.SetAuth(ctx, "t", &domain.User{Email: "root@example.com", Role: domain.RoleAdmin})
	if !svc.IsAdmin(ctx) {
		t.Fatalf("ROLE_ADMIN must be admin")
	}
	access := svc.Access(ctx)
	if !access.Authenticated || !access.Admin {
		t.Fatalf("unexpected access: %+v", access)
	}
}

func TestSessionService_UnreadableBackendMeansLoggedOut(t *testing.T) {
	backend := &stubBackend{
		sess:    &domain.Session{Token: "t", User: &domain.User{Role: domain.RoleAdmin}},
		loadErr: errors.New("connection refused"),
	}
	svc := NewSessionService(backend, nil, zerolog.Nop())
	ctx := context.Background()

	if svc.IsAuthenticated(ctx) {
		t.Fatalf("unavailable storage must read as logged out")
	}
	if _, ok := svc.User(ctx); ok {
		t.Fatalf("unavailable storage must yield no user")
	}
}

func TestSessionService_PartialRecordMeansLoggedOut(t *testing.T) {
	ctx := context.Background()

	tokenOnly := NewSessionService(&stubBackend{sess: &domain.Session{Token: "t"}}, nil, zerolog.Nop())
	if tokenOnly.IsAuthenticated(ctx) {
		t.Fatalf("token without user must be treated as logged out")
	}

	userOnly := NewSessionService(&stubBackend{sess: &domain.Session{User: &domain.User{Email: "x@example.com"}}}, nil, zerolog.Nop())
	if _, ok := userOnly.User(ctx); ok {
		t.Fatalf("user without token must be treated as logged out")
	}
}

func TestSessionService_SetAuthPropagatesWriteFailure(t *testing.T) {
	svc := NewSessionService(&stubBackend{saveErr: errors.New("disk full")}, nil, zerolog.Nop())
	if err := svc.SetAuth(context.Background(), "t", &domain.User{}); err == nil {
		t.Fatalf("expected write failure to be returned")
	}
	if err := svc.SetAuth(context.Background(), "t", nil); err == nil {
		t.Fatalf("expected nil user to be rejected")
	}
}

func TestSessionService_UpdateUserKeepsToken(t *testing.T) {
	svc, _ := newSessions(t)
	ctx := context.Background()

	if err := svc.UpdateUser(ctx, &domain.User{Nom: "x"}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	_ = svc.SetAuth(ctx, "keep-me", &domain.User{Email: "c@example.com", Nom: "Old", Role: domain.RoleUser})
	if err := svc.UpdateUser(ctx, &domain.User{Email: "c@example.com", Nom: "New", Role: domain.RoleUser}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	token, _ := svc.Token(ctx)
	if token != "keep-me" {
		t.Fatalf("token changed to %q", token)
	}
	u, _ := svc.User(ctx)
	if u.Nom != "New" {
		t.Fatalf("nom = %q, want New", u.Nom)
	}
}

func TestSessionService_TeardownIsIdempotent(t *testing.T) {
	backend := &stubBackend{}
	nav := &navRecorder{}
	svc := NewSessionService(backend, nav, zerolog.Nop())
	ctx := context.Background()
	_ = svc.SetAuth(ctx, "t", &domain.User{Email: "d@example.com"})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Teardown(ctx, &domain.AuthError{})
		}()
	}
	wg.Wait()

	if svc.IsAuthenticated(ctx) {
		t.Fatalf("expected logged out")
	}
	if backend.clears != 5 || nav.count() != 5 {
		t.Fatalf("each teardown must clear and navigate: clears=%d navs=%d", backend.clears, nav.count())
	}
}

func TestSessionService_TeardownNavigatesEvenIfClearFails(t *testing.T) {
	nav := &navRecorder{}
	svc := NewSessionService(&stubBackend{clearErr: errors.New("down")}, nav, zerolog.Nop())
	svc.Logout(context.Background())
	if nav.count() != 1 {
		t.Fatalf("expected navigation despite clear failure")
	}
}
