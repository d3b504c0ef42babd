package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/infrastructure/db/memory"
)

type stubAuthAPI struct {
	loginFn    func(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	registerFn func(ctx context.Context, reg domain.Registration) (*domain.User, error)
	profileFn  func(ctx context.Context) (*domain.User, error)
	updateFn   func(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error)
	logouts    int
}

func (s *stubAuthAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	return s.loginFn(ctx, creds)
}

func (s *stubAuthAPI) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	return s.registerFn(ctx, reg)
}

func (s *stubAuthAPI) Profile(ctx context.Context) (*domain.User, error) {
	return s.profileFn(ctx)
}

func (s *stubAuthAPI) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, upd)
}

func (s *stubAuthAPI) Logout(context.Context) { s.logouts++ }

type stubPropertyAPI struct {
	added, removed []int64
	contacted      []string
	favorites      []domain.Favorite
	err            error
}

func (s *stubPropertyAPI) ListProperties(context.Context, domain.PropertyFilter) domain.Listing[domain.Property] {
	return domain.Listing[domain.Property]{}
}

func (s *stubPropertyAPI) Property(context.Context, int64) (*domain.Property, error) {
	return nil, nil
}

func (s *stubPropertyAPI) Favorites(context.Context) domain.Listing[domain.Favorite] {
	return domain.Listing[domain.Favorite]{Items: s.favorites}
}

func (s *stubPropertyAPI) AddFavorite(_ context.Context, id int64) error {
	s.added = append(s.added, id)
	return s.err
}

func (s *stubPropertyAPI) RemoveFavorite(_ context.Context, id int64) error {
	s.removed = append(s.removed, id)
	return s.err
}

func (s *stubPropertyAPI) ContactAgent(_ context.Context, _ int64, message string) error {
	s.contacted = append(s.contacted, message)
	return s.err
}

func (s *stubPropertyAPI) Purchase(context.Context, int64, domain.PurchaseRequest) error { return nil }

func validRegistration() domain.Registration {
	return domain.Registration{
		Nom:             "Alice Martin",
		Email:           "alice@example.com",
		Telephone:       "+33 6 12 34 56 78",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestAuthFlow_RegisterSignsInAndRedirectsByRole(t *testing.T) {
	sessions, _ := newSessions(t)
	var registered domain.Registration
	api := &stubAuthAPI{
		registerFn: func(_ context.Context, reg domain.Registration) (*domain.User, error) {
			registered = reg
			return &domain.User{Email: reg.Email}, nil
		},
		loginFn: func(_ context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
			if creds.Email != "alice@example.com" || creds.Password != "secret1" {
				t.Fatalf("auto-login used unexpected credentials: %+v", creds)
			}
			return &domain.LoginResult{Token: "jwt-1", ID: 12, Email: creds.Email, Role: domain.RoleUser}, nil
		},
	}
	flow := NewAuthFlow(api, sessions, NewValidator(), zerolog.Nop())
	ctx := context.Background()

	out, err := flow.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.Telephone != "+33 6 12 34 56 78" {
		t.Fatalf("registration not forwarded: %+v", registered)
	}
	if out.Status != RegisterSignedIn || out.Redirect != domain.PathHome {
		t.Fatalf("unexpected outcome %+v", out)
	}

	token, ok := sessions.Token(ctx)
	if !ok || token != "jwt-1" {
		t.Fatalf("token = %q, %v", token, ok)
	}
	u, _ := sessions.User(ctx)
	if u.Nom != "Alice Martin" || u.Telephone != "+33 6 12 34 56 78" || u.ID != 12 {
		t.Fatalf("session user should fall back to form values: %+v", u)
	}
}

func TestAuthFlow_RegisterAdminLandsOnAdmin(t *testing.T) {
	sessions, _ := newSessions(t)
	api := &stubAuthAPI{
		registerFn: func(context.Context, domain.Registration) (*domain.User, error) { return &domain.User{}, nil },
		loginFn: func(_ context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
			return &domain.LoginResult{Token: "t", Email: creds.Email, Role: domain.RoleAdmin, Nom: "Root"}, nil
		},
	}
	out, err := NewAuthFlow(api, sessions, NewValidator(), zerolog.Nop()).Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if out.Redirect != domain.PathAdmin || out.User.Nom != "Root" {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestAuthFlow_RegisterWithoutTokenAsksForManualLogin(t *testing.T) {
	sessions, _ := newSessions(t)
	api := &stubAuthAPI{
		registerFn: func(context.Context, domain.Registration) (*domain.User, error) { return &domain.User{}, nil },
		loginFn: func(_ context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
			return &domain.LoginResult{Email: creds.Email, Role: domain.RoleUser}, nil
		},
	}
	out, err := NewAuthFlow(api, sessions, NewValidator(), zerolog.Nop()).Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if out.Status != RegisterManualLogin || out.Redirect != domain.PathLogin {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if sessions.IsAuthenticated(context.Background()) {
		t.Fatalf("session must stay empty")
	}
}

func TestAuthFlow_RegisterValidation(t *testing.T) {
	called := false
	api := &stubAuthAPI{registerFn: func(context.Context, domain.Registration) (*domain.User, error) {
		called = true
		return nil, nil
	}}
	sessions, _ := newSessions(t)
	flow := NewAuthFlow(api, sessions, NewValidator(), zerolog.Nop())

	cases := []struct {
		name  string
		edit  func(r *domain.Registration)
		field string
	}{
		{"mismatched confirmation", func(r *domain.Registration) { r.ConfirmPassword = "other1" }, "confirmPassword"},
		{"short password", func(r *domain.Registration) { r.Password, r.ConfirmPassword = "abc", "abc" }, "password"},
		{"missing phone", func(r *domain.Registration) { r.Telephone = "" }, "telephone"},
		{"malformed phone", func(r *domain.Registration) { r.Telephone = "06-12" }, "telephone"},
		{"bad email", func(r *domain.Registration) { r.Email = "alice" }, "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := validRegistration()
			tc.edit(&reg)
			_, err := flow.Register(context.Background(), reg)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !ve.Has(tc.field) {
				t.Fatalf("expected failure on %q, got %+v", tc.field, ve.Fields)
			}
		})
	}
	if called {
		t.Fatalf("invalid forms must not reach the API")
	}
}

func TestAuthFlow_LoginStoresSessionWithNomFallback(t *testing.T) {
	sessions, _ := newSessions(t)
	api := &stubAuthAPI{loginFn: func(_ context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
		return &domain.LoginResult{Token: "jwt", Email: "jean.dupont@example.com", Role: domain.RoleAdmin}, nil
	}}
	out, err := NewAuthFlow(api, sessions, NewValidator(), zerolog.Nop()).Login(context.Background(), domain.Credentials{Email: "jean.dupont@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.Redirect != domain.PathAdmin {
		t.Fatalf("redirect = %q", out.Redirect)
	}
	u, _ := sessions.User(context.Background())
	if u.Nom != "jean.dupont" {
		t.Fatalf("nom = %q", u.Nom)
	}
}

func TestAuthFlow_LoginWithoutTokenFails(t *testing.T) {
	sessions, _ := newSessions(t)
	api := &stubAuthAPI{loginFn: func(context.Context, domain.Credentials) (*domain.LoginResult, error) {
		return &domain.LoginResult{Email: "a@example.com"}, nil
	}}
	_, err := NewAuthFlow(api, sessions, NewValidator(), zerolog.Nop()).Login(context.Background(), domain.Credentials{Email: "a@example.com", Password: "x"})
	if !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if sessions.IsAuthenticated(context.Background()) {
		t.Fatalf("no token means no session")
	}
}

func TestAuthFlow_LogoutCallsServerThenClears(t *testing.T) {
	sessions, nav := newSessions(t)
	ctx := context.Background()
	_ = sessions.SetAuth(ctx, "t", &domain.User{Email: "a@example.com"})
	api := &stubAuthAPI{}

	NewAuthFlow(api, sessions, NewValidator(), zerolog.Nop()).Logout(ctx)

	if api.logouts != 1 {
		t.Fatalf("expected server logout")
	}
	if sessions.IsAuthenticated(ctx) || nav.count() != 1 {
		t.Fatalf("expected cleared session and one navigation")
	}
}

func TestProfileFlow_UpdateMergesAndKeepsToken(t *testing.T) {
	sessions, _ := newSessions(t)
	ctx := context.Background()
	_ = sessions.SetAuth(ctx, "keep", &domain.User{ID: 4, Email: "p@example.com", Nom: "Old", Role: domain.RoleUser})
	api := &stubAuthAPI{updateFn: func(_ context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
		return &domain.User{ID: 4, Email: "p@example.com", Nom: upd.Nom, Telephone: upd.Telephone}, nil
	}}
	flow := NewProfileFlow(api, sessions, NewValidator())

	u, err := flow.Update(ctx, domain.ProfileUpdate{Nom: "New", Telephone: "0612345678"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if u.Nom != "New" || u.Role != domain.RoleUser {
		t.Fatalf("unexpected merged user %+v", u)
	}
	token, _ := sessions.Token(ctx)
	if token != "keep" {
		t.Fatalf("token changed to %q", token)
	}

	_, err = flow.Update(ctx, domain.ProfileUpdate{Nom: "New", Telephone: "06 12 34 56 78"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("profile phone must be digits only, got %v", err)
	}
}

func TestProfileFlow_RequiresSession(t *testing.T) {
	sessions, _ := newSessions(t)
	flow := NewProfileFlow(&stubAuthAPI{}, sessions, NewValidator())
	if _, err := flow.Load(context.Background()); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := flow.Update(context.Background(), domain.ProfileUpdate{Nom: "x"}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestFavoritesFlow_Toggle(t *testing.T) {
	sessions := NewSessionService(memory.NewSessionStore(), nil, zerolog.Nop())
	ctx := context.Background()
	api := &stubPropertyAPI{}
	flow := NewFavoritesFlow(api, sessions)

	if _, err := flow.Toggle(ctx, 3, false); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("anonymous toggle must ask for login, got %v", err)
	}

	_ = sessions.SetAuth(ctx, "t", &domain.User{Email: "f@example.com"})
	state, err := flow.Toggle(ctx, 3, false)
	if err != nil || !state {
		t.Fatalf("add: state=%v err=%v", state, err)
	}
	state, err = flow.Toggle(ctx, 3, true)
	if err != nil || state {
		t.Fatalf("remove: state=%v err=%v", state, err)
	}
	if len(api.added) != 1 || len(api.removed) != 1 {
		t.Fatalf("added=%v removed=%v", api.added, api.removed)
	}

	api.err = &domain.ServerError{Status: 500, Message: "boom"}
	state, err = flow.Toggle(ctx, 3, false)
	if err == nil || state {
		t.Fatalf("failed add must keep state, got %v %v", state, err)
	}
}

func TestFavoritesFlow_IsFavorite(t *testing.T) {
	sessions := NewSessionService(memory.NewSessionStore(), nil, zerolog.Nop())
	ctx := context.Background()
	_ = sessions.SetAuth(ctx, "t", &domain.User{Email: "f@example.com"})
	api := &stubPropertyAPI{favorites: []domain.Favorite{{PropertyID: 8}, {Property: &domain.Property{ID: 9}}}}
	flow := NewFavoritesFlow(api, sessions)

	if !flow.IsFavorite(ctx, 8) || !flow.IsFavorite(ctx, 9) || flow.IsFavorite(ctx, 10) {
		t.Fatalf("unexpected favorite lookup")
	}
}

func TestInquiryFlow_ContactRequiresSession(t *testing.T) {
	sessions := NewSessionService(memory.NewSessionStore(), nil, zerolog.Nop())
	ctx := context.Background()
	api := &stubPropertyAPI{}
	flow := NewInquiryFlow(api, sessions)

	if err := flow.ContactAgent(ctx, 4, "Bonjour"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("anonymous contact must ask for login, got %v", err)
	}
	if len(api.contacted) != 0 {
		t.Fatalf("anonymous message reached the API: %v", api.contacted)
	}

	_ = sessions.SetAuth(ctx, "t", &domain.User{Email: "v@example.com"})
	if err := flow.ContactAgent(ctx, 4, "Bonjour"); err != nil {
		t.Fatalf("ContactAgent: %v", err)
	}
	if len(api.contacted) != 1 || api.contacted[0] != "Bonjour" {
		t.Fatalf("contacted = %v", api.contacted)
	}
}

func TestPasswordStrength(t *testing.T) {
	cases := []struct {
		pw    string
		score int
		label string
	}{
		{"", 0, "Très faible"},
		{"abc", 0, "Très faible"},
		{"abcdefgh", 1, "Faible"},
		{"Abcdefgh", 2, "Moyen"},
		{"Abcdefg1", 3, "Fort"},
		{"Abcdef1!", 4, "Très fort"},
		{"A1!", 3, "Fort"},
	}
	for _, tc := range cases {
		score, label := PasswordStrength(tc.pw)
		if score != tc.score || label != tc.label {
			t.Fatalf("PasswordStrength(%q) = %d %q, want %d %q", tc.pw, score, label, tc.score, tc.label)
		}
	}
}
