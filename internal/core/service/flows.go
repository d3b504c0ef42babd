package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
)

// LoginOutcome tells the caller where to send a freshly logged-in user.
type LoginOutcome struct {
	User     *domain.User
	Redirect string
}

// RegisterStatus names the ways a successful sign-up can end.
type RegisterStatus int

const (
	// RegisterSignedIn means the account was created and the session populated.
	RegisterSignedIn RegisterStatus = iota + 1
	// RegisterManualLogin means the account exists but auto-login returned
	// no token. The session is untouched and the user must log in.
	RegisterManualLogin
)

func (s RegisterStatus) String() string {
	switch s {
	case RegisterSignedIn:
		return "signed_in"
	case RegisterManualLogin:
		return "manual_login"
	default:
		return "unknown"
	}
}

// RegisterOutcome is the result of a successful Register.
type RegisterOutcome struct {
	Status   RegisterStatus
	User     *domain.User
	Redirect string
}

// AuthFlow drives login, sign-up and logout against the API and the session.
type AuthFlow struct {
	api      ports.AuthAPI
	sessions ports.Sessions
	validate *Validator
	log      zerolog.Logger
}

func NewAuthFlow(api ports.AuthAPI, sessions ports.Sessions, validate *Validator, log zerolog.Logger) *AuthFlow {
	return &AuthFlow{api: api, sessions: sessions, validate: validate, log: log}
}

// Login authenticates and stores the session. The redirect depends on role.
func (f *AuthFlow) Login(ctx context.Context, creds domain.Credentials) (LoginOutcome, error) {
	if err := f.validate.Validate(creds); err != nil {
		return LoginOutcome{}, err
	}
	res, err := f.api.Login(ctx, creds)
	if err != nil {
		return LoginOutcome{}, err
	}
	if res.Token == "" {
		return LoginOutcome{}, domain.ErrMissingToken
	}

	user := res.SessionUser()
	if err := f.sessions.SetAuth(ctx, res.Token, user); err != nil {
		return LoginOutcome{}, err
	}
	f.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user logged in")
	return LoginOutcome{User: user, Redirect: domain.LandingPath(user.Role)}, nil
}

// Register validates the form, creates the account and logs in with the
// same credentials.
func (f *AuthFlow) Register(ctx context.Context, reg domain.Registration) (RegisterOutcome, error) {
	if err := f.validate.Validate(reg); err != nil {
		return RegisterOutcome{}, err
	}
	if _, err := f.api.Register(ctx, reg); err != nil {
		return RegisterOutcome{}, err
	}

	res, err := f.api.Login(ctx, domain.Credentials{Email: reg.Email, Password: reg.Password})
	if err != nil {
		return RegisterOutcome{}, err
	}
	if res.Token == "" {
		f.log.Warn().Str("email", reg.Email).Msg("account created but auto-login returned no token")
		return RegisterOutcome{Status: RegisterManualLogin, Redirect: domain.PathLogin}, nil
	}

	// Prefer what the server reports, fall back to what the user typed.
	user := &domain.User{
		ID:        res.ID,
		Email:     res.Email,
		Role:      res.Role,
		Nom:       firstNonEmpty(res.Nom, reg.Nom),
		Telephone: firstNonEmpty(res.Telephone, reg.Telephone),
	}
	if err := f.sessions.SetAuth(ctx, res.Token, user); err != nil {
		return RegisterOutcome{}, err
	}
	f.log.Info().Str("email", user.Email).Msg("account created and signed in")
	return RegisterOutcome{Status: RegisterSignedIn, User: user, Redirect: domain.LandingPath(user.Role)}, nil
}

// Logout tells the server (best effort) and then clears the session.
func (f *AuthFlow) Logout(ctx context.Context) {
	f.api.Logout(ctx)
	f.sessions.Logout(ctx)
}

// ProfileFlow reads and edits the caller's own profile.
type ProfileFlow struct {
	api      ports.AuthAPI
	sessions ports.Sessions
	validate *Validator
}

func NewProfileFlow(api ports.AuthAPI, sessions ports.Sessions, validate *Validator) *ProfileFlow {
	return &ProfileFlow{api: api, sessions: sessions, validate: validate}
}

// Load fetches the profile from the server.
func (f *ProfileFlow) Load(ctx context.Context) (*domain.User, error) {
	if !f.sessions.IsAuthenticated(ctx) {
		return nil, domain.ErrNotAuthenticated
	}
	return f.api.Profile(ctx)
}

// Update sends the edit and merges the returned user into the session.
// The token is left as is.
func (f *ProfileFlow) Update(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	current, ok := f.sessions.User(ctx)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	if err := f.validate.Validate(upd); err != nil {
		return nil, err
	}
	updated, err := f.api.UpdateProfile(ctx, upd)
	if err != nil {
		return nil, err
	}

	merged := mergeUser(current, updated)
	if err := f.sessions.UpdateUser(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// mergeUser overlays the non-empty fields of next onto base.
func mergeUser(base, next *domain.User) *domain.User {
	m := *base
	if next == nil {
		return &m
	}
	if next.ID != 0 {
		m.ID = next.ID
	}
	m.Email = firstNonEmpty(next.Email, m.Email)
	m.Nom = firstNonEmpty(next.Nom, m.Nom)
	m.Telephone = firstNonEmpty(next.Telephone, m.Telephone)
	if next.Role != "" {
		m.Role = next.Role
	}
	if next.Enabled != nil {
		m.Enabled = next.Enabled
	}
	if !next.UpdatedAt.IsZero() {
		m.UpdatedAt = next.UpdatedAt
	}
	return &m
}

// FavoritesFlow toggles a bookmark for the logged-in user.
type FavoritesFlow struct {
	api      ports.PropertyAPI
	sessions ports.Sessions
}

func NewFavoritesFlow(api ports.PropertyAPI, sessions ports.Sessions) *FavoritesFlow {
	return &FavoritesFlow{api: api, sessions: sessions}
}

// Toggle removes the favorite when isFavorite is set and adds it otherwise.
// It returns the new state.
func (f *FavoritesFlow) Toggle(ctx context.Context, id int64, isFavorite bool) (bool, error) {
	if !f.sessions.IsAuthenticated(ctx) {
		return isFavorite, domain.ErrNotAuthenticated
	}
	if isFavorite {
		if err := f.api.RemoveFavorite(ctx, id); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := f.api.AddFavorite(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// IsFavorite reports whether id is among the user's favorites. A degraded
// favorites read counts as not favorite.
func (f *FavoritesFlow) IsFavorite(ctx context.Context, id int64) bool {
	if !f.sessions.IsAuthenticated(ctx) {
		return false
	}
	for _, fav := range f.api.Favorites(ctx).Items {
		if fav.PropertyID == id || (fav.Property != nil && fav.Property.ID == id) {
			return true
		}
	}
	return false
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}


// InquiryFlow forwards visitor messages to listing agents.
type InquiryFlow struct {
	api      ports.PropertyAPI
	sessions ports.Sessions
}

func NewInquiryFlow(api ports.PropertyAPI, sessions ports.Sessions) *InquiryFlow {
	return &InquiryFlow{api: api, sessions: sessions}
}

// ContactAgent needs a logged-in visitor. Anonymous visitors get
// domain.ErrNotAuthenticated and nothing is sent.
func (f *InquiryFlow) ContactAgent(ctx context.Context, id int64, message string) error {
	if !f.sessions.IsAuthenticated(ctx) {
		return domain.ErrNotAuthenticated
	}
	return f.api.ContactAgent(ctx, id, message)
}
