package domain

import (
	"strings"
	"time"
)

// Role is the authorization level the API assigns to an account.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// User models an account as the API reports it.
// Enabled is only populated by the admin endpoints.
type User struct {
	ID        int64     `json:"id,omitempty" bson:"id,omitempty"`
	Email     string    `json:"email" bson:"email"`
	Nom       string    `json:"nom,omitempty" bson:"nom,omitempty"`
	Telephone string    `json:"telephone,omitempty" bson:"telephone,omitempty"`
	Role      Role      `json:"role" bson:"role"`
	Enabled   *bool     `json:"enabled,omitempty" bson:"enabled,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Clone returns a deep copy of u. Nil stays nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Enabled != nil {
		enabled := *u.Enabled
		c.Enabled = &enabled
	}
	return &c
}

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the body returned by POST /auth/login.
// Only Token, Email and Role are guaranteed; the rest depends on the server build.
type LoginResult struct {
	Token       string `json:"token"`
	Type        string `json:"type,omitempty"`
	ID          int64  `json:"id,omitempty"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	Nom         string `json:"nom,omitempty"`
	Telephone   string `json:"telephone,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// SessionUser builds the profile stored alongside the token after a login.
// Missing display name falls back to the local part of the email address.
func (r *LoginResult) SessionUser() *User {
	nom := r.Nom
	if nom == "" {
		nom, _, _ = strings.Cut(r.Email, "@")
	}
	return &User{
		ID:        r.ID,
		Email:     r.Email,
		Nom:       nom,
		Telephone: r.Telephone,
		Role:      r.Role,
	}
}

// Registration is the sign-up form payload.
type Registration struct {
	Nom             string `json:"nom" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Telephone       string `json:"telephone" validate:"required,phone"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ProfileUpdate is the payload of PUT /user/profile.
type ProfileUpdate struct {
	Nom       string `json:"nom" validate:"required"`
	Telephone string `json:"telephone,omitempty" validate:"omitempty,phonedigits"`
}

// UserUpdate is the payload of PUT /admin/users/{id}.
type UserUpdate struct {
	Nom       string `json:"nom" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Telephone string `json:"telephone,omitempty" validate:"omitempty,phonedigits"`
	Role      Role   `json:"role" validate:"required,oneof=ROLE_USER ROLE_ADMIN"`
	Enabled   *bool  `json:"enabled" validate:"required"`
}

// MatchesSearch reports whether u matches term: a case-insensitive match on
// nom or email, or a plain substring of the telephone. An empty term
// matches everyone.
func (u *User) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(u.Nom), lower) ||
		strings.Contains(strings.ToLower(u.Email), lower) ||
		strings.Contains(u.Telephone, term)
}

// FilterUsers keeps the users matching term, in order.
func FilterUsers(users []User, term string) []User {
	out := make([]User, 0, len(users))
	for i := range users {
		if users[i].MatchesSearch(term) {
			out = append(out, users[i])
		}
	}
	return out
}

// UserStats counts accounts for the admin dashboard. A user without an
// enabled flag counts as disabled.
type UserStats struct {
	Total    int `json:"total"`
	Admins   int `json:"admins"`
	Enabled  int `json:"enabled"`
	Disabled int `json:"disabled"`
}

func SummarizeUsers(users []User) UserStats {
	st := UserStats{Total: len(users)}
	for i := range users {
		if users[i].IsAdmin() {
			st.Admins++
		}
		if users[i].Enabled != nil && *users[i].Enabled {
			st.Enabled++
		} else {
			st.Disabled++
		}
	}
	return st
}
