package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the persisted pair of bearer token and user profile.
// Both halves are always written and cleared together as one record.
type Session struct {
	Token   string    `json:"token" bson:"token"`
	User    *User     `json:"user" bson:"user"`
	SavedAt time.Time `json:"savedAt" bson:"saved_at"`
}

// Valid reports whether the record holds both a token and a user.
// A record missing either half is treated as logged out.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// TokenExpiry returns the exp claim of the token when it is a JWT.
// The signature is NOT verified: the value is informational and never used
// to decide whether the session is authenticated.
func (s *Session) TokenExpiry() (time.Time, bool) {
	if s == nil || s.Token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
