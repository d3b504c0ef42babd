package domain

import (
	"errors"
	"testing"
)

func TestPropertyFilter_Active(t *testing.T) {
	if (PropertyFilter{}).Active() {
		t.Fatalf("empty filter must be inactive")
	}
	if !(PropertyFilter{MinPrice: 100000}).Active() {
		t.Fatalf("min price should activate the filter")
	}
	if !(PropertyFilter{Type: TypeVilla}).Active() {
		t.Fatalf("type should activate the filter")
	}
}

func TestPropertyLabels(t *testing.T) {
	if TypeLand.Label() != "Terrain" {
		t.Fatalf("unexpected label: %s", TypeLand.Label())
	}
	if StatusRented.Label() != "Loué" {
		t.Fatalf("unexpected label: %s", StatusRented.Label())
	}
	if PropertyType("CASTLE").Valid() {
		t.Fatalf("unknown type must be invalid")
	}
}

func TestProperty_MainImageURL(t *testing.T) {
	p := Property{Images: []Image{{URL: "a.jpg"}, {URL: "b.jpg", IsMain: true}}}
	if p.MainImageURL() != "b.jpg" {
		t.Fatalf("expected main image, got %s", p.MainImageURL())
	}
	p.Images[1].IsMain = false
	if p.MainImageURL() != "a.jpg" {
		t.Fatalf("expected first image, got %s", p.MainImageURL())
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	wrapped := errors.Join(errors.New("ctx"), &NotFoundError{Path: "/properties/9"})
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("NotFoundError should match ErrNotFound")
	}
	if !errors.Is(&AuthError{}, ErrUnauthorized) {
		t.Fatalf("AuthError should match ErrUnauthorized")
	}
	if !errors.Is(&NetworkError{Timeout: true}, ErrNetwork) {
		t.Fatalf("NetworkError should match ErrNetwork")
	}
	if errors.Is(&ServerError{Status: 500}, ErrNotFound) {
		t.Fatalf("ServerError must not match ErrNotFound")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(&NetworkError{Timeout: true}); got != GenericFailureMessage {
		t.Fatalf("network error message = %q", got)
	}
	if got := UserMessage(&ServerError{Status: 500, Message: "boom"}); got != "boom" {
		t.Fatalf("server error message = %q", got)
	}
	ve := &ValidationError{Fields: []FieldError{{Field: "password", Message: "a"}, {Field: "nom", Message: "b"}}}
	if got := UserMessage(ve); got != "a; b" {
		t.Fatalf("validation message = %q", got)
	}
	if !ve.Has("nom") || ve.Has("email") {
		t.Fatalf("Has() mismatch")
	}
}
