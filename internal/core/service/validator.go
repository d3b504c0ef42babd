package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/realestate/portal/internal/core/domain"
)

var (
	// phoneFormRe is the lenient rule used on the sign-up form.
	phoneFormRe = regexp.MustCompile(`^[+]?[0-9\s\-()]{10,}$`)
	// phoneDigitsRe matches what the API accepts on profile and admin updates.
	phoneDigitsRe = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)
)

// Validator checks form payloads before they are sent. It also satisfies
// echo.Validator so handlers can call c.Validate.
type Validator struct {
	v *validator.Validate
}

// NewValidator registers the portal's custom tags: phone and phonedigits.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneFormRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		return phoneDigitsRe.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Validate returns a *domain.ValidationError listing every failed field.
func (val *Validator) Validate(i any) error {
	if err := val.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]domain.FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, domain.FieldError{Field: fe.Field(), Message: fieldError(fe)})
			}
			return &domain.ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// fieldError converts a single validation failure into a user-facing message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		if field == "telephone" {
			return "Le numéro de téléphone est obligatoire"
		}
		return field + " est obligatoire"
	case "email":
		return field + " doit être une adresse email valide"
	case "min":
		if field == "password" {
			return fmt.Sprintf("Le mot de passe doit contenir au moins %s caractères", fe.Param())
		}
		return fmt.Sprintf("%s doit contenir au moins %s caractères", field, fe.Param())
	case "eqfield":
		return "Les mots de passe ne correspondent pas"
	case "phone", "phonedigits":
		return "Format de numéro de téléphone invalide"
	case "oneof":
		return fmt.Sprintf("%s doit valoir l'une des valeurs: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s est invalide (%s)", field, fe.Tag())
	}
}

// Password strength levels, from PasswordStrength.
var strengthLabels = [...]string{"Très faible", "Faible", "Moyen", "Fort", "Très fort"}

// PasswordStrength scores pw from 0 to 4: one point each for a length of at
// least 8, an uppercase letter, a digit and a non-alphanumeric character.
func PasswordStrength(pw string) (score int, label string) {
	var upper, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
		default:
			special = true
		}
	}
	if utf8.RuneCountInString(pw) >= 8 {
		score++
	}
	for _, ok := range []bool{upper, digit, special} {
		if ok {
			score++
		}
	}
	return score, strengthLabels[score]
}
