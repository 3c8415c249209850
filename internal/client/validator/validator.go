// Package validator holds the login and registration form checks.
//
// The predicates are pure and stateless. Patterns and character classes
// match the dashboard's web forms exactly, so a value accepted here is
// accepted there and vice versa.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// PasswordMinLength is the minimum accepted password length.
const PasswordMinLength = 8

// PasswordSpecialChars is the set of which a password needs at least one.
const PasswordSpecialChars = "@$!%*?&"

var (
	emailRe = regexp.MustCompile(`^([\w\.\+]{1,})([^\W])(@)([\w]{1,})(\.[\w]{1,})+$`)

	passwordCharsRe = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]+$`)
	lowerRe         = regexp.MustCompile(`[a-z]`)
	upperRe         = regexp.MustCompile(`[A-Z]`)
	digitRe         = regexp.MustCompile(`\d`)
	specialRe       = regexp.MustCompile(`[@$!%*?&]`)
)

// ErrInvalid is matched by every *FieldError.
var ErrInvalid = errors.New("validation error")

// FieldError names the form field that failed and why.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalid
}

// CheckForm reports whether every field has a non-empty value.
func CheckForm(fields map[string]string) bool {
	for _, v := range fields {
		if v == "" {
			return false
		}
	}
	return true
}

// CheckFormFields is CheckForm for forms whose fields may be absent (nil).
func CheckFormFields(fields map[string]*string) bool {
	for _, v := range fields {
		if v == nil || *v == "" {
			return false
		}
	}
	return true
}

// CheckEmail reports whether address looks like an e-mail address. The
// pattern is deliberately loose and not RFC 5322 complete.
func CheckEmail(address string) bool {
	return emailRe.MatchString(address)
}

// CheckPassword reports whether password is at least PasswordMinLength
// characters of letters, digits and PasswordSpecialChars, with at least one
// lowercase letter, one uppercase letter, one digit and one special char.
func CheckPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}
	return passwordCharsRe.MatchString(password) &&
		lowerRe.MatchString(password) &&
		upperRe.MatchString(password) &&
		digitRe.MatchString(password) &&
		specialRe.MatchString(password)
}

// CheckPasswordConfirmation reports whether both entries are identical.
func CheckPasswordConfirmation(password, confirmation string) bool {
	return password == confirmation
}

// ValidateForm returns a *FieldError for the first empty field, by name.
func ValidateForm(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if fields[name] == "" {
			return &FieldError{Field: name, Reason: "is required"}
		}
	}
	return nil
}

// ValidateLogin checks a login form.
func ValidateLogin(email, password string) error {
	if err := ValidateForm(map[string]string{"email": email, "password": password}); err != nil {
		return err
	}
	if !CheckEmail(email) {
		return &FieldError{Field: "email", Reason: "is not a valid e-mail address"}
	}
	return nil
}

// ValidateRegistration checks a registration form: all fields filled,
// e-mail shape, password strength and confirmation.
func ValidateRegistration(fields map[string]string, email, password, confirmation string) error {
	if err := ValidateForm(fields); err != nil {
		return err
	}
	if !CheckEmail(email) {
		return &FieldError{Field: "email", Reason: "is not a valid e-mail address"}
	}
	if !CheckPassword(password) {
		return &FieldError{
			Field: "password",
			Reason: fmt.Sprintf("must be at least %d characters with upper and lower case letters, a digit and one of %s",
				PasswordMinLength, PasswordSpecialChars),
		}
	}
	if !CheckPasswordConfirmation(password, confirmation) {
		return &FieldError{Field: "password_confirmation", Reason: "does not match"}
	}
	return nil
}
