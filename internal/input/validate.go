package input

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"

	// MinPasswordLength is the minimum administrator password length.
	MinPasswordLength = 8
)

var (
	projectNameRegex   = regexp.MustCompile(`^[a-z]*$`)
	nonLowerAlphaRegex = regexp.MustCompile(`[^a-z]`)
	adminUsernameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Validation errors reported to the operator before re-prompting.
var (
	ErrEmptyProjectName  = errors.New("project name must contain at least one letter")
	ErrEmptySubscription = errors.New("subscription id is required")
	ErrInvalidUsername   = errors.New("username must start with a letter or underscore and contain only letters, digits and underscores")
	ErrPasswordTooShort  = fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	ErrPasswordClasses   = errors.New("password must include a lowercase letter, an uppercase letter and a digit")
	ErrPasswordMismatch  = errors.New("passwords do not match")
)

// SanitizeProjectName normalizes a raw project name.
//
// Blank input yields def. Input that is already lowercase letters only is
// returned verbatim. Anything else is lowercased and stripped of every
// character outside a-z. Unlike the other fields, a project name is never
// rejected for its characters; ErrEmptyProjectName is returned only when
// nothing survives sanitization.
func SanitizeProjectName(raw, def string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return def, nil
	}
	if projectNameRegex.MatchString(name) {
		return name, nil
	}

	name = nonLowerAlphaRegex.ReplaceAllString(strings.ToLower(name), "")
	if name == "" {
		return "", ErrEmptyProjectName
	}
	return name, nil
}

// NormalizeSubscriptionID strips whitespace; an empty result is an error.
func NormalizeSubscriptionID(raw string) (string, error) {
	id := strings.Join(strings.Fields(raw), "")
	if id == "" {
		return "", ErrEmptySubscription
	}
	return id, nil
}

// NormalizeRegion lowercases and trims a region, defaulting blank input to def.
func NormalizeRegion(raw, def string) string {
	region := strings.ToLower(strings.TrimSpace(raw))
	if region == "" {
		return def
	}
	return region
}

// NormalizeAdminUsername applies the default and checks the identifier shape.
func NormalizeAdminUsername(raw, def string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		name = def
	}
	if !adminUsernameRegex.MatchString(name) {
		return "", ErrInvalidUsername
	}
	return name, nil
}

// ValidatePassword checks the administrator password complexity policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if !strings.ContainsAny(password, lowerChars) ||
		!strings.ContainsAny(password, upperChars) ||
		!strings.ContainsAny(password, digitChars) {
		return ErrPasswordClasses
	}
	return nil
}

// ValidatePasswordPair checks the policy and that both entries are equal.
func ValidatePasswordPair(password, confirmation string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirmation {
		return ErrPasswordMismatch
	}
	return nil
}
