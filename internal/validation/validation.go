// Package validation provides input validation for account credentials and
// request fields.
package validation

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/google/uuid"
)

const (
	minPasswordLength = 12
	maxPasswordLength = 128
	maxEmailLength    = 254
	minNameLength     = 2
	maxNameLength     = 100
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks email format and length.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLength {
		return fmt.Errorf("email must be at most %d characters", maxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces length and character-class requirements.
func ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(runes) > maxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain an uppercase letter, a lowercase letter, a digit and a special character")
	}
	return nil
}

// ValidateName checks a display name for length and allowed characters.
func ValidateName(name string) error {
	runes := []rune(name)
	if len(runes) < minNameLength {
		return fmt.Errorf("name must be at least %d characters", minNameLength)
	}
	if len(runes) > maxNameLength {
		return fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '-' && r != '\'' && r != '.' {
			return fmt.Errorf("name contains invalid characters")
		}
	}
	return nil
}

// ValidateGuestToken checks that a guest like token is a well-formed UUID.
// Arbitrary client strings would let one visitor guess another's token.
func ValidateGuestToken(token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return fmt.Errorf("invalid guest token")
	}
	return nil
}
