package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	profileIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]{0,31}$`)
	pinRegex       = regexp.MustCompile(`^[0-9]{4,8}$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks if a child's display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	if len(name) > 40 {
		return ValidationError{Field: "name", Message: "name must be at most 40 characters"}
	}
	return nil
}

// ValidateProfileID checks a profile id: lowercase letters, digits and
// hyphens, up to 32 characters
func ValidateProfileID(id string) error {
	if id == "" {
		return ValidationError{Field: "id", Message: "id is required"}
	}
	if !profileIDRegex.MatchString(id) {
		return ValidationError{Field: "id", Message: "id may only use lowercase letters, digits and hyphens"}
	}
	return nil
}

// ValidatePIN checks that a parent PIN is 4 to 8 digits
func ValidatePIN(pin string) error {
	if pin == "" {
		return ValidationError{Field: "pin", Message: "PIN is required"}
	}
	if !pinRegex.MatchString(pin) {
		return ValidationError{Field: "pin", Message: "PIN must be 4 to 8 digits"}
	}
	return nil
}
