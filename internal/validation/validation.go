// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

// Boundary rules for user and post fields. Title and body use one canonical
// rule for every entry point.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 20
	PasswordMaxLen = 128
	TitleMinLen    = 5
	TitleMaxLen    = 100
	BodyMinLen     = 10
	BodyMaxLen     = 5000
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < UsernameMinLen || len(username) > UsernameMaxLen {
		return fmt.Errorf("username must be between %d and %d characters", UsernameMinLen, UsernameMaxLen)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks password presence and a sanity cap.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) > PasswordMaxLen {
		return fmt.Errorf("password must not exceed %d characters", PasswordMaxLen)
	}
	return nil
}

// ValidatePostTitle checks the canonical title length rule.
func ValidatePostTitle(title string) error {
	if len(title) < TitleMinLen || len(title) > TitleMaxLen {
		return fmt.Errorf("title must be between %d and %d characters", TitleMinLen, TitleMaxLen)
	}
	return nil
}

// ValidatePostBody checks the canonical body length rule.
func ValidatePostBody(body string) error {
	if len(body) < BodyMinLen || len(body) > BodyMaxLen {
		return fmt.Errorf("body must be between %d and %d characters", BodyMinLen, BodyMaxLen)
	}
	return nil
}
