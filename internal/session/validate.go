package session

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail performs the same shape check the signup form applied.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidUsername accepts 3 to 30 characters.
func ValidUsername(username string) bool {
	n := len(strings.TrimSpace(username))
	return n >= 3 && n <= 30
}

// ValidPassword requires at least 8 characters.
func ValidPassword(password string) bool {
	return len(password) >= 8
}
