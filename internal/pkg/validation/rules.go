package validation

import (
	"regexp"
	"strings"
)

// Account validation rules
var (
	// Username: letters, digits, dot, dash, underscore
	UsernamePattern = `^[a-zA-Z0-9._\-]+$`

	UsernameMinLength = 3
	UsernameMaxLength = 30

	PasswordMinLength = 8
)

var usernameRegexp = regexp.MustCompile(UsernamePattern)

// ValidUsername reports whether a username satisfies the account rules.
func ValidUsername(username string) bool {
	username = strings.TrimSpace(username)
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return false
	}
	return usernameRegexp.MatchString(username)
}

// ValidPassword reports whether a password meets the minimum strength rules.
func ValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}
