package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims whitespace and lower-cases an email address. Every
// comparison and every stored email goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks email format after normalization
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidateOfferCode checks an offer code for basic sanity
func ValidateOfferCode(code string) (bool, string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return false, "Code is required"
	}
	if len(code) > 64 {
		return false, "Code must be at most 64 characters"
	}
	return true, ""
}
