package utils

import (
	"regexp"
	"strings"
)

var (
	phoneJunk  = regexp.MustCompile(`[\s-]`)
	phoneRegex = regexp.MustCompile(`^(\+?60|0)1[0-9]{8,9}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// CleanPhone strips whitespace and dashes from a phone number.
func CleanPhone(phone string) string {
	return phoneJunk.ReplaceAllString(phone, "")
}

// IsValidPhone accepts Malaysian mobile numbers such as 012-345 6789 or +60123456789.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(CleanPhone(phone))
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}
