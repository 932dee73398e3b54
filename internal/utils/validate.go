package utils

import "regexp"

var phonePattern = regexp.MustCompile(`^\+998\d{9}$`)

// IsValidPhone reports whether the value is a phone number in +998XXXXXXXXX form.
func IsValidPhone(value string) bool {
	return phonePattern.MatchString(value)
}
