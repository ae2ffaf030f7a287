package utils

import "strings"

// NormalizeEmail is the key used to detect repeated submissions.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
