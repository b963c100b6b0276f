package helper

import "strings"

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// It returns "" for a missing or malformed header.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
