package auth

import "strings"

// BearerToken strips a "Bearer " prefix from an Authorization header
// value, returning the raw token string and whether a prefix was present.
func BearerToken(authorizationHeader string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authorizationHeader, prefix) {
		return "", false
	}
	return strings.TrimPrefix(authorizationHeader, prefix), true
}
