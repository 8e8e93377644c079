package api

import "strings"

// bearerToken strips the "Bearer " prefix from an Authorization header.
func bearerToken(header string) string {
	return strings.TrimPrefix(header, "Bearer ")
}

// userIDFromAuth derives the context-store key from the bearer token's second
// dot-separated segment. This is the convention the deployed clients follow;
// the segment is never decoded or verified, so it is an opaque storage key,
// not authenticated identity.
func userIDFromAuth(header string) string {
	parts := strings.Split(bearerToken(header), ".")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
