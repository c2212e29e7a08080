package httpx

import "strings"

// ExtractBearer pulls the credential out of an Authorization header.
func ExtractBearer(authz string) (string, bool) {
	const prefix = "Bearer "
	if authz == "" || !strings.HasPrefix(authz, prefix) {
		return "", false
	}
	return strings.TrimSpace(authz[len(prefix):]), true
}
