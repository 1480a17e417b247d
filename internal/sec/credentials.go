package sec

import (
	"encoding/base64"
	"strings"
)

const basicScheme = "Basic"

// ParseBasicAuth decodes an Authorization header value of the form
// "Basic base64(username:password)". The password is everything after the
// first colon. ok is false for a missing header, another scheme, an
// undecodable payload, or a payload without a colon; callers must treat all
// of these the same as absent credentials.
func ParseBasicAuth(header string) (username, password string, ok bool) {
	scheme, payload, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, basicScheme) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", false
	}
	return username, password, true
}

// BasicAuth encodes credentials as an Authorization header value. It is the
// inverse of [ParseBasicAuth].
func BasicAuth(username, password string) string {
	return basicScheme + " " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
