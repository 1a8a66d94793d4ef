package session

import (
	"net/http"
	"strings"
)

// TokenCookie is the cookie key the login flow stores the bearer token under.
const TokenCookie = "token"

// ReadToken extracts the bearer token from a raw Cookie header value.
// Pairs are delimited by ';' and split on the first '='. Malformed fragments
// are skipped; the worst case is simply not finding the key.
func ReadToken(rawCookie string) (string, bool) {
	for _, part := range strings.Split(rawCookie, ";") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		if strings.TrimSpace(k) == TokenCookie {
			return v, true
		}
	}
	return "", false
}

// FromRequest reads the session token straight off an incoming request.
// Returns "" for anonymous visitors.
func FromRequest(r *http.Request) string {
	tok, _ := ReadToken(r.Header.Get("Cookie"))
	return tok
}
