package session_test

import (
	"net/http/httptest"
	"testing"

	"hbnb_web/internal/session"
)

func TestReadToken(t *testing.T) {
	cases := []struct {
		name   string
		cookie string
		want   string
		ok     bool
	}{
		{"single pair", "token=abc123", "abc123", true},
		{"among others", "theme=dark; token=abc123; lang=en", "abc123", true},
		{"leading spaces", "  theme=dark;   token=xyz", "xyz", true},
		{"value contains equals", "token=a=b=c", "a=b=c", true},
		{"missing", "theme=dark; lang=en", "", false},
		{"empty store", "", "", false},
		{"malformed fragments ignored", "garbage; ;;; token=ok; =weird", "ok", true},
		{"prefix key does not match", "tokenish=nope", "", false},
		{"empty value", "token=", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := session.ReadToken(tc.cookie)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("ReadToken(%q) = (%q, %v), want (%q, %v)", tc.cookie, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Cookie", "token=tok-1; theme=light")
	if got := session.FromRequest(r); got != "tok-1" {
		t.Fatalf("FromRequest = %q", got)
	}

	anon := httptest.NewRequest("GET", "/", nil)
	if got := session.FromRequest(anon); got != "" {
		t.Fatalf("expected empty token for anonymous request, got %q", got)
	}
}
