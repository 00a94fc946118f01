package httpapi

import (
	"testing"
)

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", false},
		{"bearer abc.def.ghi", "abc.def.ghi", false},
		{"  Bearer   abc  ", "abc", false},
		{"", "", true},
		{"Bearer ", "", true},
		{"Basic dXNlcjpwYXNz", "", true},
		{"abc.def.ghi", "", true},
	}
	for _, tc := range cases {
		got, err := extractBearerToken(tc.header)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("extractBearerToken(%q): expected error", tc.header)
			}
			continue
		}
		if err != nil {
			t.Fatalf("extractBearerToken(%q): %v", tc.header, err)
		}
		if got != tc.want {
			t.Fatalf("extractBearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestIsPublicPath(t *testing.T) {
	public := []string{"/auth/login", "/auth/register", "/auth/refresh", "/auth/logout", "/healthz", "/readyz", "/metrics", "/v1/info", "/"}
	for _, p := range public {
		if !isPublicPath(p) {
			t.Fatalf("expected %s to be public", p)
		}
	}
	private := []string{"/users", "/users/me", "/permissions", "/products", "/supplies/s-1", "/auth/login/extra"}
	for _, p := range private {
		if isPublicPath(p) {
			t.Fatalf("expected %s to require authentication", p)
		}
	}
}
