package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                               "/",
		"/metrics":                       "/metrics",
		"/users":                         "/users",
		"/users/me":                      "/users/me",
		"/users/assign-role":             "/users/assign-role",
		"/users/01J9ZX5C3T":              "/users/:id",
		"/permissions":                   "/permissions",
		"/permissions/seller":            "/permissions/:role",
		"/permissions/seller/assign":     "/permissions/:role/assign",
		"/permissions/seller/revoke":     "/permissions/:role/revoke",
		"/permissions/seller/other":      "/permissions/seller/other",
		"/auth/login":                    "/auth/login",
		"/auth/refresh?redirect=1":       "/auth/refresh",
		"/users/01J9ZX5C3T?verbose=true": "/users/:id",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
