package auth

import "testing"

func TestCheckPermissions(t *testing.T) {
	role := Role{
		Name: "seller",
		Permissions: []Permission{
			{ID: "p-a", Name: "a"},
			{ID: "p-b", Name: "b"},
		},
	}

	cases := []struct {
		name       string
		required   []string
		requireAll bool
		allowed    bool
	}{
		{"all present, require all", []string{"a", "b"}, true, true},
		{"one missing, require all", []string{"a", "c"}, true, false},
		{"one present, any of", []string{"a", "c"}, false, true},
		{"none present, any of", []string{"c", "d"}, false, false},
		{"empty list, require all", nil, true, true},
		{"empty list, any of", nil, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPermissions(role, tc.required, tc.requireAll)
			if tc.allowed && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tc.allowed {
				if KindOf(err) != KindForbidden {
					t.Fatalf("expected Forbidden, got %v", err)
				}
			}
		})
	}
}

func TestCheckPermissionsEmptyRole(t *testing.T) {
	if err := CheckPermissions(Role{Name: "bare"}, []string{"a"}, false); KindOf(err) != KindForbidden {
		t.Fatalf("expected Forbidden for a role with no grants, got %v", err)
	}
}
