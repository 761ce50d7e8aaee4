package rbac

import (
	"context"
	"testing"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		role, perm string
		want       bool
	}{
		{"editor", "content:import", true},
		{"editor", "validate:run", true},
		{"editor", "users:delete", false},
		{"admin", "anything:at:all", true},
		{"viewer", "content:import", false},
		{"", "content:import", false},
	}
	for _, tc := range cases {
		if got := Allowed(tc.role, tc.perm); got != tc.want {
			t.Errorf("Allowed(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestPolicyWildcardPrefix(t *testing.T) {
	p := Policy{"ops": {"validate:*"}}
	if !p.Allowed("ops", "validate:run") {
		t.Error("prefix wildcard must match")
	}
	if p.Allowed("ops", "content:import") {
		t.Error("prefix wildcard must not match other namespaces")
	}
}

func TestRoleContext(t *testing.T) {
	ctx := WithRole(context.Background(), "editor")
	if got := RoleFromContext(ctx); got != "editor" {
		t.Errorf("RoleFromContext = %q", got)
	}
	if got := RoleFromContext(context.Background()); got != "" {
		t.Errorf("empty context role = %q", got)
	}
}
