// Package rbac maps the two service roles onto the handful of permissions
// the admin endpoints check. Editors manage content; admins can do anything.
package rbac

import (
	"context"
	"net/http"
	"strings"
)

// Policy is a role -> permission-pattern table. A pattern is either a
// literal permission, a "prefix:*" wildcard, or "*" for everything.
type Policy map[string][]string

var DefaultPolicy = Policy{
	"editor": {
		"content:import",
		"validate:run",
		"runs:view",
	},
	"admin": {"*"},
}

// Allowed reports whether role holds perm under the policy.
func (p Policy) Allowed(role, perm string) bool {
	for _, pat := range p[role] {
		switch {
		case pat == "*" || pat == perm:
			return true
		case strings.HasSuffix(pat, "*") && strings.HasPrefix(perm, pat[:len(pat)-1]):
			return true
		}
	}
	return false
}

// Allowed checks perm against the default policy.
func Allowed(role, perm string) bool { return DefaultPolicy.Allowed(role, perm) }

type roleKey struct{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}

// Require rejects the request with 403 unless the context role holds perm.
// It expects an upstream middleware to have put the role into the context.
func Require(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !Allowed(RoleFromContext(r.Context()), perm) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny passes if the role holds at least one of the permissions.
func RequireAny(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			for _, p := range perms {
				if Allowed(role, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}
