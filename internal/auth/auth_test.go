package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("secret", "admin", "", false)
	tok, err := a.IssueJWT("ann", "editor")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := a.Parse(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Sub != "ann" || claims.Role != "editor" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	a := NewAuthService("secret", "admin", "", false)
	tok, err := a.IssueJWT("ann", "editor")
	if err != nil {
		t.Fatal(err)
	}
	b := NewAuthService("other-secret", "admin", "", false)
	if _, err := b.Parse(tok); err == nil {
		t.Fatal("token signed with a different secret must not parse")
	}
}

func TestLoginHandler(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	a := NewAuthService("secret", "admin", string(hash), true)
	h := LoginHandler(a)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"admin ok", `{"username": "admin", "password": "hunter2"}`, 200},
		{"admin wrong password", `{"username": "admin", "password": "nope"}`, 401},
		{"dev login", `{"username": "ann", "password": "ann"}`, 200},
		{"dev mismatch", `{"username": "ann", "password": "bob"}`, 401},
		{"bad json", `{`, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			h(w, req)
			if w.Code != tc.code {
				t.Errorf("status = %d, want %d", w.Code, tc.code)
			}
			if tc.code == 200 && !strings.Contains(w.Body.String(), "access_token") {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestLoginHandler_DevLoginDisabled(t *testing.T) {
	a := NewAuthService("secret", "admin", "", false)
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"username": "ann", "password": "ann"}`))
	w := httptest.NewRecorder()
	LoginHandler(a)(w, req)
	if w.Code != 401 {
		t.Errorf("status = %d, want 401 with dev login off", w.Code)
	}
}
