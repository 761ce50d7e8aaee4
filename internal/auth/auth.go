// Package auth issues and validates the HMAC-signed tokens that guard the
// admin endpoints. Two login paths exist: the configured admin account
// (bcrypt hash) and, for offline use, a dev mode where username==password
// grants the editor role.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lessonmark/lessonmark/internal/rbac"
)

const issuer = "lessonmark"

// DefaultTTL keeps tokens valid for a working day.
const DefaultTTL = 8 * time.Hour

var ErrInvalidToken = errors.New("auth: invalid token")

type AuthService struct {
	hmac          []byte
	adminUser     string
	adminPassHash string // bcrypt
	devLogin      bool
	ttl           time.Duration
}

func NewAuthService(secret, adminUser, adminPassHash string, devLogin bool) *AuthService {
	return &AuthService{
		hmac:          []byte(secret),
		adminUser:     adminUser,
		adminPassHash: adminPassHash,
		devLogin:      devLogin,
		ttl:           DefaultTTL,
	}
}

type Claims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"` // "admin" or "editor"
	jwt.RegisteredClaims
}

// IssueJWT signs a token for the given subject and role.
func (a *AuthService) IssueJWT(sub, role string) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Sub:  sub,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	})
	return tok.SignedString(a.hmac)
}

// Parse verifies the signature and expiry and returns the claims. Only
// HS256 is accepted; a token signed any other way is rejected up front.
func (a *AuthService) Parse(raw string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return a.hmac, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// authenticate maps credentials to a role, or "" when they are bad.
func (a *AuthService) authenticate(username, password string) string {
	if username == a.adminUser &&
		bcrypt.CompareHashAndPassword([]byte(a.adminPassHash), []byte(password)) == nil {
		return "admin"
	}
	if a.devLogin && username != "" && username == password {
		return "editor"
	}
	return ""
}

// LoginHandler serves POST /auth/login with a JSON username/password body
// and answers {"access_token": "..."}.
func LoginHandler(a *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		role := a.authenticate(req.Username, req.Password)
		if role == "" {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := a.IssueJWT(req.Username, role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok})
	}
}

type subjectKey struct{}

// WithSubject records the authenticated username in the context.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey{}, sub)
}

func SubjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(subjectKey{}).(string)
	return sub
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if raw, ok := strings.CutPrefix(h, "Bearer "); ok && raw != "" {
		return raw, true
	}
	return "", false
}

// JWTMiddleware validates the bearer token and puts subject and role into
// the request context for rbac checks downstream.
func JWTMiddleware(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			claims, err := a.Parse(raw)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := WithSubject(r.Context(), claims.Sub)
			ctx = rbac.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
