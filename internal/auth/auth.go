// Package auth gates the admin surface. The passkey is verified
// server-side against a bcrypt hash and a successful login issues a
// short-lived signed session token; presence of a key in browser storage is
// never trusted.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/halvard/folio/internal/apperr"
)

const sessionTTL = 24 * time.Hour

// Sessions issues and verifies admin session tokens.
type Sessions struct {
	enabled     bool
	passkeyHash []byte
	secret      []byte
}

// New creates a session manager. When enabled is false every request
// passes through, suitable for local dev.
func New(enabled bool, passkeyHash, secret string) *Sessions {
	return &Sessions{
		enabled:     enabled,
		passkeyHash: []byte(passkeyHash),
		secret:      []byte(secret),
	}
}

// Enabled reports whether the admin gate is active.
func (s *Sessions) Enabled() bool { return s.enabled }

// Login verifies the passkey and returns a signed session token.
func (s *Sessions) Login(passkey string) (string, error) {
	if !s.enabled {
		return "", fmt.Errorf("auth: login while auth disabled: %w", apperr.ErrInvalid)
	}
	if err := bcrypt.CompareHashAndPassword(s.passkeyHash, []byte(passkey)); err != nil {
		return "", fmt.Errorf("auth: passkey mismatch: %w", apperr.ErrUnauthorized)
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a session token's signature and expiry.
func (s *Sessions) Verify(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("auth: invalid session: %w", apperr.ErrUnauthorized)
	}
	return nil
}

// Middleware enforces a Bearer session token on admin routes. In disabled
// mode all requests pass through.
func (s *Sessions) Middleware(reject func(w http.ResponseWriter, status int, msg string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.enabled {
				next.ServeHTTP(w, r)
				return
			}
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				reject(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if err := s.Verify(strings.TrimPrefix(header, "Bearer ")); err != nil {
				reject(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HashPasskey bcrypt-hashes a passkey for storage in configuration.
func HashPasskey(passkey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passkey), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash passkey: %w", err)
	}
	return string(hash), nil
}
