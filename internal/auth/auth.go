// Package auth is the login gate: a static, case-insensitive allow-list of
// staff usernames, with JWT session tokens for continuity across requests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// ErrInvalidCredentials is the generic rejection for any username outside
// the allow-list.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultAllowedUsers is the staff roster accepted by the login gate.
var DefaultAllowedUsers = []string{"admin", "manager", "worker1", "worker2", "chef", "cashier"}

type contextKey struct{}

// Gate accepts or rejects usernames and mints session tokens for the
// accepted identity.
type Gate struct {
	allowed map[string]struct{}
	secret  []byte
	ttl     time.Duration
}

func NewGate(allowed []string, secret string, ttl time.Duration) *Gate {
	set := make(map[string]struct{}, len(allowed))
	for _, u := range allowed {
		set[strings.ToLower(u)] = struct{}{}
	}
	return &Gate{allowed: set, secret: []byte(secret), ttl: ttl}
}

// Login accepts a username iff it case-insensitively matches the allow-list
// and returns the canonical (lowercased) identity with a session token.
func (g *Gate) Login(username string) (user, token string, err error) {
	user = strings.ToLower(strings.TrimSpace(username))
	if _, ok := g.allowed[user]; !ok {
		return "", "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub": user,
		"iat": jwt.NewNumericDate(time.Now()),
		"exp": jwt.NewNumericDate(time.Now().Add(g.ttl)),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", "", fmt.Errorf("auth: failed to sign session token: %w", err)
	}
	return user, token, nil
}

// Verify parses a session token and returns the identity it carries.
func (g *Gate) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidCredentials
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredentials
	}
	user, ok := claims["sub"].(string)
	if !ok || user == "" {
		return "", ErrInvalidCredentials
	}
	return user, nil
}

// Middleware rejects requests without a valid Bearer session token and
// injects the identity into the request context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get("Authorization"))
		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := g.Verify(parts[1])
		if err != nil {
			log.Debug().Err(err).Msg("auth: session token rejected")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser stores the acting user on a context.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the acting user, empty when unauthenticated.
func UserFromContext(ctx context.Context) string {
	user, _ := ctx.Value(contextKey{}).(string)
	return user
}
