package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saucerburger/pos-service/internal/auth"
)

func newGate() *auth.Gate {
	return auth.NewGate(auth.DefaultAllowedUsers, "test-secret", time.Hour)
}

func TestGateLogin(t *testing.T) {
	gate := newGate()

	tests := []struct {
		name     string
		username string
		wantUser string
		wantErr  error
	}{
		{name: "exact_match", username: "admin", wantUser: "admin"},
		{name: "case_insensitive", username: "MANAGER", wantUser: "manager"},
		{name: "trims_whitespace", username: "  chef  ", wantUser: "chef"},
		{name: "unknown_user", username: "intruder", wantErr: auth.ErrInvalidCredentials},
		{name: "empty", username: "", wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := gate.Login(tt.username)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user)
			assert.NotEmpty(t, token)
		})
	}
}

func TestGateVerify(t *testing.T) {
	gate := newGate()

	_, token, err := gate.Login("cashier")
	require.NoError(t, err)

	user, err := gate.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "cashier", user)

	t.Run("garbage_token", func(t *testing.T) {
		_, err := gate.Verify("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other := auth.NewGate(auth.DefaultAllowedUsers, "other-secret", time.Hour)
		_, err := other.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("expired_token", func(t *testing.T) {
		shortLived := auth.NewGate(auth.DefaultAllowedUsers, "test-secret", -time.Minute)
		_, expired, err := shortLived.Login("cashier")
		require.NoError(t, err)
		_, err = gate.Verify(expired)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestGateMiddleware(t *testing.T) {
	gate := newGate()
	_, token, err := gate.Login("worker1")
	require.NoError(t, err)

	var seenUser string
	handler := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "valid_bearer", header: "Bearer " + token, wantStatus: http.StatusOK, wantUser: "worker1"},
		{name: "missing_header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong_scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "invalid_token", header: "Bearer nonsense", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser = ""
			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, seenUser)
		})
	}
}

func TestUserFromContextUnauthenticated(t *testing.T) {
	assert.Empty(t, auth.UserFromContext(context.Background()))
}
