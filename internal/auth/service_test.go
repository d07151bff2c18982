package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/shared"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL, slog.Default())
	require.NoError(t, err)
	return NewService(client)
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login/", r.URL.Path)
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ops@example.com", creds.Email)
		json.NewEncoder(w).Encode(AuthenticatedUser{
			ID: 7, Name: "Ops", Email: creds.Email, Company: 3,
		})
	})

	user, err := svc.Login(context.Background(), Credentials{Email: "ops@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, int64(3), user.Company)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "invalid credentials"})
	})

	_, err := svc.Login(context.Background(), Credentials{Email: "ops@example.com", Password: "wrong-pass"})
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestRegisterPropagatesUpstreamError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register/", r.URL.Path)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "email already taken"})
	})

	_, err := svc.Register(context.Background(), Registration{
		Name: "Ops", Email: "ops@example.com", Password: "secret-pass",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already taken")
}
