package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-bms/meridian/internal/platform/httpx"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(srv.URL, slog.Default())
	require.NoError(t, err)
	return client
}

func TestGetDecodesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		require.Equal(t, "/api/companies/7/accounts/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"bank_name":"First Bank"}]`))
	})

	var accounts []struct {
		ID       int64  `json:"id"`
		BankName string `json:"bank_name"`
	}
	err := client.Get(context.Background(), "token-1", "/api/companies/7/accounts/", &accounts)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, "First Bank", accounts[0].BankName)
}

func TestErrorMessageFromDetailField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"X"}`))
	})

	err := client.Get(context.Background(), "t", "/api/companies/1/", nil)
	require.Error(t, err)
	require.Equal(t, "X", err.Error())
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestErrorMessageFromMessageField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"branch already exists"}`))
	})

	err := client.Post(context.Background(), "t", "/api/branches/", map[string]string{"name": "HQ"}, nil)
	require.Error(t, err)
	require.Equal(t, "branch already exists", err.Error())
}

func TestErrorGenericFallbackWhenUnparseable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>boom</html>`))
	})

	err := client.Get(context.Background(), "t", "/api/products/", nil)
	require.Error(t, err)
	require.Equal(t, genericFailure, err.Error())
	require.ErrorIs(t, err, httpx.ErrUpstream)
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	})

	err := client.Get(context.Background(), "stale", "/api/branches/1/inventories/", nil)
	require.ErrorIs(t, err, httpx.ErrUnauthorized)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"no such order"}`))
	})

	err := client.Delete(context.Background(), "t", "/api/companies/1/purchase-orders/99/")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("", slog.Default())
	require.Error(t, err)
}

type recordingObserver struct {
	methods  []string
	statuses []int
}

func (o *recordingObserver) ObserveUpstream(method string, status int) {
	o.methods = append(o.methods, method)
	o.statuses = append(o.statuses, status)
}

func TestObserverSeesEveryResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"nope"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})
	obs := &recordingObserver{}
	client.SetObserver(obs)

	require.NoError(t, client.Get(context.Background(), "t", "/api/companies/1/", nil))
	require.Error(t, client.Post(context.Background(), "t", "/api/companies/", map[string]string{}, nil))

	require.Equal(t, []string{http.MethodGet, http.MethodPost}, obs.methods)
	require.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, obs.statuses)
}

func TestObserverRecordsTransportFailure(t *testing.T) {
	client, err := New("http://127.0.0.1:1", slog.Default())
	require.NoError(t, err)
	obs := &recordingObserver{}
	client.SetObserver(obs)

	require.Error(t, client.Get(context.Background(), "t", "/api/companies/", nil))
	require.Equal(t, []int{0}, obs.statuses)
}
