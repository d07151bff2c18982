package session

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T) *CookieCodec {
	t.Helper()
	codec, err := NewCookieCodec("test-secret", false, slog.Default())
	require.NoError(t, err)
	return codec
}

func TestRoundTrip(t *testing.T) {
	codec := newCodec(t)
	rec := httptest.NewRecorder()
	pair := TokenPair{AccessToken: "acc-123", RefreshToken: "ref-456"}
	require.NoError(t, codec.Write(rec, pair))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	require.Equal(t, CookieName, cookie.Name)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	require.Equal(t, int(12*time.Hour/time.Second), cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	got := codec.Read(req)
	require.NotNil(t, got)
	require.Equal(t, pair, *got)
}

func TestReadAbsentCookieReturnsNil(t *testing.T) {
	codec := newCodec(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Nil(t, codec.Read(req))
}

func TestReadMalformedCookieReturnsNil(t *testing.T) {
	codec := newCodec(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-encrypted-json"})
	require.Nil(t, codec.Read(req))
}

func TestReadRejectsCookieFromOtherSecret(t *testing.T) {
	codec := newCodec(t)
	other, err := NewCookieCodec("different-secret", false, slog.Default())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, other.Write(rec, TokenPair{AccessToken: "a"}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	require.Nil(t, codec.Read(req))
}

func TestClearExpiresCookie(t *testing.T) {
	codec := newCodec(t)
	rec := httptest.NewRecorder()
	codec.Clear(rec)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, -1, cookies[0].MaxAge)
	require.Empty(t, cookies[0].Value)
}

func TestSecureFlagInProduction(t *testing.T) {
	codec, err := NewCookieCodec("s", true, slog.Default())
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, codec.Write(rec, TokenPair{AccessToken: "a"}))
	require.True(t, rec.Result().Cookies()[0].Secure)
}

func TestNewCookieCodecRequiresSecret(t *testing.T) {
	_, err := NewCookieCodec("", false, nil)
	require.Error(t, err)
}
