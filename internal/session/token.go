// Package session stores the remote API token pair in an encrypted,
// httpOnly cookie. The dashboard never implements a refresh exchange; an
// expired access token simply makes the next API call fail with an
// authorization error.
package session

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

// CookieName is the cookie carrying the encrypted token pair.
const CookieName = "session"

// DefaultTTL bounds how long the token cookie stays valid.
const DefaultTTL = 12 * time.Hour

// TokenPair mirrors the payload issued by the remote auth endpoints.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CookieCodec encrypts and decrypts the session cookie.
type CookieCodec struct {
	aead   cipher.AEAD
	ttl    time.Duration
	secure bool
	logger *slog.Logger
}

// NewCookieCodec derives an XChaCha20-Poly1305 key from secret.
func NewCookieCodec(secret string, secure bool, logger *slog.Logger) (*CookieCodec, error) {
	if secret == "" {
		return nil, errors.New("session: secret required")
	}
	key := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, err
	}
	return &CookieCodec{aead: aead, ttl: DefaultTTL, secure: secure, logger: logger}, nil
}

// Read returns the token pair from the request cookie, or nil when the
// cookie is absent or malformed. Decode failures are logged and swallowed.
func (c *CookieCodec) Read(r *http.Request) *TokenPair {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	pair, err := c.decode(cookie.Value)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("discarding malformed session cookie", slog.Any("error", err))
		}
		return nil
	}
	return pair
}

// Write encrypts the pair and sets the cookie.
func (c *CookieCodec) Write(w http.ResponseWriter, pair TokenPair) error {
	value, err := c.encode(pair)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.ttl / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Clear expires the cookie.
func (c *CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c *CookieCodec) encode(pair TokenPair) (string, error) {
	plain, err := json.Marshal(pair)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, plain, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *CookieCodec) decode(value string) (*TokenPair, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	if len(raw) < chacha20poly1305.NonceSizeX {
		return nil, errors.New("session: ciphertext too short")
	}
	nonce, sealed := raw[:chacha20poly1305.NonceSizeX], raw[chacha20poly1305.NonceSizeX:]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, err
	}
	var pair TokenPair
	if err := json.Unmarshal(plain, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
