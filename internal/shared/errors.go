package shared

import (
	"errors"

	"github.com/meridian-bms/meridian/internal/platform/httpx"
)

var (
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// UserSafeMessage translates an error into text safe to flash at the user.
// Upstream API messages are already user-facing per the remote contract;
// anything unclassified collapses to a generic failure line.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, httpx.ErrUnauthorized):
		return "Your session has expired, please sign in again"
	case errors.Is(err, httpx.ErrNotFound):
		return "The requested record could not be found"
	case errors.Is(err, httpx.ErrValidation):
		return err.Error()
	case errors.Is(err, httpx.ErrUpstream):
		return err.Error()
	default:
		return "Something went wrong, please try again"
	}
}
