// Package auth proxies sign-in and registration to the upstream identity
// endpoints and manages the local token cookie.
package auth

import "github.com/meridian-bms/meridian/internal/session"

// Credentials is the login payload sent upstream.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload sent upstream.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticatedUser is the upstream response to a successful login or
// registration: the token pair plus the user profile.
type AuthenticatedUser struct {
	Tokens  session.TokenPair `json:"tokens"`
	ID      int64             `json:"id"`
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Company int64             `json:"company_id"`
}
