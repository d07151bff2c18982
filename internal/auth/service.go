package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/platform/httpx"
	"github.com/meridian-bms/meridian/internal/shared"
)

// Service performs the upstream identity calls.
type Service struct {
	client *api.Client
}

// NewService constructs the auth service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Login exchanges credentials for a token pair and profile. Upstream 401
// responses surface as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, creds Credentials) (AuthenticatedUser, error) {
	var out AuthenticatedUser
	err := s.client.Post(ctx, "", "/auth/login/", creds, &out)
	if err != nil {
		if errors.Is(err, httpx.ErrUnauthorized) || errors.Is(err, httpx.ErrValidation) {
			return AuthenticatedUser{}, shared.ErrInvalidCredentials
		}
		return AuthenticatedUser{}, fmt.Errorf("login: %w", err)
	}
	return out, nil
}

// Register creates an account upstream and signs the new user in.
func (s *Service) Register(ctx context.Context, reg Registration) (AuthenticatedUser, error) {
	var out AuthenticatedUser
	if err := s.client.Post(ctx, "", "/auth/register/", reg, &out); err != nil {
		return AuthenticatedUser{}, fmt.Errorf("register: %w", err)
	}
	return out, nil
}
