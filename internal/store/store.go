// Package store is the shared dashboard state container. It replaces
// ambient global access with an explicit dependency passed to handlers,
// exposing typed selectors and actions. Only session-derived fields are
// persisted: the signed-in user and the selected branch.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CurrentUser is the minimal identity kept between page views.
type CurrentUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CompanyID int64  `json:"company_id"`
}

// Store persists per-session dashboard state in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs a Store.
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// CurrentUser returns the stored user, or nil when none is set.
func (s *Store) CurrentUser(ctx context.Context, sessionID string) (*CurrentUser, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("store: not initialised")
	}
	data, err := s.client.Get(ctx, s.key(sessionID, "user")).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var user CurrentUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetCurrentUser stores the signed-in user for the session.
func (s *Store) SetCurrentUser(ctx context.Context, sessionID string, user CurrentUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sessionID, "user"), data, s.ttl).Err()
}

// SelectedBranch returns the branch the user is working in, 0 when unset.
func (s *Store) SelectedBranch(ctx context.Context, sessionID string) (int64, error) {
	value, err := s.client.Get(ctx, s.key(sessionID, "branch")).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, nil
	}
	return id, nil
}

// SetSelectedBranch records the active branch for the session.
func (s *Store) SetSelectedBranch(ctx context.Context, sessionID string, branchID int64) error {
	return s.client.Set(ctx, s.key(sessionID, "branch"), strconv.FormatInt(branchID, 10), s.ttl).Err()
}

// Clear drops all state for the session, used on logout.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID, "user"), s.key(sessionID, "branch")).Err()
}

func (s *Store) key(sessionID, field string) string {
	return "store:" + sessionID + ":" + field
}
