package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Hour), client
}

func TestCurrentUserRoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	user, err := s.CurrentUser(ctx, "sess-1")
	require.NoError(t, err)
	require.Nil(t, user)

	want := CurrentUser{ID: 9, Email: "ops@acme.test", Name: "Ops", CompanyID: 3}
	require.NoError(t, s.SetCurrentUser(ctx, "sess-1", want))

	got, err := s.CurrentUser(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, &want, got)
}

func TestSelectedBranchDefaultsToZero(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	id, err := s.SelectedBranch(ctx, "sess-1")
	require.NoError(t, err)
	require.Zero(t, id)

	require.NoError(t, s.SetSelectedBranch(ctx, "sess-1", 14))
	id, err = s.SelectedBranch(ctx, "sess-1")
	require.NoError(t, err)
	require.EqualValues(t, 14, id)
}

func TestClearDropsAllState(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetCurrentUser(ctx, "sess-1", CurrentUser{ID: 1}))
	require.NoError(t, s.SetSelectedBranch(ctx, "sess-1", 2))
	require.NoError(t, s.Clear(ctx, "sess-1"))

	user, err := s.CurrentUser(ctx, "sess-1")
	require.NoError(t, err)
	require.Nil(t, user)
	id, err := s.SelectedBranch(ctx, "sess-1")
	require.NoError(t, err)
	require.Zero(t, id)
}

func TestLookupCacheLoadsOnceUntilInvalidated(t *testing.T) {
	_, client := newStore(t)
	cache := NewLookupCache(client, time.Hour)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return []string{"HQ", "Warehouse"}, nil
	}

	var names []string
	require.NoError(t, cache.FetchJSON(ctx, "branches:3", &names, loader))
	require.NoError(t, cache.FetchJSON(ctx, "branches:3", &names, loader))
	require.Equal(t, 1, calls)
	require.Equal(t, []string{"HQ", "Warehouse"}, names)

	require.NoError(t, cache.Invalidate(ctx, "branches:3"))
	require.NoError(t, cache.FetchJSON(ctx, "branches:3", &names, loader))
	require.Equal(t, 2, calls)
}

func TestLookupCacheLoaderFailureSurfaces(t *testing.T) {
	_, client := newStore(t)
	cache := NewLookupCache(client, time.Hour)

	sentinel := errors.New("upstream down")
	var out []string
	err := cache.FetchJSON(context.Background(), "products:1", &out, func(context.Context) (any, error) {
		return nil, sentinel
	})
	require.ErrorIs(t, err, sentinel)
}

func TestLookupCacheRefreshOverwrites(t *testing.T) {
	_, client := newStore(t)
	cache := NewLookupCache(client, time.Hour)
	ctx := context.Background()

	var out []string
	require.NoError(t, cache.FetchJSON(ctx, "companies", &out, func(context.Context) (any, error) {
		return []string{"Acme"}, nil
	}))
	require.NoError(t, cache.Refresh(ctx, "companies", func(context.Context) (any, error) {
		return []string{"Acme", "Globex"}, nil
	}))
	require.NoError(t, cache.FetchJSON(ctx, "companies", &out, func(context.Context) (any, error) {
		t.Fatal("loader should not run after refresh")
		return nil, nil
	}))
	require.Equal(t, []string{"Acme", "Globex"}, out)
}
