package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// LookupCache caches dropdown collections (companies, branches, products)
// fetched from the remote API. Concurrent misses for the same key collapse
// into a single upstream call.
type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewLookupCache constructs a LookupCache.
func NewLookupCache(client *redis.Client, ttl time.Duration) *LookupCache {
	return &LookupCache{client: client, ttl: ttl}
}

// Keys for the cached dropdown collections. Writers invalidate these after
// mutations so readers never serve deleted options for a full TTL.

func CompaniesKey() string {
	return "companies"
}

func BranchesKey(companyID int64) string {
	return fmt.Sprintf("branches:%d", companyID)
}

func VendorsKey(companyID int64) string {
	return fmt.Sprintf("vendors:%d", companyID)
}

func ClientsKey(companyID int64) string {
	return fmt.Sprintf("clients:%d", companyID)
}

func ProductsKey(branchID int64) string {
	return fmt.Sprintf("products:%d", branchID)
}

// FetchJSON loads a cached value or populates it using the loader.
func (c *LookupCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("store: lookup loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return remarshal(value, dest)
	}

	redisKey := "lookup:" + key
	cached, err := c.client.Get(ctx, redisKey).Bytes()
	if err == nil {
		return json.Unmarshal(cached, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}

	raw, err, _ := c.group.Do(key, func() (any, error) {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, redisKey, data, c.ttl).Err(); err != nil {
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw.([]byte), dest)
}

// Refresh overwrites the cached value for key regardless of expiry.
func (c *LookupCache) Refresh(ctx context.Context, key string, loader func(context.Context) (any, error)) error {
	if c == nil || c.client == nil || loader == nil {
		return errors.New("store: lookup cache not initialised")
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "lookup:"+key, data, c.ttl).Err()
}

// Invalidate removes a cached collection, forcing the next fetch upstream.
func (c *LookupCache) Invalidate(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, "lookup:"+key).Err()
}

func remarshal(value, dest any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
