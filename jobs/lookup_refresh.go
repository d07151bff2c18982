package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/meridian-bms/meridian/internal/jobs"
	"github.com/meridian-bms/meridian/internal/store"
)

// Loader fetches one lookup collection from the business API.
type Loader func(ctx context.Context) (any, error)

// LookupRefreshJob re-populates the lookup cache from the upstream API.
// Loaders are registered per key at startup; the payload selects which keys
// to refresh.
type LookupRefreshJob struct {
	cache   *store.LookupCache
	loaders map[string]Loader
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewLookupRefreshJob wires dependencies for the refresh handler.
func NewLookupRefreshJob(cache *store.LookupCache, loaders map[string]Loader, logger *slog.Logger, metrics *jobmetrics.Metrics) *LookupRefreshJob {
	return &LookupRefreshJob{cache: cache, loaders: loaders, logger: logger, metrics: metrics}
}

// Handle processes lookup refresh tasks. A failing key is logged and skipped
// so one broken collection does not starve the others.
func (j *LookupRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.cache == nil {
		return errors.New("lookup refresh: handler not configured")
	}
	var payload LookupRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	keys := payload.Keys
	if len(keys) == 0 {
		keys = make([]string, 0, len(j.loaders))
		for key := range j.loaders {
			keys = append(keys, key)
		}
	}

	tracker := j.metrics.Track(TaskLookupRefresh)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	var failed int
	for _, key := range keys {
		loader, ok := j.loaders[key]
		if !ok {
			j.logger.Warn("no loader registered for lookup key", slog.String("key", key))
			continue
		}
		if err := j.cache.Refresh(ctx, key, loader); err != nil {
			failed++
			j.logger.Error("refresh lookup", slog.String("key", key), slog.Any("error", err))
			continue
		}
		j.logger.Info("lookup refreshed", slog.String("key", key))
	}
	if failed == len(keys) && failed > 0 {
		resultErr = errors.New("lookup refresh: all keys failed")
		return resultErr
	}
	return nil
}
