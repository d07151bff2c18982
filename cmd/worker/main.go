package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/meridian-bms/meridian/internal/app"
	jobmetrics "github.com/meridian-bms/meridian/internal/jobs"
	"github.com/meridian-bms/meridian/internal/lookups"
	"github.com/meridian-bms/meridian/internal/masterdata/companies"
	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/platform/cache"
	"github.com/meridian-bms/meridian/internal/session"
	"github.com/meridian-bms/meridian/internal/store"
	"github.com/meridian-bms/meridian/jobs"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	apiClient, err := api.New(cfg.APIHost, logger)
	if err != nil {
		logger.Error("init api client", slog.Any("error", err))
		os.Exit(1)
	}

	// Background refreshes run outside any user session, so upstream calls
	// authenticate with the service token when one is configured.
	serviceCtx := func(ctx context.Context) context.Context {
		if cfg.APIServiceToken == "" {
			return ctx
		}
		return session.ContextWithTokens(ctx, &session.TokenPair{AccessToken: cfg.APIServiceToken})
	}

	lookupCache := store.NewLookupCache(redisClient, cfg.LookupTTL)
	companyRepo := companies.NewRepository(apiClient)

	refreshJob := jobs.NewLookupRefreshJob(lookupCache, map[string]jobs.Loader{
		store.CompaniesKey(): func(ctx context.Context) (any, error) {
			items, err := companyRepo.List(serviceCtx(ctx))
			if err != nil {
				return nil, err
			}
			return lookups.CompanyOptions(items), nil
		},
	}, logger, jobmetrics.NewMetrics(nil))

	refreshTask, err := jobs.NewLookupRefreshTask(jobs.LookupRefreshPayload{})
	if err != nil {
		logger.Error("build refresh task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Refresh:   refreshJob,
		Cron: []jobs.CronRegistration{
			{Spec: cfg.LookupRefreshCron, Task: refreshTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
