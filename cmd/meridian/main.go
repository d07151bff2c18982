package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/meridian-bms/meridian/internal/app"
	"github.com/meridian-bms/meridian/internal/auth"
	"github.com/meridian-bms/meridian/internal/billing"
	"github.com/meridian-bms/meridian/internal/inventory"
	"github.com/meridian-bms/meridian/internal/lookups"
	"github.com/meridian-bms/meridian/internal/masterdata"
	"github.com/meridian-bms/meridian/internal/masterdata/branches"
	"github.com/meridian-bms/meridian/internal/masterdata/companies"
	"github.com/meridian-bms/meridian/internal/masterdata/partners"
	"github.com/meridian-bms/meridian/internal/masterdata/products"
	mdshared "github.com/meridian-bms/meridian/internal/masterdata/shared"
	"github.com/meridian-bms/meridian/internal/observability"
	"github.com/meridian-bms/meridian/internal/orders"
	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/platform/cache"
	"github.com/meridian-bms/meridian/internal/session"
	"github.com/meridian-bms/meridian/internal/shared"
	"github.com/meridian-bms/meridian/internal/store"
	"github.com/meridian-bms/meridian/internal/view"
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

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	apiClient, err := api.New(cfg.APIHost, logger)
	if err != nil {
		logger.Error("init api client", slog.Any("error", err))
		os.Exit(1)
	}

	cookies, err := session.NewCookieCodec(cfg.TokenSecret, cfg.IsProduction(), logger)
	if err != nil {
		logger.Error("init cookie codec", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	apiClient.SetObserver(metrics)

	sessionManager := shared.NewSessionManager(redisClient, "meridian_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	state := store.New(redisClient, cfg.SessionTTL)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	refreshLookups := func(ctx context.Context) {
		if _, err := jobsClient.EnqueueLookupRefresh(ctx, jobs.LookupRefreshPayload{}); err != nil {
			logger.Warn("enqueue lookup refresh", slog.Any("error", err))
		}
	}
	refreshLookups(ctx)

	authService := auth.NewService(apiClient)
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager, cookies, state, refreshLookups)

	lookupCache := store.NewLookupCache(redisClient, cfg.LookupTTL)
	lookupService := lookups.NewService(lookupCache, companies.NewRepository(apiClient), branches.NewRepository(apiClient), partners.NewRepository(apiClient), products.NewRepository(apiClient))

	ordersService := orders.NewService(orders.NewRepository(apiClient))
	ordersHandler := orders.NewHandler(logger, ordersService, templates, csrfManager, state, lookupService)

	inventoryService := inventory.NewService(inventory.NewRepository(apiClient), logger)
	inventoryHandler := inventory.NewHandler(logger, inventoryService, templates, csrfManager, state)

	billingService := billing.NewService(billing.NewRepository(apiClient), logger)
	billingHandler := billing.NewHandler(logger, billingService, templates, csrfManager, state)

	masterDataHandler := masterdata.NewHandlers(apiClient, &mdshared.Page{
		Logger:    logger,
		Templates: templates,
		CSRF:      csrfManager,
		State:     state,
	}, lookupCache)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Templates:      templates,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Cookies:        cookies,
		State:          state,
		Lookups:        lookupService,

		AuthHandler:       authHandler,
		OrdersHandler:     ordersHandler,
		InventoryHandler:  inventoryHandler,
		BillingHandler:    billingHandler,
		MasterDataHandler: masterDataHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
