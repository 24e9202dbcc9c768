// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"airline-assist/internal/assistant"
	"airline-assist/internal/assistant/intent"
	"airline-assist/internal/bookings"
	"airline-assist/internal/common/camunda"
	"airline-assist/internal/common/config"
	"airline-assist/internal/common/database"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/common/observability"
	"airline-assist/internal/session"

	ir "airline-assist/internal/workers/assistant/initiate-refund"
	lb "airline-assist/internal/workers/assistant/lookup-bookings"
	rq "airline-assist/internal/workers/assistant/respond-to-query"
	sb "airline-assist/internal/workers/assistant/select-booking"
	sq "airline-assist/internal/workers/assistant/suggest-queries"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("bookingSource", cfg.Bookings.Source),
	)

	obs := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		Environment:    cfg.App.Environment,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
		Logger:         log,
	})
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Zeebe ---
	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Redis ---
	rdb := database.NewRedis(cfg.Database.Redis)
	if err := rdb.Ping(ctx); err != nil {
		zapLog.Fatal("redis unavailable", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Booking store ---
	stores, err := buildStores(ctx, cfg, rdb, log)
	if err != nil {
		zapLog.Fatal("booking store setup failed", zap.Error(err))
	}
	defer stores.Close()

	var notifier ir.Notifier
	if n, err := buildNotifier(ctx, cfg, log); err != nil {
		zapLog.Fatal("notifier setup failed", zap.Error(err))
	} else if n != nil {
		notifier = n
	}

	sessions := session.NewRedisStore(rdb.Client, cfg.Session.TTLDuration(), cfg.Session.LockTTLDuration(), log)
	asst := assistant.New(intent.DefaultTaxonomy(), assistant.Options{
		MaxSuggestions: cfg.Assistant.MaxSuggestions,
		Currency:       cfg.Assistant.Currency,
		Logger:         log,
	})

	// --- Workers ---
	var workers []worker.JobWorker
	start := func(taskType string, handler worker.JobHandler) {
		wcfg := config.GetWorkerConfig(cfg, taskType)
		if jw := camunda.StartWorker(zeebe.GetClient(), taskType, wcfg, handler, log); jw != nil {
			workers = append(workers, jw)
		}
	}
	// A configured worker timeout overrides the handler default.
	timeout := func(taskType string, fallback time.Duration) time.Duration {
		if wcfg, ok := cfg.Workers[taskType]; ok && wcfg.Timeout > 0 {
			return config.GetDuration(wcfg.Timeout)
		}
		return fallback
	}

	lbCfg := lb.LoadConfig()
	lbCfg.Timeout = timeout(lb.TaskType, lbCfg.Timeout)
	lbCfg.HistoryLimit, lbCfg.TopicLimit = cfg.Assistant.HistoryLimit, cfg.Assistant.TopicLimit
	start(lb.TaskType, lb.NewHandler(lbCfg, stores.Source, sessions, log, obs).Handle)

	sbCfg := sb.LoadConfig()
	sbCfg.Timeout = timeout(sb.TaskType, sbCfg.Timeout)
	start(sb.TaskType, sb.NewHandler(sbCfg, sessions, asst, log, obs).Handle)

	sqCfg := sq.LoadConfig()
	sqCfg.Timeout = timeout(sq.TaskType, sqCfg.Timeout)
	start(sq.TaskType, sq.NewHandler(sqCfg, sessions, asst, log, obs).Handle)

	rqCfg := rq.LoadConfig()
	rqCfg.Timeout = timeout(rq.TaskType, rqCfg.Timeout)
	start(rq.TaskType, rq.NewHandler(rqCfg, sessions, asst, log, obs).Handle)

	if stores.Refunds != nil {
		var cache ir.CacheInvalidator
		if stores.Cache != nil {
			cache = stores.Cache
		}
		irCfg := ir.LoadConfig()
		irCfg.Timeout = timeout(ir.TaskType, irCfg.Timeout)
		irCfg.Currency = cfg.Assistant.Currency
		// The lock outlives the job timeout so a slow save is never overtaken.
		allocator := bookings.NewRefundAllocator(stores.Refunds, rdb.Client, 2*irCfg.Timeout, log)
		start(ir.TaskType, ir.NewHandler(irCfg, sessions, allocator, notifier, cache, log, obs).Handle)
	} else {
		zapLog.Warn("no writable refund store configured, initiate-refund worker not started")
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr:              cfg.Observability.MetricsAddr,
		Handler:           newOpsMux(readinessChecks(zeebe, rdb, stores)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, jw := range workers {
		jw.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
