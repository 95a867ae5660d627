package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-engine/internal/config"
	"github.com/KasumiMercury/primind-reminder-engine/internal/handler"
	"github.com/KasumiMercury/primind-reminder-engine/internal/health"
	"github.com/KasumiMercury/primind-reminder-engine/internal/infra/localcache"
	"github.com/KasumiMercury/primind-reminder-engine/internal/infra/notifycenter"
	"github.com/KasumiMercury/primind-reminder-engine/internal/infra/recorder"
	"github.com/KasumiMercury/primind-reminder-engine/internal/infra/remotestore"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/middleware"
	"github.com/KasumiMercury/primind-reminder-engine/internal/service/poller"
	"github.com/KasumiMercury/primind-reminder-engine/internal/service/session"
	"github.com/KasumiMercury/primind-reminder-engine/internal/service/trigger"
)

// Version is set via ldflags at build time
var Version = "dev"

const module = logging.Module("reminder-engine")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	engineMetrics, err := metrics.NewEngineMetrics()
	if err != nil {
		slog.Error("failed to initialize engine metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	cycleRecorder, err := recorder.NewRecorder(ctx, recorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize cycle recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := cycleRecorder.Close(); err != nil {
			slog.Warn("failed to close cycle recorder", slog.String("error", err.Error()))
		}
	}()

	redisOpts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
		slog.String("namespace", cfg.Redis.Namespace),
	)

	cache, err := localcache.Open(cfg.Cache.Path, localcache.WithLocation(cfg.Location))
	if err != nil {
		slog.Error("failed to open local cache",
			slog.String("event", "local_cache.open.fail"),
			slog.String("path", cfg.Cache.Path),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := cache.Close(); err != nil {
			slog.Warn("failed to close local cache", slog.String("error", err.Error()))
		}
	}()

	storeClient := remotestore.NewClient(cfg.Store.URL,
		remotestore.WithMaxRetries(cfg.Store.MaxRetries),
		remotestore.WithMetrics(engineMetrics),
	)
	authClient := remotestore.NewAuthClient(cfg.Store.URL,
		remotestore.WithMaxRetries(cfg.Store.MaxRetries),
		remotestore.WithMetrics(engineMetrics),
	)

	center := notifycenter.NewCenter(redisClient, notifycenter.WithNamespace(cfg.Redis.Namespace))

	backgroundPoller := poller.New(
		storeClient,
		cache,
		center,
		cycleRecorder,
		engineMetrics,
		poller.Config{
			Interval:       cfg.Poller.Interval,
			WindowPast:     cfg.Poller.WindowPast,
			WindowFuture:   cfg.Poller.WindowFuture,
			Cooldown:       cfg.Poller.Cooldown,
			CredentialWait: cfg.Poller.CredentialWait,
			CycleTimeout:   cfg.Poller.CycleTimeout,
			Location:       cfg.Location,
		},
	)

	bridge := session.NewBridge(
		authClient,
		backgroundPoller.Inbox(),
		backgroundPoller.Events(),
		center,
		engineMetrics,
		session.Config{
			RefreshSchedule: cfg.Session.RefreshSchedule,
			Location:        cfg.Location,
		},
	)

	var workers sync.WaitGroup
	workers.Add(2)
	go func() {
		defer workers.Done()
		if err := backgroundPoller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("poller stopped", slog.String("error", err.Error()))
		}
	}()
	go func() {
		defer workers.Done()
		if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("session bridge stopped", slog.String("error", err.Error()))
		}
	}()
	// Runs before the cache, redis and recorder closers so an in-flight
	// cycle finishes its writes first.
	defer func() {
		cancel()
		if !waitTimeout(&workers, cfg.Poller.CycleTimeout) {
			slog.Warn("background workers did not stop in time",
				slog.Duration("timeout", cfg.Poller.CycleTimeout),
			)
		}
	}()

	if cfg.Session.AutoStart() {
		if err := bridge.Start(ctx, cfg.Session.UserID, cfg.Session.RefreshToken); err != nil {
			// the API can still start a session later
			slog.Warn("failed to start configured session",
				slog.String("event", "session.autostart.fail"),
				slog.String("user_id", cfg.Session.UserID),
				slog.String("error", err.Error()),
			)
		}
	}

	sessionHandler := handler.NewSessionHandler(bridge)
	reminderHandler := handler.NewReminderHandler(bridge, cache, trigger.NewCalculator(), cfg.Location)
	notificationHandler := handler.NewNotificationHandler(bridge, center)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/api/v1/events"},
		Module:      module,
		TracerName:  "github.com/KasumiMercury/primind-reminder-engine/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version).
		Register("redis", health.RedisPinger(redisClient)).
		Register("local_cache", cache)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.RegisterRoutes(r, sessionHandler, reminderHandler, notificationHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// event streams end with ctx instead of holding Shutdown open
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("timezone", cfg.Location.String()),
			slog.Duration("poll_interval", cfg.Poller.Interval),
			slog.Duration("window_past", cfg.Poller.WindowPast),
			slog.Duration("window_future", cfg.Poller.WindowFuture),
			slog.String("refresh_schedule", cfg.Session.RefreshSchedule),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
