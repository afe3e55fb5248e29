// Package main is the entry point for the CropWatch advisory API server.
//
// It loads configuration, selects a persistence backend, wires the weather
// provider, suggestion engine, task generator, and notification reconciler
// into the advisory service, and serves the HTTP API. A background ticker
// runs the notification bookkeeping cleanup. Graceful shutdown is handled
// via OS signal interception (SIGINT, SIGTERM).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"golang.org/x/sync/errgroup"

	"cropwatch/internal/advisor"
	"cropwatch/internal/api"
	"cropwatch/internal/config"
	"cropwatch/internal/external"
	"cropwatch/internal/notify"
	"cropwatch/internal/store"
	"cropwatch/internal/types"
	"cropwatch/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so main() can cleanly exit on error.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("cropwatch starting",
		"environment", cfg.Environment,
		"store", cfg.Store.Driver,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Farm.Timezone)
	if err != nil {
		return fmt.Errorf("loading farm timezone: %w", err)
	}

	kv, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer closeStore()

	records := store.NewRecords(kv, logger)
	clock := types.RealClock{}

	provider := newWeatherProvider(cfg.Weather, logger)
	scheduler := newScheduler(cfg.Notify, logger)

	metrics, err := newMetrics(ctx, cfg.Notify, logger)
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	reconciler := notify.NewReconciler(records, scheduler, metrics, clock, logger, loc)
	engine := advisor.NewEngine(clock, loc)
	service := advisor.NewService(provider, records, engine, reconciler,
		clock, logger, loc, cfg.Farm.LookAheadDays)

	srv := api.NewServer(service, logger, cfg.Server.RequestTimeout)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.Farm.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := service.Cleanup(gctx); err != nil {
					logger.Warn("cleanup pass failed", "error", err.Error())
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("cropwatch stopped")
	return nil
}

// openStore builds the configured KV backend and returns it with its
// cleanup function.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.KV, func(), error) {
	switch cfg.Driver {
	case "memory":
		return store.NewMemory(), func() {}, nil
	case "sqlite":
		s, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "postgres":
		s, pool, err := store.OpenPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		return s, pool.Close, nil
	case "redis":
		s, err := store.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// newWeatherProvider wires the Open-Meteo client, with the warnings feed
// when one is configured.
func newWeatherProvider(cfg config.WeatherConfig, logger types.Logger) weather.Provider {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	client := external.NewClient(httpClient, "weather", external.DefaultRetryPolicy(), cfg.UserAgent)

	var alerts weather.AlertSource
	if cfg.AlertFeedURL != "" {
		alertClient := external.NewClient(httpClient, "alerts", external.DefaultRetryPolicy(), cfg.UserAgent)
		alerts = weather.NewFeedAlertSource(alertClient, cfg.AlertFeedURL)
	}
	return weather.NewOpenMeteoProvider(client, cfg.BaseURL, alerts, logger, cfg.ForecastDays)
}

// newScheduler selects the webhook gateway when configured, otherwise the
// log-only scheduler.
func newScheduler(cfg config.NotifyConfig, logger types.Logger) notify.Scheduler {
	if cfg.GatewayURL == "" {
		return notify.NewLogScheduler(logger)
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	client := external.NewClient(httpClient, "notify-gateway", external.DefaultRetryPolicy(), "CropWatch/1.0")
	return notify.NewWebhookScheduler(client, cfg.GatewayURL)
}

// newMetrics builds the CloudWatch sink when enabled, otherwise a no-op.
func newMetrics(ctx context.Context, cfg config.NotifyConfig, logger types.Logger) (notify.Metrics, error) {
	if !cfg.MetricsEnabled {
		return notify.NoopMetrics{}, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return notify.NewCloudWatchMetrics(cloudwatch.NewFromConfig(awsCfg), logger), nil
}

// newLogger creates the slog-backed types.Logger for the given level.
func newLogger(level string) types.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slogLogger{slog.New(handler)}
}

// slogLogger adapts *slog.Logger to the types.Logger interface.
type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }
func (s slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s slogLogger) With(args ...any) types.Logger { return slogLogger{s.l.With(args...)} }
