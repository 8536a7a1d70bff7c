package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Git-LeAmaral/reserva-praia/internal/config"
	"github.com/Git-LeAmaral/reserva-praia/internal/database"
	"github.com/Git-LeAmaral/reserva-praia/internal/domain"
	"github.com/Git-LeAmaral/reserva-praia/internal/events"
	"github.com/Git-LeAmaral/reserva-praia/internal/export"
	"github.com/Git-LeAmaral/reserva-praia/internal/logging"
	"github.com/Git-LeAmaral/reserva-praia/internal/metrics"
	"github.com/Git-LeAmaral/reserva-praia/internal/repository"
	"github.com/Git-LeAmaral/reserva-praia/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	store, err := database.NewStore(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open booking store")
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewEventBus()

	manager := service.NewBookingManager(store, eventBus, cfg.Booking, &logger)
	if err := manager.Load(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to load bookings")
		return err
	}

	redisClient, selectionRepo := initSelectionRepository(ctx, cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	selectionService := service.NewSelectionService(selectionRepo, manager, eventBus, &logger)

	exporter := export.NewExporter(manager, cfg.Exports.Path, &logger)
	subscribeBookingEvents(eventBus, exporter, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go serveMetrics(cfg.Monitoring.PrometheusPort, &logger)
	}

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	logger.Info().Str("database", cfg.Database.Path).Msg("Booking engine ready")
	if err := newConsole(manager, selectionService, exporter, &logger).run(ctx); err != nil {
		return err
	}

	logger.Info().Msg("Shutdown complete.")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "reserva-main").Logger()
	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if cfg == nil {
		return os.ErrInvalid
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Failed to create database directory")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Failed to create export directory")
		return err
	}
	return nil
}

// initSelectionRepository picks the selection backend. With Redis
// enabled, pending selections survive restarts and fail over to memory
// when Redis is unreachable; otherwise they live in memory only.
func initSelectionRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, domain.SelectionRepository) {
	ttl := time.Duration(cfg.Booking.SelectionTTL) * time.Second
	memoryRepo := repository.NewMemorySelectionRepository(ttl)

	if !cfg.Redis.Enabled {
		return nil, memoryRepo
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable")
	}
	primaryRepo := repository.NewRedisSelectionRepository(redisClient, ttl)
	return redisClient, repository.NewFailoverSelectionRepository(primaryRepo, memoryRepo, logger)
}

// subscribeBookingEvents regenerates the current month's workbook after
// every booking mutation, so the export directory always holds an
// up-to-date report.
func subscribeBookingEvents(bus *events.EventBus, exporter *export.Exporter, logger *zerolog.Logger) {
	handler := func(ev *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}

		now := time.Now()
		if _, err := exporter.MonthWorkbook(now.Year(), now.Month()); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: refresh export")
		}
		return nil
	}

	bus.Subscribe(events.EventBookingCreated, handler)
	bus.Subscribe(events.EventBookingUpdated, handler)
	bus.Subscribe(events.EventBookingDeleted, handler)
}

func serveMetrics(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Msg("Prometheus metrics listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("Metrics server error")
	}
}
