// Command aligner runs the food alignment engine as an HTTP service, wiring
// together configuration, logging, the catalog gateway, metrics, and the
// batch driver, in the teacher's cmd/main.go wiring order.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domainconfig "github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/engine"
	"github.com/DimaJoyti/food-alignment-engine/internal/infrastructure/batch"
	"github.com/DimaJoyti/food-alignment-engine/internal/infrastructure/catalog"
	infraconfig "github.com/DimaJoyti/food-alignment-engine/internal/infrastructure/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/infrastructure/logger"
	"github.com/DimaJoyti/food-alignment-engine/internal/infrastructure/metrics"
	"github.com/DimaJoyti/food-alignment-engine/internal/interfaces/httpapi"
)

func main() {
	if err := run(); err != nil {
		// No structured logger exists yet at this point (it's built from
		// config that may itself have failed to load), so bootstrap errors
		// go through the plain standard-log wrapper instead.
		logger.NewStandardLogger().Error("aligner exited", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("ALIGNER_CONFIG_PATH")
	appCfg, err := infraconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewWithConfig(appCfg.Logging.Level, appCfg.Logging.Format, os.Stdout)

	store := domainconfig.NewStore()
	store.Flags = appCfg.Flags

	reg := prometheus.NewRegistry()
	metricsRegistry := metrics.NewRegistry(reg)

	gateway, err := buildGateway(appCfg, metricsRegistry)
	if err != nil {
		return fmt.Errorf("build catalog gateway: %w", err)
	}

	driver := batch.NewDriver(store, gateway, metricsRegistry)
	driver.Concurrency = int64(appCfg.Batch.ConcurrencyCeiling)
	if appCfg.Batch.OutputTopic != "" {
		driver.Producer = batch.NewResultProducer(appCfg.Batch.KafkaBrokers, appCfg.Batch.OutputTopic)
	}

	server := &httpapi.Server{Store: store, Gateway: gateway, Logger: log}
	router := server.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", appCfg.Server.Host, appCfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(appCfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(appCfg.Server.WriteTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var kafkaErr chan error
	if appCfg.Batch.InputTopic != "" {
		consumer := batch.NewPredictionConsumer(appCfg.Batch.KafkaBrokers, appCfg.Batch.InputTopic, appCfg.Batch.ConsumerGroupID)
		kafkaErr = make(chan error, 1)
		go func() {
			kafkaErr <- driver.RunKafka(ctx, consumer)
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", httpServer.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
	case err := <-kafkaErr:
		if err != nil && err != context.Canceled {
			log.Error("kafka consumer stopped", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func buildGateway(cfg *infraconfig.AppConfig, reg *metrics.Registry) (engine.CatalogGateway, error) {
	switch cfg.Catalog.Mode {
	case "postgres":
		g, err := catalog.NewPostgresGateway(cfg.Catalog.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return g.WithRateLimit(cfg.Catalog.SearchRateLimitPerSecond, cfg.Catalog.SearchRateLimitBurst).WithMetrics(reg), nil
	case "cached":
		base, err := catalog.NewPostgresGateway(cfg.Catalog.PostgresDSN)
		if err != nil {
			return nil, err
		}
		base.WithRateLimit(cfg.Catalog.SearchRateLimitPerSecond, cfg.Catalog.SearchRateLimitBurst).WithMetrics(reg)
		ttl := time.Duration(cfg.Catalog.CacheTTLSeconds) * time.Second
		return catalog.NewCachedGateway(base, cfg.Catalog.RedisAddr, ttl), nil
	default:
		return catalog.NewMockGateway(), nil
	}
}
