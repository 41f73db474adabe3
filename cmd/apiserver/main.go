// API server entry point for GrantsDB.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/export"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/matching"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/proposal"
	subsidyapp "github.com/hiroba-develop/GrantsDB-Demo/internal/application/subsidy"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/config"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/auth"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/cache"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/prometheus"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/pdf"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/store/memory"
	httpserver "github.com/hiroba-develop/GrantsDB-Demo/internal/interfaces/http"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/interfaces/http/handlers"
)

// version is injected via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: env vars only)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	logger.Info("starting GrantsDB API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
		logging.String("cache_backend", cfg.Cache.Backend))

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "grantsdb",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize metrics collector", logging.Err(err))
	}
	metrics := prometheus.NewAppMetrics(collector)

	// The demo clock is pinned so the seed dataset's deadlines classify the
	// same way on every run.
	now := time.Now
	if ref, ok := cfg.Matching.ReferenceTime(); ok {
		now = func() time.Time { return ref }
		logger.Info("using fixed reference date",
			logging.String("reference_date", cfg.Matching.ReferenceDate))
	}

	st := memory.NewSeeded(memory.WithLogger(logger), memory.WithMetrics(metrics))
	c := cache.New(cfg.Cache, logger)

	search := subsidyapp.NewService(st.Subsidies(), cfg.Matching.ClosingSoonDays,
		subsidyapp.WithClock(now),
		subsidyapp.WithLogger(logger),
		subsidyapp.WithMetrics(metrics))
	match := matching.NewService(st.Customers(), st.Subsidies(), st.Relations(), c,
		matching.Config{
			MatchThreshold:  cfg.Matching.MatchThreshold,
			ClosingSoonDays: cfg.Matching.ClosingSoonDays,
			UpcomingDays:    cfg.Matching.UpcomingDays,
			NewCount:        cfg.Matching.DashboardNewCount,
			TallyTTL:        cfg.Cache.TallyTTL,
		},
		matching.WithClock(now),
		matching.WithLogger(logger),
		matching.WithMetrics(metrics))
	props := proposal.NewService(st.Customers(), st.Subsidies(),
		pdf.NewGenerator(cfg.Proposal, logger),
		proposal.WithLogger(logger),
		proposal.WithMetrics(metrics))
	exports := export.NewService(st.Subsidies(),
		export.WithLogger(logger),
		export.WithMetrics(metrics))

	router := httpserver.NewRouter(httpserver.RouterConfig{
		CustomerHandler:  handlers.NewCustomerHandler(st.Customers(), match),
		SubsidyHandler:   handlers.NewSubsidyHandler(search, st.Subsidies(), match, props, exports),
		DashboardHandler: handlers.NewDashboardHandler(match),
		SessionHandler:   handlers.NewSessionHandler(auth.NewDemoAuthenticator(logger), st, match),
		HealthHandler:    handlers.NewHealthHandler(c, metrics, version),
		Logger:           logger,
		Metrics:          metrics,
		MetricsCollector: collector,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", logging.Err(err))
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("graceful shutdown failed", logging.Err(err))
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}
