package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"scm-event-dispatcher/config"
	_ "scm-event-dispatcher/docs" // Swagger docs
	"scm-event-dispatcher/internal/headevent"
	headEventUC "scm-event-dispatcher/internal/headevent/usecase"
	"scm-event-dispatcher/internal/httpserver"
	"scm-event-dispatcher/internal/rescan"
	"scm-event-dispatcher/internal/scm"
	"scm-event-dispatcher/internal/source/repository"
	"scm-event-dispatcher/internal/source/repository/memory"
	sqliteRepo "scm-event-dispatcher/internal/source/repository/sqlite"
	"scm-event-dispatcher/internal/webhook"
	"scm-event-dispatcher/pkg/debounce"
	"scm-event-dispatcher/pkg/log"
	"scm-event-dispatcher/pkg/rabbitmq"
)

// @title       SCM Event Dispatcher API
// @description Classifies GitHub create, delete and push webhooks into branch and tag heads and fans them out to registered sources.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting SCM event dispatcher...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Source registry
	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize source registry: ", err)
		return
	}

	// 4. Listeners
	recorder := rescan.NewRecorder(cfg.Audit.RecentSize, cfg.Audit.RecentTTL, nil)
	listeners := []headevent.Listener{rescan.NewAuditListener(logger), recorder}
	healthChecks := map[string]httpserver.HealthChecker{}

	if cfg.AMQP.Enabled {
		conn := rabbitmq.NewConnection(rabbitmq.Config{
			URL:            cfg.AMQP.URL,
			Exchange:       cfg.AMQP.Exchange,
			ExchangeKind:   cfg.AMQP.ExchangeKind,
			ConnectionName: cfg.AMQP.ConnectionName,
		}, logger)
		if err := conn.Connect(ctx); err != nil {
			logger.Error(ctx, "Failed to connect to RabbitMQ: ", err)
			return
		}
		defer conn.Close()

		listeners = append(listeners, rescan.NewPublisherListener(conn, rescan.PublisherConfig{
			RoutingKey: cfg.AMQP.RoutingKey,
		}))
		healthChecks["amqp"] = conn
		logger.Infof(ctx, "Publishing re-scan requests to exchange %s", cfg.AMQP.Exchange)
	} else {
		logger.Info(ctx, "AMQP disabled, re-scan requests are only logged and recorded")
	}

	// 5. Dispatcher
	uc := headEventUC.New(
		logger,
		scm.NewMatcher(scm.NewHostResolver(cfg.SCM.APIHosts)),
		store,
		rescan.Multi(listeners...),
		debounce.RealClock(),
		headevent.Config{
			Delay:     cfg.Events.Delay,
			Workers:   cfg.Events.Workers,
			QueueSize: cfg.Events.QueueSize,
		},
	)
	uc.Start()

	// 6. HTTP Server
	webhookHandler := webhook.NewHandler(uc, recorder, webhook.SecurityConfig{
		Secret:          cfg.Webhook.Secret,
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	}, logger)
	if cfg.Webhook.Secret == "" {
		logger.Warn(ctx, "webhook.secret is empty, every GitHub delivery will be rejected")
	}

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:               logger,
		Port:                 cfg.HTTPServer.Port,
		Mode:                 cfg.HTTPServer.Mode,
		Environment:          cfg.Environment.Name,
		ShutdownTimeout:      cfg.HTTPServer.ShutdownTimeout,
		TrustedProxies:       cfg.Webhook.TrustedProxies,
		GitHubWebhookHandler: webhookHandler,
		Registry:             store,
		AdminToken:           cfg.HTTPServer.AdminToken,
		HealthChecks:         healthChecks,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
	}

	// Pending events are dropped on shutdown; in-flight deliveries finish.
	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	if err := uc.Stop(stopCtx); err != nil {
		logger.Error(ctx, "Failed to stop dispatcher: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// newStore builds the configured registry. The sqlite store is seeded with
// the sources and navigators from the config file.
func newStore(ctx context.Context, cfg *config.Config, logger log.Logger) (repository.Store, error) {
	opt := repository.Options{}

	if cfg.Storage.Driver != config.StorageSQLite {
		return memory.New(opt, cfg.Sources, cfg.Navigators)
	}

	db, err := sqliteRepo.Open(cfg.Storage.DSN)
	if err != nil {
		return nil, err
	}
	store, err := sqliteRepo.New(db, opt, logger)
	if err != nil {
		return nil, err
	}
	for _, s := range cfg.Sources {
		if err := store.SaveSource(ctx, s); err != nil {
			return nil, fmt.Errorf("seed source %s: %w", s.ID, err)
		}
	}
	for _, n := range cfg.Navigators {
		if err := store.SaveNavigator(ctx, n); err != nil {
			return nil, fmt.Errorf("seed navigator %s: %w", n.ID, err)
		}
	}
	logger.Infof(ctx, "SQLite registry at %s seeded with %d sources", cfg.Storage.DSN, len(cfg.Sources))
	return store, nil
}
