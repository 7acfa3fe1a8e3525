package httpserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"scm-event-dispatcher/internal/middleware"
	"scm-event-dispatcher/internal/source/repository"
	"scm-event-dispatcher/pkg/log"
)

const defaultShutdownTimeout = 10 * time.Second

// GitHubWebhookHandler serves the GitHub intake and the delivery log.
type GitHubWebhookHandler interface {
	HandleGitHubWebhook(c *gin.Context)
	ListDeliveries(c *gin.Context)
}

// HealthChecker reports whether an optional dependency is usable.
type HealthChecker interface {
	IsHealthy() bool
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	// Webhook intake
	gitHubWebhookHandler GitHubWebhookHandler

	// Source registry
	registry   repository.Store
	middleware middleware.Middleware
	adminToken string

	// Readiness
	checks map[string]HealthChecker
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration
	// TrustedProxies may set forwarding headers. Empty trusts none, so the
	// client IP is the socket peer.
	TrustedProxies []string

	// Webhook intake
	GitHubWebhookHandler GitHubWebhookHandler

	// Source registry. Admin routes are only mounted when AdminToken is set.
	Registry   repository.Store
	AdminToken string

	// Readiness checks by name. Nil entries are ignored.
	HealthChecks map[string]HealthChecker
}

// New creates a new HTTPServer instance and registers its routes.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	checks := make(map[string]HealthChecker, len(cfg.HealthChecks))
	for name, hc := range cfg.HealthChecks {
		if hc != nil {
			checks[name] = hc
		}
	}

	srv := &HTTPServer{
		l:                    logger,
		gin:                  gin.New(),
		port:                 cfg.Port,
		mode:                 cfg.Mode,
		environment:          cfg.Environment,
		shutdownTimeout:      cfg.ShutdownTimeout,
		gitHubWebhookHandler: cfg.GitHubWebhookHandler,
		registry:             cfg.Registry,
		middleware:           middleware.New(logger, cfg.AdminToken),
		adminToken:           cfg.AdminToken,
		checks:               checks,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.gitHubWebhookHandler == nil {
		return errors.New("github webhook handler is required")
	}
	if srv.adminToken != "" && srv.registry == nil {
		return errors.New("registry is required when an admin token is set")
	}
	return nil
}
