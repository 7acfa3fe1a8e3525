package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"scm-event-dispatcher/internal/model"
	sourceHTTP "scm-event-dispatcher/internal/source/delivery/http"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	if srv.mode != gin.TestMode {
		srv.gin.Use(gin.Logger())
	}

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv *HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	srv.gin.POST("/webhook/github", srv.gitHubWebhookHandler.HandleGitHubWebhook)
	srv.l.Infof(ctx, "GitHub webhook route registered at POST /webhook/github")

	// Deliveries need the admin token. Without one the route answers 401.
	api := srv.gin.Group("/api/v1")
	api.GET("/deliveries", srv.middleware.Auth(), srv.gitHubWebhookHandler.ListDeliveries)

	if srv.adminToken == "" {
		srv.l.Infof(ctx, "Admin token not configured, skipping registry routes")
		return nil
	}

	h := sourceHTTP.New(srv.l, srv.registry)
	sourceHTTP.RegisterRoutes(api, h, srv.middleware)
	srv.l.Infof(ctx, "Registry routes registered under /api/v1")
	return nil
}
