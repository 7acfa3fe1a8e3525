package http

import (
	"github.com/gin-gonic/gin"

	"scm-event-dispatcher/internal/middleware"
)

// RegisterRoutes maps the registry endpoints. Every route requires the admin token.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	sources := rg.Group("/sources", mw.Auth())
	{
		sources.GET("", h.ListSources)
		sources.PUT("/:id", h.SaveSource)
		sources.DELETE("/:id", h.DeleteSource)
	}

	navigators := rg.Group("/navigators", mw.Auth())
	{
		navigators.GET("", h.ListNavigators)
		navigators.PUT("/:id", h.SaveNavigator)
	}
}
