// Package router assembles the gin engine from the application modules.
package router

import (
	"net/http"

	apphttp "cosmic_insights_backend/internal/http"
	"cosmic_insights_backend/platform/apperr"
	"cosmic_insights_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// New builds the engine: shared middleware, health check, then module routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		app.Logger.Error("panic recovered", "error", recovered, "path", c.Request.URL.Path)
		httpkit.HandleError(c, apperr.Internal("internal server error"))
		c.Abort()
	}))
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	if app.Config != nil && app.Config.IsCORSEnabled() {
		engine.Use(httpkit.CORS(app.Config))
	}

	engine.GET("/api/health", func(c *gin.Context) {
		httpkit.OK(c, gin.H{"status": "ok"})
	})
	engine.NoRoute(func(c *gin.Context) {
		httpkit.Error(c, http.StatusNotFound, "route not found", c.Request.URL.Path)
	})

	rc := &apphttp.RouterContext{
		Engine: engine,
		API:    engine.Group("/api"),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(rc)
		app.Logger.Debug("module routes registered", "module", module.Name())
	}

	return engine
}
