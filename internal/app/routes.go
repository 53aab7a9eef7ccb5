package app

import (
	"github.com/gin-gonic/gin"
	"github.com/rutalab/core/internal/middleware"
	"github.com/rutalab/core/internal/modules/plan"
	"github.com/rutalab/core/internal/modules/system/health"
	pkgredis "github.com/rutalab/core/internal/pkg/redis"
	"github.com/rutalab/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	authMW := middleware.Auth(a.db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	root := r.Group("")
	health.RegisterRoutes(root, processStart)

	api := r.Group("/api/v2")
	api.Use(middleware.OptionalAuth(a.db))
	if rc != nil {
		api.Use(middleware.RateLimit(rc.Raw()))
		api.Use(middleware.Idempotence(rc.Raw()))
	}

	var store plan.Store
	if ps := plan.NewPlanStore(a.mongo); ps != nil {
		store = ps
	}
	planSvc := plan.NewService(a.cfg, a.logger, plan.NewClient(a.cfg.AI), store)
	plan.NewHandler(planSvc, a.logger).RegisterRoutes(api, authMW)
}
