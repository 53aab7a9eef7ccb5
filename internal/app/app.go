package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rutalab/core/internal/config"
	"github.com/rutalab/core/internal/database"
	"github.com/rutalab/core/internal/middleware"
	jwtpkg "github.com/rutalab/core/internal/pkg/jwt"
	pkgmongo "github.com/rutalab/core/internal/pkg/mongo"
	pkgredis "github.com/rutalab/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var processStart = time.Now()

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	mongo  *pkgmongo.Client
	logger *zap.Logger
}

// New initializes the application: runtime settings → stores → routes.
// The principal store (MySQL), document store (MongoDB) and Redis are each
// optional: an unconfigured store degrades the matching feature instead of
// failing startup.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}

	var db *gorm.DB
	if strings.TrimSpace(cfg.DSN) != "" {
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
	} else {
		logger.Warn("dsn is empty, API token verification disabled")
	}

	var mc *pkgmongo.Client
	if strings.TrimSpace(cfg.MongoURL) != "" {
		var err error
		mc, err = pkgmongo.Connect(cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
	} else {
		logger.Warn("mongo_url is empty, plan persistence disabled")
	}

	var rc *pkgredis.Client
	if strings.TrimSpace(cfg.RedisURL) != "" {
		var err error
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Warn("redis_url is empty, rate limiting disabled")
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(buildCORSConfig(cfg)))

	app := &App{cfg: cfg, router: router, db: db, mongo: mc, logger: logger}
	app.registerRoutes(rc)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases external connections.
func (a *App) Shutdown() {
	if a.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.mongo.Disconnect(ctx); err != nil {
			a.logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}
}
