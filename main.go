package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/smitebuilder/server/api/response"
	apirest "github.com/kasuganosora/smitebuilder/server/api/rest"
	"github.com/kasuganosora/smitebuilder/server/cache"
	"github.com/kasuganosora/smitebuilder/server/config"
	"github.com/kasuganosora/smitebuilder/server/metrics"
	mw "github.com/kasuganosora/smitebuilder/server/middleware"
	"github.com/kasuganosora/smitebuilder/server/resource"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	// ---- Catalog ----
	catalog, err := resource.NewLoader(cfg.Catalog.ItemsPath, cfg.Catalog.GodsPath).Load()
	if err != nil {
		logger.Fatal("catalog load failed", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("items", len(catalog.Items())),
		zap.Int("gods", len(catalog.Gods())),
		zap.String("fingerprint", catalog.Fingerprint()),
	)

	// ---- Cache ----
	c, err := cache.NewCache(cache.CacheConfig{
		RedisAddr:       cfg.Cache.RedisAddr,
		RedisPassword:   cfg.Cache.RedisPassword,
		RedisDB:         cfg.Cache.RedisDB,
		RedisKeyPrefix:  cfg.Cache.RedisKeyPrefix,
		LocalGCInterval: cfg.Cache.LocalGCInterval,
	})
	if err != nil {
		logger.Fatal("cache init failed", zap.Error(err))
	}
	defer c.Close()
	if cfg.Cache.RedisAddr != "" {
		logger.Info("cache initialized", zap.String("backend", "redis"), zap.String("addr", cfg.Cache.RedisAddr))
	} else {
		logger.Info("cache initialized", zap.String("backend", "local"))
	}

	// ---- Gin HTTP Server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := mw.NewRateLimiter(rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst)
	defer limiter.Close()

	r := newRouter(cfg, catalog, c, limiter, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}

// newRouter wires middleware, metrics and the REST routes.
func newRouter(cfg *config.Config, catalog *resource.Catalog, c cache.Cache, limiter *mw.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))

	var elMetrics *metrics.EligibilityMetrics
	if cfg.Metrics.Enabled {
		reg := metrics.NewRegistry()
		elMetrics = metrics.NewEligibilityMetrics(cfg.Metrics.Namespace, reg)
		httpMetrics := metrics.NewHTTPMetrics(cfg.Metrics.Namespace, reg)
		r.Use(httpMetrics.Middleware())
		r.GET(cfg.Metrics.Path, mw.IPWhitelist(cfg.Metrics.AllowedIPs), metrics.Handler(reg))
	}
	r.Use(limiter.Handler())

	// Health check
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "catalog": catalog.Fingerprint()})
	})

	elig := apirest.NewEligibility(catalog, c, cfg.Cache.ResultTTL, elMetrics, logger)
	apirest.RegisterRoutes(r, apirest.NewItemHandler(catalog, elig), apirest.NewGodHandler(catalog, elig))

	r.NoRoute(func(ctx *gin.Context) {
		response.Fail(ctx, http.StatusNotFound, "not found")
	})
	return r
}
