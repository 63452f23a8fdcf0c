// Package app wires the cache service into a runnable server: configuration,
// logging, the Redis store, telemetry, HTTP routes and the periodic
// statistics report. The cache service is constructed once here and passed by
// reference to every consumer; nothing in the process holds cache state
// outside it.
package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/cache"
	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/common/logging"
	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/config"
	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/metrics"
	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/redis"
	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/server"
)

// App holds all the application dependencies
type App struct {
	Config  *config.Config
	Logger  logging.Logger
	Cache   *cache.Service
	Metrics *metrics.CacheMetrics

	srv  *server.Server
	cron *cron.Cron
}

// New creates a new application instance with all dependencies
func New(cfg *config.Config) (*App, error) {
	logger := logging.GetGlobalLogger().WithFields(logging.String("component", "app"))

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	// The redis client never probes at construction; the remote tier runs
	// the probe and degrades to L1-only when it fails.
	var store cache.Store
	if cfg.RedisEnabled {
		client, err := redis.NewClient(&redis.Config{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			PoolSize: cfg.RedisPoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("configure redis client: %w", err)
		}
		store = client
	} else {
		logger.Info("redis disabled, running L1-only")
	}

	cacheSvc, err := cache.New(cache.Config{
		LocalCapacity: cfg.CacheLocalCapacity,
		Namespace:     cfg.CacheNamespace,
		Store:         store,
		Telemetry:     app.Metrics,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build cache service: %w", err)
	}
	app.Cache = cacheSvc

	app.srv = server.New(app.routes(), cfg.Port)

	app.cron = cron.New()
	if _, err := app.cron.AddFunc(cfg.CacheStatsInterval, app.reportStatistics); err != nil {
		return nil, fmt.Errorf("schedule statistics report: %w", err)
	}

	return app, nil
}

// Run starts the HTTP server and the statistics schedule, then blocks until
// ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	a.Logger.Info("starting cache server",
		logging.String("port", a.Config.Port),
		logging.Int("local_capacity", a.Config.CacheLocalCapacity))

	a.cron.Start()
	errCh := a.srv.Start()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown stops the server, the schedule, and releases the remote store
// connection.
func (a *App) Shutdown(ctx context.Context) error {
	a.cron.Stop()

	if err := a.srv.Shutdown(ctx); err != nil {
		a.Logger.Error("server shutdown failed", err)
	}

	return a.Cache.Close()
}

// reportStatistics logs per-tier hit rates so degradations show up in logs
// even when no metrics backend is scraping.
func (a *App) reportStatistics() {
	for layer, stats := range a.Cache.Statistics() {
		a.Logger.Info("cache statistics",
			logging.String("layer", layer),
			logging.Int64("hits", stats.Hits),
			logging.Int64("misses", stats.Misses),
			logging.Int64("sets", stats.Sets),
			logging.Int64("deletes", stats.Deletes),
			logging.Field{Key: "hit_rate", Value: stats.HitRate},
			logging.Int("size", stats.Size))
	}
}
