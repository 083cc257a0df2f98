package bootstrap

import (
	"context"
	"fmt"

	"github.com/memorias-app/memorias/common/blob"
	"github.com/memorias-app/memorias/common/cache"
	"github.com/memorias-app/memorias/common/config"
	"github.com/memorias-app/memorias/common/db"
	"github.com/memorias-app/memorias/common/logger"
	"github.com/memorias-app/memorias/common/queue"
	"github.com/memorias-app/memorias/common/telemetry"
	"github.com/redis/go-redis/v9"
)

// Setup initializes all service components.
// This is the main entry point for the service.
func Setup(ctx context.Context, serviceName string, opts ...Option) (*Components, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	components := &Components{
		cleanupFuncs: make([]func() error, 0),
	}

	// 1. Load configuration
	var err error
	if options.customConfig != nil {
		components.Config = options.customConfig
	} else {
		components.Config, err = config.Load(serviceName)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// 2. Initialize logger
	if options.customLogger != nil {
		components.Logger = options.customLogger
	} else {
		components.Logger = logger.New(
			components.Config.Service.LogLevel,
			components.Config.Service.LogFormat,
		)
	}

	components.Logger.Info("initializing service",
		"service", serviceName,
		"environment", components.Config.Service.Environment,
	)

	// 3. Initialize database
	if !options.skipDB {
		components.Logger.Info("connecting to database")
		components.DB, err = db.New(ctx, components.Config, components.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		components.addCleanup(func() error {
			components.DB.Close()
			return nil
		})

		if options.dbInitHook != nil {
			components.Logger.Info("running database init hook")
			if err := options.dbInitHook(components.DB); err != nil {
				components.Shutdown(ctx)
				return nil, fmt.Errorf("database init hook failed: %w", err)
			}
		}
	}

	// 4. Initialize object store
	if !options.skipBlob {
		components.Logger.Info("initializing object store",
			"endpoint", components.Config.Blob.Endpoint,
			"bucket", components.Config.Blob.Bucket,
		)
		components.Blob, err = blob.NewMinioStore(components.Config, components.Logger)
		if err != nil {
			components.Shutdown(ctx)
			return nil, fmt.Errorf("failed to initialize object store: %w", err)
		}
	}

	// 5. Initialize Redis and the cache. Redis backs the cache and the rate
	// limiter when enabled; otherwise the in-memory cache serves alone.
	if !options.skipRedis && components.Config.Redis.Enabled {
		components.Logger.Info("connecting to redis", "addr", components.Config.RedisAddr())
		components.Redis = redis.NewClient(&redis.Options{
			Addr:     components.Config.RedisAddr(),
			Password: components.Config.Redis.Password,
			DB:       components.Config.Redis.DB,
		})

		components.addCleanup(func() error {
			return components.Redis.Close()
		})

		components.Cache = cache.NewRedisCache(components.Redis, components.Logger)
	} else {
		components.Cache = cache.NewMemoryCache(components.Logger)
	}

	components.addCleanup(func() error {
		return components.Cache.Close()
	})

	// 6. Initialize queue (deferred blob cleanup work)
	components.Queue = queue.NewMemoryQueue(components.Logger)
	components.addCleanup(func() error {
		return components.Queue.Close()
	})

	// 7. Initialize telemetry
	if !options.skipTelemetry && components.Config.Telemetry.EnablePprof {
		components.Logger.Info("initializing telemetry")
		components.Telemetry = telemetry.New(
			components.Config.Telemetry.PprofPort,
			components.Logger,
		)

		if err := components.Telemetry.Start(ctx); err != nil {
			components.Logger.Warn("failed to start telemetry", "error", err)
		}
	}

	components.Logger.Info("service initialization complete",
		"service", serviceName,
		"db", components.DB != nil,
		"blob", components.Blob != nil,
		"redis", components.Redis != nil,
	)

	return components, nil
}

// MustSetup is like Setup but panics on error
func MustSetup(ctx context.Context, serviceName string, opts ...Option) *Components {
	components, err := Setup(ctx, serviceName, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to setup service %s: %v", serviceName, err))
	}
	return components
}
