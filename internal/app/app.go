package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	flatcache "github.com/photosphere/connect-admin-console/internal/adapter/cache/flat"
	rediscache "github.com/photosphere/connect-admin-console/internal/adapter/cache/redis"
	connectdir "github.com/photosphere/connect-admin-console/internal/adapter/directory/connect"
	mockdir "github.com/photosphere/connect-admin-console/internal/adapter/directory/mock"
	"github.com/photosphere/connect-admin-console/internal/adapter/storage/csvfile"
	pgstore "github.com/photosphere/connect-admin-console/internal/adapter/storage/postgres"
	"github.com/photosphere/connect-admin-console/internal/api"
	"github.com/photosphere/connect-admin-console/internal/config"
	"github.com/photosphere/connect-admin-console/internal/domain/instance"
	"github.com/photosphere/connect-admin-console/internal/domain/region"
	"github.com/photosphere/connect-admin-console/internal/domain/storage"
	"github.com/photosphere/connect-admin-console/internal/selection"
	"github.com/photosphere/connect-admin-console/internal/usecase/console"
	"github.com/photosphere/connect-admin-console/internal/usecase/management"
	"github.com/photosphere/connect-admin-console/internal/usecase/resolver"
	"github.com/photosphere/connect-admin-console/pkg/connectclient"
	"github.com/photosphere/connect-admin-console/pkg/db"
	zaplog "github.com/photosphere/connect-admin-console/pkg/log"
	"github.com/photosphere/connect-admin-console/pkg/snowflake"
	"github.com/photosphere/connect-admin-console/sql/migrations"
)

// Options wires the console core for cfg. Backends are chosen here so that
// only the selected ones are constructed.
func Options(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			newNodeID,
			region.NewCatalog,
			newSelectionStore,
			newResolverOptions,
			newResolverMetrics,
			resolver.NewResolver,
			console.NewService,
			management.NewService,
		),
		storageOption(cfg),
		cacheOption(cfg),
		directoryOption(cfg),
		snowflake.Module, // Snowflake ID Module
		zaplog.Module,    // Logger Module
	)
}

func storageOption(cfg *config.Config) fx.Option {
	if cfg.StorageBackend == config.StoragePostgres {
		return fx.Provide(
			newDatabase,
			fx.Annotate(
				pgstore.NewStore,
				fx.As(new(storage.FlatStore)),
			),
		)
	}
	return fx.Provide(
		fx.Annotate(
			newCSVStore,
			fx.As(new(storage.FlatStore)),
		),
	)
}

func cacheOption(cfg *config.Config) fx.Option {
	if cfg.CacheBackend == config.CacheRedis {
		return fx.Provide(
			newRedisClient,
			fx.Annotate(
				newRedisCache,
				fx.As(new(instance.DirectoryCache)),
			),
		)
	}
	return fx.Provide(
		fx.Annotate(
			flatcache.NewCache,
			fx.As(new(instance.DirectoryCache)),
		),
	)
}

func directoryOption(cfg *config.Config) fx.Option {
	if cfg.DirectoryBackend == config.DirectoryMock {
		return fx.Provide(
			fx.Annotate(
				mockdir.NewDemoAdapter,
				fx.As(new(instance.Directory)),
			),
		)
	}
	return fx.Provide(
		fx.Annotate(
			newConnectClient,
			fx.As(new(connectdir.Lister)),
		),
		fx.Annotate(
			connectdir.NewAdapter,
			fx.As(new(instance.Directory)),
		),
	)
}

// RunServer starts the HTTP server.
func RunServer() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	app := fx.New(
		Options(cfg),
		fx.Provide(api.NewRouter),
		fx.Invoke(registerHooks),
	)
	if err := app.Err(); err != nil {
		return err
	}

	app.Run()
	return nil
}

// WithConsole builds the core without the HTTP server, hands the console
// service to fn and shuts everything down afterwards.
func WithConsole(ctx context.Context, fn func(*console.Service) error) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var svc *console.Service
	app := fx.New(
		Options(cfg),
		fx.NopLogger,
		fx.Populate(&svc),
	)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	return fn(svc)
}

// RunMigrations executes database migrations (up or down).
func RunMigrations(command string) error {
	if command == "" {
		command = "up"
	}

	cfg := config.Load()
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("migration_started", zap.String("command", command))

	d, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("load migration files: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migration_no_change", zap.String("command", command))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	logger.Info("migration_applied", zap.String("command", command))
	return nil
}

func registerHooks(lc fx.Lifecycle, cfg *config.Config, router *api.Router, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("http_server_starting",
				zap.String("port", cfg.Port),
				zap.String("storage", cfg.StorageBackend),
				zap.String("cache", cfg.CacheBackend),
				zap.String("directory", cfg.DirectoryBackend),
				zap.String("cache_policy", cfg.CachePolicy),
			)

			go func() {
				if err := router.Run(); err != nil && err != http.ErrServerClosed {
					logger.Fatal("http_server_failed", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("http_server_stopping")

			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := router.Shutdown(shutdownCtx); err != nil {
				logger.Error("http_server_forced_shutdown", zap.Error(err))
				return err
			}

			logger.Info("http_server_stopped")
			return nil
		},
	})
}

func newNodeID(cfg *config.Config) snowflake.NodeID {
	return snowflake.NodeID(cfg.SnowflakeNodeID)
}

func newCSVStore(cfg *config.Config) *csvfile.Store {
	return csvfile.NewStore(cfg.DataDir)
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	conn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return conn, nil
}

func newRedisClient(lc fx.Lifecycle, cfg *config.Config) (redis.UniversalClient, error) {
	client, err := rediscache.NewUniversalClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newRedisCache(client redis.UniversalClient, cfg *config.Config) *rediscache.Cache {
	return rediscache.NewCache(client, cfg.RedisCacheKey, cfg.RedisCacheTTL)
}

func newConnectClient() (*connectclient.Client, error) {
	return connectclient.NewFromEnv(context.Background())
}

func newSelectionStore(flat storage.FlatStore, cfg *config.Config, logger *zap.Logger) *selection.Store {
	return selection.NewStore(flat, cfg.DefaultRegion, logger)
}

func newResolverOptions(cfg *config.Config) (resolver.Options, error) {
	policy, err := resolver.ParsePolicy(cfg.CachePolicy)
	if err != nil {
		return resolver.Options{}, err
	}
	return resolver.Options{
		Policy:       policy,
		MockFallback: cfg.MockFallbackEnabled,
	}, nil
}

func newResolverMetrics() *resolver.Metrics {
	return resolver.NewMetrics(prometheus.DefaultRegisterer)
}
