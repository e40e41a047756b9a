package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/aevon-lab/devicescout/internal/catalog"
	"github.com/aevon-lab/devicescout/internal/core/cache"
	"github.com/aevon-lab/devicescout/internal/core/cache/rediscache"
	corecfg "github.com/aevon-lab/devicescout/internal/core/config"
	"github.com/aevon-lab/devicescout/internal/core/keylock"
	"github.com/aevon-lab/devicescout/internal/core/lifecycle"
	"github.com/aevon-lab/devicescout/internal/core/storage"
	"github.com/aevon-lab/devicescout/internal/core/storage/memory"
	mongostore "github.com/aevon-lab/devicescout/internal/core/storage/mongo"
	"github.com/aevon-lab/devicescout/internal/core/storage/postgres"
	"github.com/aevon-lab/devicescout/internal/ingestion"
	"github.com/aevon-lab/devicescout/internal/metrics"
	"github.com/aevon-lab/devicescout/internal/migrations"
	"github.com/aevon-lab/devicescout/internal/modelregistry"
	"github.com/aevon-lab/devicescout/internal/observation"
	"github.com/aevon-lab/devicescout/internal/recommendation"
	"github.com/aevon-lab/devicescout/internal/server"
	"github.com/aevon-lab/devicescout/internal/sweeper"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "devicescout.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		slog.Error("Invalid log level", "level", cfg.Log.Level, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"database", cfg.Database.Type,
		"bucket_width_minutes", cfg.Fingerprint.BucketWidthMinutes,
		"threshold", cfg.Recommendation.BucketCountThreshold,
		"source_enabled", cfg.Source.Enabled,
		"sweeper_enabled", cfg.Sweeper.Enabled,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Initialize Storage
	store, db, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 2.1. Initialize Redis (optional durable cache layer)
	var cacheClient *redis.Client
	if cfg.Cache.RedisURL != "" {
		cacheClient, err = rediscache.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			slog.Error("Failed to connect to redis cache", "error", err)
			os.Exit(1)
		}
		defer cacheClient.Close()
	}

	// 3. Initialize Metrics
	m := metrics.New(prometheus.DefaultRegisterer)

	// 4. Initialize Core Services
	locks := keylock.New()

	counter := observation.NewCounter(store, locks, observation.Config{
		BucketWidthMinutes: cfg.Fingerprint.BucketWidthMinutes,
		SuppressionTTL:     cfg.Durations.SuppressionTTL,
		SuppressionMaxSize: cfg.Dedupe.SuppressionMaxSize,
	}, observation.WithRecorder(m))

	promoter := recommendation.NewPromoter(store, store, locks, cfg.Recommendation.BucketCountThreshold)
	promoter.SetRecorder(m)

	registry := modelregistry.NewRegistry(store, locks, modelL2(cfg, cacheClient, db), modelregistry.Config{
		L1TTL:             cfg.Durations.L1TTL,
		L2TTL:             cfg.Durations.L2TTL,
		L1CleanupInterval: cfg.Durations.L1CleanupInterval,
	}, m)

	pipeline := ingestion.NewPipeline(counter, promoter, registry)
	ingestionSvc := ingestion.NewService(pipeline, cfg.Server.MaxBodySizeMB)
	catalogSvc := catalog.NewService(store)

	// 5. Initialize System Bus and Controllable Services
	bus := lifecycle.NewBus(cfg.EventBus.Capacity)
	defer bus.Close()

	eventLogger, err := lifecycle.NewEventLogger(bus, logger)
	if err != nil {
		slog.Error("Failed to subscribe event logger", "error", err)
		os.Exit(1)
	}
	defer eventLogger.Close()

	tasks := []sweeper.Task{
		sweeper.FlushSuppression(counter),
		sweeper.PurgeBuckets(store, cfg.Durations.BucketRetention, nil),
	}
	if purger, ok := store.(sweeper.CachePurger); ok {
		tasks = append(tasks, sweeper.PurgeCache(purger))
	}
	scheduler, err := sweeper.NewScheduler(bus, sweeper.DefaultName, cfg.Durations.SweepInterval, m, tasks...)
	if err != nil {
		slog.Error("Failed to initialize sweeper", "error", err)
		os.Exit(1)
	}

	var source *ingestion.Source
	if cfg.Source.Enabled {
		sourceClient := cacheClient
		if sourceClient == nil || cfg.SourceRedisURL() != cfg.Cache.RedisURL {
			sourceClient, err = rediscache.Connect(ctx, cfg.SourceRedisURL())
			if err != nil {
				slog.Error("Failed to connect to source redis", "error", err)
				os.Exit(1)
			}
			defer sourceClient.Close()
		}
		source, err = ingestion.NewSource(bus, ingestion.SourceConfig{
			Channel: cfg.Source.Channel,
			Workers: cfg.Source.Workers,
		}, ingestion.RedisSubscriber(sourceClient), pipeline, m)
		if err != nil {
			slog.Error("Failed to initialize source", "error", err)
			os.Exit(1)
		}
	}

	// 6. Initialize Server
	srv := server.New(cfg.Server.Addr(), server.Options{
		Mode:     cfg.Server.Mode,
		Store:    store,
		Bus:      bus,
		Gatherer: prometheus.DefaultGatherer,
	})
	ingestionSvc.RegisterRoutes(srv.Engine)
	promoter.RegisterRoutes(srv.Engine)
	catalogSvc.RegisterRoutes(srv.Engine)
	registry.RegisterRoutes(srv.Engine)

	// 7. Start Services
	if cfg.Sweeper.Enabled {
		if err := scheduler.Start(ctx); err != nil {
			slog.Error("Failed to start sweeper", "error", err)
		}
	} else {
		slog.Info("Sweeper disabled by config")
	}
	if source != nil {
		if err := source.Start(ctx); err != nil {
			slog.Error("Failed to start source", "error", err)
		}
	}

	// Signal handler -> triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// HTTP server blocks until gctx is cancelled.
		return srv.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	// 8. Shutdown: stop intake first, then drain pending counts.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if source != nil {
		if err := source.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to stop source", "error", err)
		}
	}
	if err := scheduler.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to stop sweeper", "error", err)
	}
	if n, err := counter.Flush(shutdownCtx); err != nil {
		slog.Error("Failed to flush suppressed observations", "error", err)
	} else if n > 0 {
		slog.Info("Flushed suppressed observations", "count", n)
	}

	slog.Info("Shutdown complete")
}

// openStore connects the configured backend. The returned *sql.DB is non-nil
// only for postgres.
func openStore(ctx context.Context, cfg *corecfg.Config) (storage.Store, *sql.DB, error) {
	switch cfg.Database.Type {
	case "postgres":
		db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
			db.Close()
			return nil, nil, err
		}
		adapter := postgres.NewAdapter(db)
		if err := adapter.ValidateSchema(ctx); err != nil {
			adapter.Close()
			return nil, nil, err
		}
		return adapter, db, nil

	case "mongo":
		client, err := mongostore.Connect(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		adapter := mongostore.NewAdapter(client.Database(cfg.Database.MongoDatabase))
		if err := adapter.EnsureIndexes(ctx, cfg.Durations.BucketRetention); err != nil {
			adapter.Close()
			return nil, nil, err
		}
		return adapter, nil, nil

	default:
		slog.Warn("Using in-memory storage; data is lost on restart")
		return memory.New(), nil, nil
	}
}

// modelL2 picks the durable model cache: Redis, then the postgres cache
// table, then process memory.
func modelL2(cfg *corecfg.Config, client *redis.Client, db *sql.DB) cache.Store[modelregistry.Key, *storage.ModelRecord] {
	switch {
	case client != nil:
		return rediscache.New[modelregistry.Key, *storage.ModelRecord](client, "devicescout:models")
	case db != nil:
		return postgres.NewCacheStore[modelregistry.Key, *storage.ModelRecord](db, "models")
	default:
		return cache.NewMemoryStore[modelregistry.Key, *storage.ModelRecord](cfg.Durations.L1CleanupInterval)
	}
}
