package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/app/handlers"
	"github.com/Zayd-McArdle/MasjidApp/app/router"
	"github.com/Zayd-McArdle/MasjidApp/app/scheduler"
	businessflow "github.com/Zayd-McArdle/MasjidApp/business_flow"
	"github.com/Zayd-McArdle/MasjidApp/config"
	"github.com/Zayd-McArdle/MasjidApp/migrations"
	"github.com/Zayd-McArdle/MasjidApp/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	db        *gorm.DB
	cache     *redis.Client
	logger    *zap.Logger
	stopFuncs []func()
}

func initializeApplication(ctx context.Context, cfg *config.ProductionConfig, logger *zap.Logger) (*Application, error) {
	db, err := initializeDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	cache, err := prepareStorage(ctx, cfg, db, logger)
	if err != nil {
		return nil, err
	}

	app := &Application{
		config: cfg,
		db:     db,
		cache:  cache,
		logger: logger,
	}

	durable := scheduler.DurableSources{
		Events:        repository.NewEventsPostgresRepository(db),
		PrayerTimes:   repository.NewPrayerTimesPostgresRepository(db),
		ImamQuestions: repository.NewImamQuestionsPostgresRepository(db),
		Announcements: repository.NewAnnouncementsPostgresRepository(db),
	}

	var fast scheduler.FastTargets
	coordinators := buildCoordinators(durable, logger)
	if cache != nil {
		prefix, ttl := cfg.Cache.RedisPrefix, cfg.Cache.DefaultTTL
		events := repository.NewEventsRedisRepository(cache, prefix, ttl)
		prayerTimes := repository.NewPrayerTimesRedisRepository(cache, prefix, ttl)
		questions := repository.NewImamQuestionsRedisRepository(cache, prefix, ttl)
		announcements := repository.NewAnnouncementsRedisRepository(cache, prefix, ttl)

		coordinators = businessflow.Coordinators{
			Events:        repository.NewCoordinator[repository.EventsRepository]("events", events, durable.Events, logger),
			PrayerTimes:   repository.NewCoordinator[repository.PrayerTimesRepository]("prayer_times", prayerTimes, durable.PrayerTimes, logger),
			ImamQuestions: repository.NewCoordinator[repository.ImamQuestionsRepository]("imam_questions", questions, durable.ImamQuestions, logger),
			Announcements: repository.NewCoordinator[repository.AnnouncementsRepository]("announcements", announcements, durable.Announcements, logger),
		}
		fast = scheduler.FastTargets{
			Events:        events,
			PrayerTimes:   prayerTimes,
			ImamQuestions: questions,
			Announcements: announcements,
		}

		app.stopFuncs = append(app.stopFuncs, startCacheHealthMonitor(ctx, cache, cfg.Cache.HealthInterval, logger))
	}

	flows := businessflow.NewFlows(coordinators)
	timeout := cfg.Server.RequestTimeout
	h := router.Handlers{
		Events:        handlers.NewEventsHandler(flows.Events, logger, timeout),
		PrayerTimes:   handlers.NewPrayerTimesHandler(flows.PrayerTimes, logger, timeout),
		AskImam:       handlers.NewAskImamHandler(flows.AskImam, logger, timeout),
		Announcements: handlers.NewAnnouncementsHandler(flows.Announcements, logger, timeout),
	}

	checks := map[string]router.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if cache != nil {
		checks["cache"] = func(ctx context.Context) error {
			return cache.Ping(ctx).Err()
		}
	}

	app.router = router.NewFiberRouter(*cfg, h, checks, logger)

	if cache != nil && cfg.Scheduler.CacheWarmEnabled {
		warmer := scheduler.NewCacheWarmer(durable, fast, cfg.Scheduler.CacheWarmSpec, cfg.Scheduler.CacheWarmTimeout, logger)
		stop, err := warmer.Start(ctx, cfg.Scheduler.WarmOnStart)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.stopFuncs = append(app.stopFuncs, stop)
	}

	return app, nil
}

// prepareStorage applies pending migrations and connects the cache. The
// database pool is closed when either step fails.
func prepareStorage(ctx context.Context, cfg *config.ProductionConfig, db *gorm.DB, logger *zap.Logger) (*redis.Client, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, sqlDB); err != nil {
			closeDatabase(sqlDB, logger)
			return nil, err
		}
		logger.Info("Database migrations applied")
	}

	cache, err := initializeCache(ctx, cfg.Cache, logger)
	if err != nil {
		closeDatabase(sqlDB, logger)
		return nil, err
	}
	return cache, nil
}

// buildCoordinators pairs every durable repository with a fast tier that
// always fails, so reads and writes go straight to postgres.
func buildCoordinators(durable scheduler.DurableSources, logger *zap.Logger) businessflow.Coordinators {
	none := repository.NewUnimplementedRepository(logger)
	return businessflow.Coordinators{
		Events:        repository.NewCoordinator[repository.EventsRepository]("events", none, durable.Events, logger),
		PrayerTimes:   repository.NewCoordinator[repository.PrayerTimesRepository]("prayer_times", none, durable.PrayerTimes, logger),
		ImamQuestions: repository.NewCoordinator[repository.ImamQuestionsRepository]("imam_questions", none, durable.ImamQuestions, logger),
		Announcements: repository.NewCoordinator[repository.AnnouncementsRepository]("announcements", none, durable.Announcements, logger),
	}
}

// StopWorkers stops background goroutines in reverse start order.
func (a *Application) StopWorkers() {
	for i := len(a.stopFuncs) - 1; i >= 0; i-- {
		a.stopFuncs[i]()
	}
	a.stopFuncs = nil
}

// Close stops workers and releases connections.
func (a *Application) Close() {
	a.StopWorkers()
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			closeDatabase(sqlDB, a.logger)
		}
	}
}

func closeDatabase(sqlDB *sql.DB, logger *zap.Logger) {
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close database pool", zap.Error(err))
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if !cfg.SlowQueryLog {
		logLevel = gormlogger.Error
	}
	gormLog := gormlogger.New(
		zap.NewStdLog(logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             cfg.SlowQueryTime,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return db, nil
}

// initializeCache initializes the redis client and verifies connectivity. It
// returns nil when caching is disabled.
func initializeCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		logger.Info("Cache disabled, serving from the database only")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connection established", zap.String("addr", opt.Addr), zap.Int("db", cfg.RedisDB))
	return rc, nil
}

// startCacheHealthMonitor periodically pings redis to surface connectivity
// issues. The returned function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration, logger *zap.Logger) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(monitorCtx, 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					logger.Warn("Redis healthcheck failed", zap.Error(err))
				}
				c()
			}
		}
	}()
	return cancel
}
