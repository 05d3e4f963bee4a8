package app

import (
	"context"
	"fmt"

	"referralbridge/internal/config"
	"referralbridge/internal/events"
	"referralbridge/internal/repositories/interfaces"
	repositories "referralbridge/internal/repositories/mongodb"
	"referralbridge/internal/services"
	"referralbridge/pkg/cache"
	"referralbridge/pkg/database"
	"referralbridge/pkg/logger"
	"referralbridge/pkg/publisher"
)

const cacheKeyPrefix = "referralbridge"

type Repositories struct {
	Orders      interfaces.OrderRepository
	Referrals   interfaces.ReferralRepository
	Affiliates  interfaces.AffiliateRepository
	Coupons     interfaces.CouponRepository
	ProductMeta interfaces.ProductMetaRepository
	Visits      interfaces.VisitRepository
	Settings    interfaces.SettingRepository
}

type Services struct {
	Cache     services.CacheService
	Settings  services.SettingsService
	Tracking  services.TrackingService
	Referrals services.ReferralService
	Lifecycle services.LifecycleService
	Metadata  services.MetadataService
	Ingest    services.IngestService
}

// App holds the dependency graph shared by the server and the worker.
type App struct {
	Config       *config.Config
	Logger       *logger.Logger
	Mongo        *database.MongoDB
	Redis        *cache.RedisCache
	Publisher    publisher.Publisher
	Dispatcher   *events.Dispatcher
	Repositories *Repositories
	Services     *Services
}

func NewLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.App.LogLevel),
		Format:  cfg.App.LogFormat,
		Output:  cfg.App.LogOutput,
		Caller:  cfg.App.Debug,
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
	})
}

// New connects to MongoDB and Redis, applies index migrations and wires the
// referral core onto a dispatcher.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	mongo, err := database.NewMongoDB(ctx, &database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		return nil, err
	}

	if err := mongo.EnsureIndexes(log); err != nil {
		_ = mongo.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	redis, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		_ = mongo.Close()
		return nil, err
	}

	pub, err := NewPublisher(ctx, cfg.Publisher, redis)
	if err != nil {
		_ = redis.Close()
		_ = mongo.Close()
		return nil, err
	}

	a := &App{
		Config:     cfg,
		Logger:     log,
		Mongo:      mongo,
		Redis:      redis,
		Publisher:  pub,
		Dispatcher: events.NewDispatcher(),
	}
	a.wire()
	return a, nil
}

func (a *App) wire() {
	cfg := a.Config.Affiliate
	db := a.Mongo.Database

	cacheService := services.NewCacheService(a.Redis, a.Logger, cacheKeyPrefix, cfg.SettingsCacheTTL)

	repos := &Repositories{
		Orders:      repositories.NewOrderRepository(db),
		Referrals:   repositories.NewReferralRepository(db),
		Affiliates:  repositories.NewAffiliateRepository(db, cacheService),
		Coupons:     repositories.NewCouponRepository(db),
		ProductMeta: repositories.NewProductMetaRepository(db),
		Visits:      repositories.NewVisitRepository(db),
		Settings:    repositories.NewSettingRepository(db),
	}

	settings := services.NewSettingsService(repos.Settings, cacheService, cfg, a.Logger)
	tracking := services.NewTrackingService(repos.Visits, cacheService, cfg.VisitTTL, a.Logger)
	rates := services.NewRateSource(settings, repos.Affiliates, repos.ProductMeta, cfg.Context)

	referrals := services.NewReferralService(
		cfg,
		repos.Orders,
		repos.Coupons,
		repos.Affiliates,
		repos.Referrals,
		tracking,
		settings,
		rates,
		a.Publisher,
		a.Logger,
	)
	lifecycle := services.NewLifecycleService(cfg.Context, repos.Referrals, settings, a.Publisher, a.Logger)
	services.RegisterReferralHandlers(a.Dispatcher, referrals, lifecycle)

	a.Repositories = repos
	a.Services = &Services{
		Cache:     cacheService,
		Settings:  settings,
		Tracking:  tracking,
		Referrals: referrals,
		Lifecycle: lifecycle,
		Metadata:  services.NewMetadataService(cfg.Context, repos.Coupons, repos.ProductMeta, repos.Affiliates, a.Logger),
		Ingest:    services.NewIngestService(repos.Orders, a.Dispatcher, a.Logger),
	}
}

func (a *App) Close() {
	if err := a.Redis.Close(); err != nil {
		a.Logger.WithError(err).Warn("Failed to close redis")
	}
	if err := a.Mongo.Close(); err != nil {
		a.Logger.WithError(err).Warn("Failed to close mongodb")
	}
}
