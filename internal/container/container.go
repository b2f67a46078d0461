package container

import (
	"time"

	"betpromo/internal/config"
	"betpromo/internal/repository"
	"betpromo/internal/service"
	"betpromo/internal/service/auth"
	"betpromo/internal/service/mailer"
	"betpromo/internal/service/report"
	"betpromo/internal/store"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
	"betpromo/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	PocketBase  *pocketbase.Client
	Repos       *repository.Repositories
	Store       *store.Store
	RedisClient *redis.Client
	Sessions    *auth.Service
	Traffic     service.Traffic
	Mailer      service.Mailer
	Cache       *service.CacheService
	Reports     *report.Service
}

// New creates a new dependency injection container. The store is wired but
// not loaded; main drives the startup load.
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	pbClient := pocketbase.NewClient(cfg.PocketBaseURL, log)
	repos := repository.NewRepositories(pbClient, log)

	dataStore := store.New(repos, log,
		store.WithRevenuePerConversion(cfg.RevenuePerConversion))

	// Redis is optional: without it the traffic guards and the partner
	// cache degrade to pass-throughs.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	sessions := auth.NewService(pbClient, dataStore, cfg.JWTSecret,
		time.Duration(cfg.SessionMaxAge)*time.Hour, log)

	mailRelay := mailer.NewService(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, func() string { return dataStore.Settings().Profile.Email }, log)

	return &Container{
		Config:      cfg,
		Logger:      log,
		PocketBase:  pbClient,
		Repos:       repos,
		Store:       dataStore,
		RedisClient: redisClient,
		Sessions:    sessions,
		Traffic:     service.NewTrafficService(redisClient, log),
		Mailer:      mailRelay,
		Cache:       service.NewCacheService(redisClient, log.Logger),
		Reports:     report.NewService(cfg.RevenuePerConversion, cfg.CurrencyRate),
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetStore returns the data store
func (c *Container) GetStore() *store.Store {
	return c.Store
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
