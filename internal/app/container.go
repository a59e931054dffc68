// Package app wires the engine's dependencies into a runnable container.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/application/queries"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/application/services"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/infrastructure/cache"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/infrastructure/persistence"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/infrastructure/resilience"
	"github.com/wayfarerhq/wayfarer/internal/shared/infrastructure/database"
	"github.com/wayfarerhq/wayfarer/internal/shared/infrastructure/eventbus"
	"github.com/wayfarerhq/wayfarer/pkg/config"
)

// ScheduleStore is the write side of the schedule data, used for seeding
// and CRUD from the CLI.
type ScheduleStore interface {
	SaveBooking(ctx context.Context, userID string, rec domain.BookingRecord) error
	SaveEvent(ctx context.Context, userID string, rec domain.CalendarEventRecord) error
}

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	SQLiteDB     *sql.DB
	PostgresPool *pgxpool.Pool
	RedisClient  *redis.Client
	Publisher    eventbus.Publisher

	// Data access
	Source domain.ScheduleSource
	Store  ScheduleStore

	// Engine services
	IntentDetector *services.IntentDetector

	// Query handlers
	CheckConflictsHandler *queries.CheckConflictsHandler
	GetBriefingHandler    *queries.GetBriefingHandler
	DetectIntentHandler   *queries.DetectIntentHandler
}

// NewContainer initializes all dependencies. SQLite requires no external
// services; Redis and RabbitMQ are optional and degrade to in-memory
// behavior when absent.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.connectDatabase(ctx); err != nil {
		return nil, err
	}
	c.connectRedis(ctx)
	if err := c.connectBroker(); err != nil {
		return nil, err
	}

	// Fetches go through circuit breakers; an open breaker degrades the
	// check instead of hammering a failing store.
	source := resilience.NewBreakerSource(c.Source, resilience.DefaultBreakerConfig(), logger)

	policy := buildPolicy(cfg)
	classifier := domain.NewTokenClassifier(cfg.InternationalTokens)

	detector := services.NewConflictDetector(policy, classifier)
	builder := services.NewBriefingBuilder()
	c.IntentDetector = services.NewIntentDetector()

	var briefingCache queries.BriefingCache
	if c.RedisClient != nil {
		briefingCache = cache.NewRedisBriefingCache(c.RedisClient, cfg.BriefingCacheTTL, logger)
	}

	c.CheckConflictsHandler = queries.NewCheckConflictsHandler(source, detector, c.Publisher, logger)
	c.GetBriefingHandler = queries.NewGetBriefingHandler(source, builder, briefingCache, c.Publisher, logger)
	c.DetectIntentHandler = queries.NewDetectIntentHandler(c.IntentDetector)

	return c, nil
}

func (c *Container) connectDatabase(ctx context.Context) error {
	switch database.DetectDriver(c.Config.DatabaseURL) {
	case database.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, database.DefaultPostgresConfig(c.Config.DatabaseURL))
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		source, err := persistence.NewPostgresScheduleSource(ctx, pool)
		if err != nil {
			pool.Close()
			return err
		}
		c.PostgresPool = pool
		c.Source = source
		c.Store = source
		c.Logger.Info("connected to PostgreSQL")

	default:
		db, err := database.OpenSQLite(ctx, c.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open SQLite: %w", err)
		}
		source, err := persistence.NewSQLiteScheduleSource(db)
		if err != nil {
			_ = db.Close()
			return err
		}
		c.SQLiteDB = db
		c.Source = source
		c.Store = source
		c.Logger.Info("using SQLite database")
	}
	return nil
}

// connectRedis is optional: without Redis the briefing cache is disabled.
func (c *Container) connectRedis(ctx context.Context) {
	if c.Config.RedisURL == "" {
		return
	}
	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, briefing cache disabled", "error", err)
		return
	}
	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		c.Logger.Warn("Redis not available, briefing cache disabled", "error", err)
		_ = client.Close()
		return
	}
	c.RedisClient = client
	c.Logger.Info("connected to Redis")
}

func (c *Container) connectBroker() error {
	if c.Config.RabbitMQURL == "" {
		c.Publisher = eventbus.NewNoopPublisher(c.Logger)
		return nil
	}
	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if c.Config.IsDevelopment() {
			c.Logger.Warn("RabbitMQ not available, events will be dropped", "error", err)
			c.Publisher = eventbus.NewNoopPublisher(c.Logger)
			return nil
		}
		return err
	}
	c.Publisher = publisher
	return nil
}

func buildPolicy(cfg *config.Config) domain.BufferPolicy {
	policy := domain.DefaultBufferPolicy()
	if cfg.DomesticCheckInMin > 0 {
		policy.DomesticCheckIn = time.Duration(cfg.DomesticCheckInMin) * time.Minute
	}
	if cfg.InternationalCheckInMin > 0 {
		policy.InternationalCheckIn = time.Duration(cfg.InternationalCheckInMin) * time.Minute
	}
	if cfg.TravelToAirportMin > 0 {
		policy.TravelToAirport = time.Duration(cfg.TravelToAirportMin) * time.Minute
	}
	if cfg.AppointmentBufferMin > 0 {
		policy.AppointmentBuffer = time.Duration(cfg.AppointmentBufferMin) * time.Minute
	}
	return policy
}

// Close releases all container resources.
func (c *Container) Close() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Warn("error closing publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}
	if c.PostgresPool != nil {
		c.PostgresPool.Close()
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite database", "error", err)
		}
	}
}
