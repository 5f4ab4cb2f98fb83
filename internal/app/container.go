package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/pulse/internal/projects/application/commands"
	"github.com/felixgeelhaar/pulse/internal/projects/application/queries"
	"github.com/felixgeelhaar/pulse/internal/projects/application/subscribers"
	"github.com/felixgeelhaar/pulse/internal/projects/domain"
	"github.com/felixgeelhaar/pulse/internal/projects/infrastructure/cache"
	"github.com/felixgeelhaar/pulse/internal/projects/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/pulse/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis
	RedisClient *redis.Client
	HealthCache *cache.RedisHealthCache

	// Repositories
	ProjectRepo domain.Repository

	// Publishers
	EventPublisher  eventbus.Publisher
	DomainPublisher sharedApplication.EventPublisher

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Project Command Handlers
	CreateProjectHandler       *commands.CreateProjectHandler
	UpdateProjectHandler       *commands.UpdateProjectHandler
	DeleteProjectHandler       *commands.DeleteProjectHandler
	ChangeProjectStatusHandler *commands.ChangeProjectStatusHandler

	// Milestone Command Handlers
	AddMilestoneHandler    *commands.AddMilestoneHandler
	UpdateMilestoneHandler *commands.UpdateMilestoneHandler
	DeleteMilestoneHandler *commands.DeleteMilestoneHandler

	// Health Command Handlers
	SetManualHealthHandler    *commands.SetManualHealthHandler
	UseAutomaticHealthHandler *commands.UseAutomaticHealthHandler
	RecalculateHealthHandler  *commands.RecalculateHealthHandler

	// Date Command Handlers
	OverrideDatesHandler *commands.OverrideDatesHandler
	ResetDatesHandler    *commands.ResetDatesHandler

	// Query Handlers
	GetProjectHandler       *queries.GetProjectHandler
	ListProjectsHandler     *queries.ListProjectsHandler
	GetHealthSummaryHandler *queries.GetHealthSummaryHandler

	// Event Subscribers
	RecalculateSubscriber *subscribers.RecalculateSubscriber
	InProcessEventBus     *eventbus.InProcessEventBus
}

// NewContainer creates and wires all dependencies for server mode:
// PostgreSQL (or SQLite), Redis for the health cache, and RabbitMQ for
// change events. Redis and RabbitMQ degrade gracefully in development.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	// Connect to the database. The driver is detected from the URL unless
	// pinned via DATABASE_DRIVER.
	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.Driver(cfg.DatabaseDriver),
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		MaxConns:   cfg.DatabaseMaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()
	logger.Info("connected to database", "driver", c.DBDriver)

	if err := persistence.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Connect to Redis (optional in development)
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				conn.Close()
				return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, health snapshots will not be cached", "error", err)
		} else {
			redisClient := redis.NewClient(opt)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				if !cfg.IsDevelopment() {
					conn.Close()
					return nil, fmt.Errorf("failed to connect to Redis: %w", err)
				}
				logger.Warn("Redis not available, health snapshots will not be cached", "error", err)
			} else {
				c.RedisClient = redisClient
				c.HealthCache = cache.NewRedisHealthCache(redisClient, cfg.HealthCacheTTL, logger)
				logger.Info("connected to Redis")
			}
		}
	}

	// Create event publisher
	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		// Fall back to noop publisher in development
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ not available, using noop publisher")
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			conn.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
	} else {
		c.EventPublisher = publisher
	}

	c.wire()
	return c, nil
}

// NewLocalContainer creates a container for local mode with SQLite.
// This provides zero-config operation without requiring PostgreSQL, Redis,
// or RabbitMQ: change events are dispatched on an in-process bus so derived
// dates and health stay current without a worker.
func NewLocalContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
	}
	c.DBConn = conn
	c.DBDriver = database.DriverSQLite

	if err := persistence.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// In-process bus stands in for RabbitMQ in local mode.
	c.InProcessEventBus = eventbus.NewInProcessEventBus(logger)
	c.EventPublisher = c.InProcessEventBus

	c.wire()

	// Recompute dates and health synchronously when milestones change.
	c.InProcessEventBus.RegisterConsumer(c.RecalculateSubscriber)

	logger.Info("local mode container initialized",
		"database", cfg.SQLitePath,
		"driver", "sqlite",
	)

	return c, nil
}

// wire creates the repositories, handlers, and subscribers on top of the
// already established connections.
func (c *Container) wire() {
	c.ProjectRepo = persistence.NewProjectRepository(c.DBConn)
	c.UnitOfWork = database.NewUnitOfWork(c.DBConn)
	c.DomainPublisher = eventbus.NewDomainEventPublisher(c.EventPublisher)

	// Interface values must stay nil when no Redis is configured so the
	// handlers skip caching instead of calling through a nil client.
	var healthWriter commands.HealthCache
	var healthReader queries.HealthCacheReader
	if c.HealthCache != nil {
		healthWriter = c.HealthCache
		healthReader = c.HealthCache
	}

	c.CreateProjectHandler = commands.NewCreateProjectHandler(c.ProjectRepo, c.UnitOfWork)
	c.UpdateProjectHandler = commands.NewUpdateProjectHandler(c.ProjectRepo, c.UnitOfWork)
	c.DeleteProjectHandler = commands.NewDeleteProjectHandler(c.ProjectRepo, c.UnitOfWork)
	c.ChangeProjectStatusHandler = commands.NewChangeProjectStatusHandler(c.ProjectRepo, c.UnitOfWork)

	c.AddMilestoneHandler = commands.NewAddMilestoneHandler(c.ProjectRepo, c.UnitOfWork, c.DomainPublisher)
	c.UpdateMilestoneHandler = commands.NewUpdateMilestoneHandler(c.ProjectRepo, c.UnitOfWork, c.DomainPublisher)
	c.DeleteMilestoneHandler = commands.NewDeleteMilestoneHandler(c.ProjectRepo, c.UnitOfWork, c.DomainPublisher)

	c.SetManualHealthHandler = commands.NewSetManualHealthHandler(c.ProjectRepo, c.UnitOfWork, c.DomainPublisher)
	c.UseAutomaticHealthHandler = commands.NewUseAutomaticHealthHandler(c.ProjectRepo, c.UnitOfWork, c.DomainPublisher)
	c.RecalculateHealthHandler = commands.NewRecalculateHealthHandler(c.ProjectRepo, c.UnitOfWork, c.DomainPublisher, healthWriter)

	c.OverrideDatesHandler = commands.NewOverrideDatesHandler(c.ProjectRepo, c.UnitOfWork, c.DomainPublisher)
	c.ResetDatesHandler = commands.NewResetDatesHandler(c.ProjectRepo, c.UnitOfWork, c.DomainPublisher)

	c.GetProjectHandler = queries.NewGetProjectHandler(c.ProjectRepo)
	c.ListProjectsHandler = queries.NewListProjectsHandler(c.ProjectRepo)
	c.GetHealthSummaryHandler = queries.NewGetHealthSummaryHandler(c.ProjectRepo, healthReader)

	c.RecalculateSubscriber = subscribers.NewRecalculateSubscriber(c.RecalculateHealthHandler, c.Logger)
}

// Close gracefully shuts down all connections.
func (c *Container) Close() {
	c.Logger.Info("shutting down application container")

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		} else {
			c.Logger.Info("Redis connection closed")
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Info("database connection closed", "driver", c.DBDriver)
		}
	}
}
