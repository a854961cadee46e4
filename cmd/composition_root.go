package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	apihttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/mongostore"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/jobreader"
	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/adapters/out/postgres/vehiclerepo"
	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // sqlx read side
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	clock  commands.Clock

	uowFactory ports.UnitOfWorkFactory
	reader     ports.JobReader
	users      ports.UserDirectory
	vehicles   ports.VehicleDirectory

	closers []func(context.Context) error
}

// NewCompositionRoot connects the configured store and event sink. Close
// releases whatever was opened, also after a partial failure.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{cfg: cfg, logger: logger, clock: commands.SystemClock()}

	publisher, err := root.connectPublisher()
	if err != nil {
		return nil, errors.Join(err, root.Close(ctx))
	}
	dispatcher := eventbus.NewDispatcher(publisher, logger)

	switch cfg.Storage.Driver {
	case StoragePostgres:
		err = root.connectPostgres(ctx, dispatcher)
	case StorageMongo:
		err = root.connectMongo(ctx, dispatcher)
	default:
		err = fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, errors.Join(err, root.Close(ctx))
	}
	return root, nil
}

func (c *CompositionRoot) connectPublisher() (ports.EventPublisher, error) {
	if c.cfg.RabbitMQ.URL == "" {
		c.logger.Info("rabbitmq is not configured, job events are logged")
		return eventbus.NewLogPublisher(c.logger), nil
	}

	publisher, err := rabbitmq.Dial(rabbitmq.Config{
		URL:            c.cfg.RabbitMQ.URL,
		Exchange:       c.cfg.RabbitMQ.Exchange,
		ConnectRetries: c.cfg.RabbitMQ.ConnectRetries,
		RetryInterval:  c.cfg.RabbitMQ.RetryInterval,
	}, c.logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, func(context.Context) error { return publisher.Close() })
	return publisher, nil
}

func (c *CompositionRoot) connectPostgres(ctx context.Context, dispatcher *eventbus.Dispatcher) error {
	pg := c.cfg.Storage.Postgres

	gormDB, err := gorm.Open(postgresdriver.Open(pg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	c.closers = append(c.closers, func(context.Context) error { return sqlDB.Close() })
	sqlDB.SetMaxOpenConns(pg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pg.ConnMaxLifetime)

	if err = postgres.Migrate(gormDB.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	readDB, err := sqlx.ConnectContext(ctx, "postgres", pg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect read side: %w", err)
	}
	c.closers = append(c.closers, func(context.Context) error { return readDB.Close() })
	readDB.SetMaxOpenConns(pg.MaxOpenConns)

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, dispatcher)
	c.reader = jobreader.NewSqlxJobReader(readDB)
	c.users = userrepo.NewGormUserRepository(gormDB)
	c.vehicles = vehiclerepo.NewGormVehicleRepository(gormDB)
	return nil
}

func (c *CompositionRoot) connectMongo(ctx context.Context, dispatcher *eventbus.Dispatcher) error {
	cfg := c.cfg.Storage.Mongo

	client, err := mongostore.Connect(ctx, cfg.URI, cfg.ConnectTimeout)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, client.Disconnect)

	db := client.Database(cfg.Database)
	if err = mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	c.uowFactory = mongostore.NewMongoUnitOfWorkFactory(db, dispatcher)
	c.reader = mongostore.NewMongoJobReader(db)
	c.users = mongostore.NewMongoUserDirectory(db)
	c.vehicles = mongostore.NewMongoVehicleDirectory(db)
	return nil
}

// Close releases resources in reverse order of acquisition.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var errList []error
	for _, closeFn := range slices.Backward(c.closers) {
		errList = append(errList, closeFn(ctx))
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) offerFactory() services.OfferFactory {
	return services.NewOfferFactory(c.clock)
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	return commands.NewCreateJobCommandHandler(c.commandUoWFactory(), c.users, c.clock)
}

func (c *CompositionRoot) CreateUpdateJobCommandHandler() commands.UpdateJobCommandHandler {
	return commands.NewUpdateJobCommandHandler(c.commandUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeleteJobCommandHandler() commands.DeleteJobCommandHandler {
	return commands.NewDeleteJobCommandHandler(c.commandUoWFactory(), c.users, c.clock)
}

func (c *CompositionRoot) CreateClaimJobCommandHandler() commands.ClaimJobCommandHandler {
	return commands.NewClaimJobCommandHandler(c.commandUoWFactory(), c.users, c.clock)
}

func (c *CompositionRoot) CreateAssignJobCommandHandler() commands.AssignJobCommandHandler {
	return commands.NewAssignJobCommandHandler(c.commandUoWFactory(), c.users, c.clock)
}

func (c *CompositionRoot) CreateCompleteJobCommandHandler() commands.CompleteJobCommandHandler {
	return commands.NewCompleteJobCommandHandler(c.commandUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelJobCommandHandler() commands.CancelJobCommandHandler {
	return commands.NewCancelJobCommandHandler(c.commandUoWFactory(), c.users, c.clock)
}

func (c *CompositionRoot) CreateCreateCopiedOfferCommandHandler() commands.CreateCopiedOfferCommandHandler {
	return commands.NewCreateCopiedOfferCommandHandler(c.commandUoWFactory(), c.users, c.vehicles, c.offerFactory())
}

func (c *CompositionRoot) CreateCreateApplicationCommandHandler() commands.CreateApplicationCommandHandler {
	return commands.NewCreateApplicationCommandHandler(c.commandUoWFactory(), c.users, c.vehicles, c.offerFactory())
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	return commands.NewAcceptOfferCommandHandler(c.commandUoWFactory(), c.users, c.clock, c.logger)
}

func (c *CompositionRoot) CreateRejectOfferCommandHandler() commands.RejectOfferCommandHandler {
	return commands.NewRejectOfferCommandHandler(c.commandUoWFactory(), c.users, c.clock)
}

func (c *CompositionRoot) CreateDeleteOwnApplicationCommandHandler() commands.DeleteOwnApplicationCommandHandler {
	return commands.NewDeleteOwnApplicationCommandHandler(c.commandUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReconcileOffersCommandHandler() commands.ReconcileOffersCommandHandler {
	return commands.NewReconcileOffersCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateGetJobQueryHandler() queries.GetJobQueryHandler {
	return queries.NewGetJobQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateListJobsQueryHandler() queries.ListJobsQueryHandler {
	return queries.NewListJobsQueryHandler(c.reader)
}

// HTTPHandlers wires every use case exposed over HTTP.
func (c *CompositionRoot) HTTPHandlers() apihttp.Handlers {
	return apihttp.Handlers{
		CreateJob:            c.CreateCreateJobCommandHandler(),
		UpdateJob:            c.CreateUpdateJobCommandHandler(),
		DeleteJob:            c.CreateDeleteJobCommandHandler(),
		ClaimJob:             c.CreateClaimJobCommandHandler(),
		AssignJob:            c.CreateAssignJobCommandHandler(),
		CompleteJob:          c.CreateCompleteJobCommandHandler(),
		CancelJob:            c.CreateCancelJobCommandHandler(),
		CreateCopiedOffer:    c.CreateCreateCopiedOfferCommandHandler(),
		CreateApplication:    c.CreateCreateApplicationCommandHandler(),
		AcceptOffer:          c.CreateAcceptOfferCommandHandler(),
		RejectOffer:          c.CreateRejectOfferCommandHandler(),
		DeleteOwnApplication: c.CreateDeleteOwnApplicationCommandHandler(),
		GetJob:               c.CreateGetJobQueryHandler(),
		ListJobs:             c.CreateListJobsQueryHandler(),
	}
}

// CreateJobManager schedules the offer reconciliation sweep.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileOffersCommandHandler(), c.cfg.Reconciliation.Schedule, c.logger)
}

// CreateRateLimiter prefers Redis and falls back to in-process counters when
// Redis is not configured or does not answer.
func (c *CompositionRoot) CreateRateLimiter(ctx context.Context) apihttp.Limiter {
	if c.cfg.Redis.Addr == "" {
		return apihttp.NewMemoryLimiter()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.Addr,
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		c.logger.Warn("redis is unreachable, rate limiting in memory", "addr", c.cfg.Redis.Addr, "error", err)
		_ = client.Close()
		return apihttp.NewMemoryLimiter()
	}
	c.closers = append(c.closers, func(context.Context) error { return client.Close() })
	return apihttp.NewRedisLimiter(client)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
