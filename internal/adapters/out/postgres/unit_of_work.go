// Package postgres provides the GORM-based Unit of Work over the jobs table.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it run inside that transaction and register the aggregates they wrote, so
// the events those aggregates recorded can be published once the transaction
// has committed.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, dispatcher)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.JobRepository().AssignIfUnassigned(ctx, original, false); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Concurrency: each UnitOfWork instance is owned by one goroutine. Concurrent
// commands use separate instances and meet only at the row level.
package postgres

import (
	"context"

	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool and one event dispatcher.
type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	dispatcher *eventbus.Dispatcher
}

// NewGormUnitOfWorkFactory accepts a nil dispatcher; events are then dropped.
//
// The db should be opened with gorm.Config{TranslateError: true} so that a
// duplicate offer id surfaces as a Conflict.
func NewGormUnitOfWorkFactory(db *gorm.DB, dispatcher *eventbus.Dispatcher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, dispatcher: dispatcher}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:         f.db,
		dispatcher: f.dispatcher,
		tracked:    make([]*job.Job, 0),
	}
}

// GormUnitOfWork coordinates one transaction and remembers the aggregates
// written in it.
type GormUnitOfWork struct {
	db         *gorm.DB
	tx         *gorm.DB
	dispatcher *eventbus.Dispatcher
	tracked    []*job.Job
}

// Begin starts the transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the writes durable, then publishes the tracked aggregates'
// events. Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.tracked = uow.tracked[:0]
		return err
	}

	tracked := uow.tracked
	uow.tracked = make([]*job.Job, 0)
	uow.dispatcher.Flush(ctx, tracked)
	return nil
}

// Rollback discards the transaction and forgets the tracked aggregates.
// Returns gorm.ErrInvalidTransaction when no transaction is open, which the
// handlers' deferred rollback after a commit ignores.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = uow.tracked[:0]
	return err
}

// JobRepository returns a repository on the open transaction, or on the pool
// when none is open.
func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return jobrepo.NewGormJobRepository(db, uow)
}

// TrackAggregate registers an aggregate written in this unit of work.
func (uow *GormUnitOfWork) TrackAggregate(aggregate *job.Job) {
	uow.tracked = append(uow.tracked, aggregate)
}

// TrackedAggregates returns the aggregates written since Begin.
func (uow *GormUnitOfWork) TrackedAggregates() []*job.Job {
	return uow.tracked
}
