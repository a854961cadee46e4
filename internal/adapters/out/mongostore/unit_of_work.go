package mongostore

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoActiveUnitOfWork is returned by Commit and Rollback outside Begin.
var ErrNoActiveUnitOfWork = errors.New("unit of work has not begun")

type MongoUnitOfWorkFactory struct {
	db         *mongo.Database
	dispatcher *eventbus.Dispatcher
}

func NewMongoUnitOfWorkFactory(db *mongo.Database, dispatcher *eventbus.Dispatcher) *MongoUnitOfWorkFactory {
	return &MongoUnitOfWorkFactory{db: db, dispatcher: dispatcher}
}

func (f *MongoUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &MongoUnitOfWork{db: f.db, dispatcher: f.dispatcher}
}

// MongoUnitOfWork applies writes immediately. Commit publishes the events of
// the aggregates written since Begin; Rollback drops them but does not undo
// writes already applied.
type MongoUnitOfWork struct {
	db         *mongo.Database
	dispatcher *eventbus.Dispatcher
	active     bool
	tracked    []*job.Job
}

func (uow *MongoUnitOfWork) Begin(context.Context) error {
	uow.active = true
	return nil
}

func (uow *MongoUnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveUnitOfWork
	}
	tracked := uow.tracked
	uow.tracked = nil
	uow.active = false
	uow.dispatcher.Flush(ctx, tracked)
	return nil
}

func (uow *MongoUnitOfWork) Rollback(context.Context) error {
	if !uow.active {
		return ErrNoActiveUnitOfWork
	}
	uow.tracked = nil
	uow.active = false
	return nil
}

func (uow *MongoUnitOfWork) JobRepository() ports.JobRepository {
	return NewMongoJobRepository(uow.db, uow)
}

func (uow *MongoUnitOfWork) TrackAggregate(aggregate *job.Job) {
	uow.tracked = append(uow.tracked, aggregate)
}
