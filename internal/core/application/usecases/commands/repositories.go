// Package commands contains the operations that change job state.
// Every command is validated on construction, runs in its own unit of work and
// relies on the store's conditional writes, never on in-process locks, to
// resolve races between actors.
package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces used by the handlers. They mirror ports.UnitOfWork
// so handlers can be tested with small mocks.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobRepoFactory provides a job repository bound to the transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// UoW manages one business transaction over jobs.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   repo := uow.JobRepository()
	//   // ... load, mutate, conditionally write
	//
	//   return uow.Commit(ctx)
	UoW interface {
		TxManager
		JobRepoFactory
	}

	// UoWFactory creates a fresh unit of work per command.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock returns the current instant. Handlers stamp aggregates with it.
type Clock func() time.Time

// SystemClock is the UTC wall clock.
func SystemClock() Clock {
	return func() time.Time { return time.Now().UTC() }
}
