package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}

func (m *MockJobRepository) GetByOfferID(ctx context.Context, offerID job.OfferID) (*job.Job, error) {
	args := m.Called(ctx, offerID)
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockJobRepository) UpdateIfStatus(ctx context.Context, aggregate *job.Job, expected job.Status) error {
	return m.Called(ctx, aggregate, expected).Error(0)
}

func (m *MockJobRepository) AssignIfUnassigned(ctx context.Context, aggregate *job.Job, requirePublic bool) error {
	return m.Called(ctx, aggregate, requirePublic).Error(0)
}

func (m *MockJobRepository) SupersedeSiblings(ctx context.Context, originalID kernel.UUID, winner job.OfferID) (int64, error) {
	args := m.Called(ctx, originalID, winner)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) DeleteOfferIfStatus(ctx context.Context, offer *job.Job, statuses ...job.Status) (bool, error) {
	args := m.Called(ctx, offer, statuses)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) ReleaseAssignment(ctx context.Context, previous *job.Job, driverID kernel.UUID) (bool, error) {
	args := m.Called(ctx, previous, driverID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) Delete(ctx context.Context, aggregate *job.Job, statuses ...job.Status) error {
	return m.Called(ctx, aggregate, statuses).Error(0)
}

func (m *MockJobRepository) ListLiveApplications(ctx context.Context, originalID kernel.UUID, driverID kernel.UUID) ([]*job.Job, error) {
	args := m.Called(ctx, originalID, driverID)
	jobs, _ := args.Get(0).([]*job.Job)
	return jobs, args.Error(1)
}

func (m *MockJobRepository) SupersedeStaleOffers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) JobRepository() ports.JobRepository {
	return m.Called().Get(0).(ports.JobRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) Get(ctx context.Context, id kernel.UUID) (actor.Actor, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(actor.Actor)
	return a, args.Error(1)
}

type MockVehicleDirectory struct{ mock.Mock }

func (m *MockVehicleDirectory) Get(ctx context.Context, id kernel.UUID) (job.VehicleSnapshot, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(job.VehicleSnapshot)
	return v, args.Error(1)
}
