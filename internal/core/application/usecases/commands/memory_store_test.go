package commands_test

import (
	"context"
	"slices"
	"sync"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// memoryStore is a job store whose conditional writes are atomic under one
// mutex, the way a single UPDATE ... WHERE is atomic in a database. It has no
// transactions: writes are visible immediately, like the document store.
type memoryStore struct {
	mu     sync.Mutex
	rows   map[kernel.UUID]job.Snapshot
	events []job.Event
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[kernel.UUID]job.Snapshot)}
}

func (s *memoryStore) Create() commands.UoW {
	return &memoryUoW{store: s}
}

func (s *memoryStore) seed(jobs ...*job.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range jobs {
		s.rows[j.ID()] = j.Snapshot()
	}
}

func (s *memoryStore) snapshot(id kernel.UUID) (job.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	return row, ok
}

func (s *memoryStore) offers(originalID kernel.UUID) []job.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []job.Snapshot
	for _, row := range s.rows {
		if originalID.SameAs(row.OriginalJobID) {
			out = append(out, row)
		}
	}
	return out
}

type memoryUoW struct {
	store   *memoryStore
	tracked []*job.Job
}

func (u *memoryUoW) Begin(context.Context) error    { return nil }
func (u *memoryUoW) Rollback(context.Context) error { return nil }

func (u *memoryUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, j := range u.tracked {
		u.store.events = append(u.store.events, j.PullEvents()...)
	}
	u.tracked = nil
	return nil
}

func (u *memoryUoW) JobRepository() ports.JobRepository {
	return &memoryRepo{store: u.store, uow: u}
}

type memoryRepo struct {
	store *memoryStore
	uow   *memoryUoW
}

func (r *memoryRepo) track(j *job.Job) {
	r.uow.tracked = append(r.uow.tracked, j)
}

func (r *memoryRepo) Add(_ context.Context, aggregate *job.Job) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s := aggregate.Snapshot()
	for _, row := range r.store.rows {
		if row.ID.IsEqual(s.ID) || (s.OfferID != "" && row.OfferID == s.OfferID) {
			return errs.NewConflictError("job", s.ID)
		}
	}
	r.store.rows[s.ID] = s
	r.track(aggregate)
	return nil
}

func (r *memoryRepo) Get(_ context.Context, id kernel.UUID) (*job.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.rows[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("job", id)
	}
	return job.RestoreJob(row)
}

func (r *memoryRepo) GetByOfferID(_ context.Context, offerID job.OfferID) (*job.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, row := range r.store.rows {
		if row.OfferID == offerID.String() {
			return job.RestoreJob(row)
		}
	}
	return nil, errs.NewObjectNotFoundError("offer", offerID.String())
}

func (r *memoryRepo) Update(_ context.Context, aggregate *job.Job) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.rows[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("job", aggregate.ID())
	}
	r.store.rows[aggregate.ID()] = aggregate.Snapshot()
	r.track(aggregate)
	return nil
}

func (r *memoryRepo) UpdateIfStatus(_ context.Context, aggregate *job.Job, expected job.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.rows[aggregate.ID()]
	if !ok || row.Status != expected {
		return errs.NewConflictError("job", aggregate.ID())
	}
	r.store.rows[aggregate.ID()] = aggregate.Snapshot()
	r.track(aggregate)
	return nil
}

func (r *memoryRepo) AssignIfUnassigned(_ context.Context, aggregate *job.Job, requirePublic bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.rows[aggregate.ID()]
	if !ok || row.Type != job.Original || row.Status != job.Pending || row.Assignment.DriverID != nil ||
		(requirePublic && !row.IsPublic) {
		return errs.NewConflictError("job", aggregate.ID())
	}
	r.store.rows[aggregate.ID()] = aggregate.Snapshot()
	r.track(aggregate)
	return nil
}

func (r *memoryRepo) SupersedeSiblings(_ context.Context, originalID kernel.UUID, winner job.OfferID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for id, row := range r.store.rows {
		if originalID.SameAs(row.OriginalJobID) && row.OfferID != winner.String() && row.Status.IsPendingOffer() {
			row.Status = job.Superseded
			row.ResponseStatus = job.ResponseSuperseded
			r.store.rows[id] = row
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) DeleteOfferIfStatus(_ context.Context, offer *job.Job, statuses ...job.Status) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.rows[offer.ID()]
	if !ok || !row.Type.IsOffer() || !slices.Contains(statuses, row.Status) {
		return false, nil
	}
	delete(r.store.rows, offer.ID())
	r.track(offer)
	return true, nil
}

func (r *memoryRepo) ReleaseAssignment(_ context.Context, previous *job.Job, driverID kernel.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.rows[previous.ID()]
	if !ok || row.Type != job.Original || row.Status != job.Assigned || !driverID.SameAs(row.Assignment.DriverID) {
		return false, nil
	}
	r.store.rows[previous.ID()] = previous.Snapshot()
	return true, nil
}

func (r *memoryRepo) Delete(_ context.Context, aggregate *job.Job, statuses ...job.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.rows[aggregate.ID()]
	if !ok && len(statuses) == 0 {
		return errs.NewObjectNotFoundError("job", aggregate.ID())
	}
	if !ok || (len(statuses) > 0 && !slices.Contains(statuses, row.Status)) {
		return errs.NewConflictError("job", aggregate.ID())
	}
	delete(r.store.rows, aggregate.ID())
	r.track(aggregate)
	return nil
}

func (r *memoryRepo) ListLiveApplications(_ context.Context, originalID kernel.UUID, driverID kernel.UUID) ([]*job.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*job.Job
	for _, row := range r.store.rows {
		if row.Type == job.Application && originalID.SameAs(row.OriginalJobID) &&
			row.Status.IsPendingOffer() && driverID.SameAs(row.Assignment.DriverID) {
			j, err := job.RestoreJob(row)
			if err != nil {
				return nil, err
			}
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *memoryRepo) SupersedeStaleOffers(context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for id, row := range r.store.rows {
		if !row.Type.IsOffer() || !row.Status.IsPendingOffer() {
			continue
		}
		original, ok := r.store.rows[*row.OriginalJobID]
		if ok && original.Status == job.Pending && original.Assignment.DriverID == nil {
			continue
		}
		row.Status = job.Superseded
		row.ResponseStatus = job.ResponseSuperseded
		r.store.rows[id] = row
		n++
	}
	return n, nil
}

// staticUsers is a user directory over a fixed set of actors.
type staticUsers map[kernel.UUID]actor.Actor

func (u staticUsers) Get(_ context.Context, id kernel.UUID) (actor.Actor, error) {
	a, ok := u[id]
	if !ok {
		return actor.Actor{}, errs.NewObjectNotFoundError("user", id)
	}
	return a, nil
}

func (u staticUsers) add(a actor.Actor) actor.Actor {
	u[a.ID()] = a
	return a
}

// staticVehicles resolves every id to the same snapshot.
type staticVehicles struct{ snapshot job.VehicleSnapshot }

func (v staticVehicles) Get(context.Context, kernel.UUID) (job.VehicleSnapshot, error) {
	return v.snapshot, nil
}
