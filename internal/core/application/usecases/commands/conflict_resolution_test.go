package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engine struct {
	store    *memoryStore
	users    staticUsers
	clock    commands.Clock
	create   commands.CreateJobCommandHandler
	claim    commands.ClaimJobCommandHandler
	complete commands.CompleteJobCommandHandler
	cancel   commands.CancelJobCommandHandler
	copy     commands.CreateCopiedOfferCommandHandler
	apply    commands.CreateApplicationCommandHandler
	accept   commands.AcceptOfferCommandHandler
	reject   commands.RejectOfferCommandHandler
	deleteMy commands.DeleteOwnApplicationCommandHandler
	sweep    commands.ReconcileOffersCommandHandler
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	store := newMemoryStore()
	users := staticUsers{}
	vehicles := staticVehicles{snapshot: job.VehicleSnapshot{LicensePlate: "KA-01", Make: "Ford", Model: "Transit"}}

	var mu sync.Mutex
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := commands.Clock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Microsecond)
		return tick
	})
	factory := services.NewOfferFactory(clock)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &engine{
		store:    store,
		users:    users,
		clock:    clock,
		create:   commands.NewCreateJobCommandHandler(store, users, clock),
		claim:    commands.NewClaimJobCommandHandler(store, users, clock),
		complete: commands.NewCompleteJobCommandHandler(store, clock),
		cancel:   commands.NewCancelJobCommandHandler(store, users, clock),
		copy:     commands.NewCreateCopiedOfferCommandHandler(store, users, vehicles, factory),
		apply:    commands.NewCreateApplicationCommandHandler(store, users, vehicles, factory),
		accept:   commands.NewAcceptOfferCommandHandler(store, users, clock, logger),
		reject:   commands.NewRejectOfferCommandHandler(store, users, clock),
		deleteMy: commands.NewDeleteOwnApplicationCommandHandler(store, clock),
		sweep:    commands.NewReconcileOffersCommandHandler(store),
	}
}

func (e *engine) newUser(t *testing.T, roles ...actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), roles, nil, "", "")
	require.NoError(t, err)
	return e.users.add(a)
}

func (e *engine) newOriginal(t *testing.T, creator actor.Actor, public bool) *job.Job {
	t.Helper()
	cmd, err := commands.NewCreateJobCommand(kernel.NewUUID(), creator.ID(), job.TripDetails{Title: "Harbour pickup"}, public)
	require.NoError(t, err)
	j, err := e.create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return j
}

func (e *engine) copyTo(t *testing.T, original *job.Job, by, driver actor.Actor) *job.Job {
	t.Helper()
	cmd, err := commands.NewCreateCopiedOfferCommand(original.ID(), by.ID(), driver.ID(), kernel.NewUUID(), "Driver", "+1")
	require.NoError(t, err)
	offer, err := e.copy.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return offer
}

func (e *engine) applyFor(t *testing.T, original *job.Job, driver actor.Actor) *job.Job {
	t.Helper()
	cmd, err := commands.NewCreateApplicationCommand(original.ID(), driver.ID(), kernel.NewUUID(), "Driver", "+1")
	require.NoError(t, err)
	offer, err := e.apply.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return offer
}

func (e *engine) acceptAs(t *testing.T, offer *job.Job, by actor.Actor) (*job.Job, error) {
	t.Helper()
	cmd, err := commands.NewAcceptOfferCommand(offer.OfferID().String(), by.ID())
	require.NoError(t, err)
	return e.accept.Handle(t.Context(), cmd)
}

func (e *engine) status(t *testing.T, id kernel.UUID) job.Status {
	t.Helper()
	row, ok := e.store.snapshot(id)
	require.True(t, ok)
	return row.Status
}

func TestAcceptOffer_ConcurrentAcceptsHaveOneWinner(t *testing.T) {
	const offers = 16
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	original := e.newOriginal(t, dispatcher, false)

	type candidate struct {
		driver actor.Actor
		offer  *job.Job
	}
	candidates := make([]candidate, offers)
	for i := range candidates {
		driver := e.newUser(t, actor.Driver)
		candidates[i] = candidate{driver: driver, offer: e.copyTo(t, original, dispatcher, driver)}
	}

	results := make([]error, offers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, c := range candidates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			cmd, err := commands.NewAcceptOfferCommand(c.offer.OfferID().String(), c.driver.ID())
			if err != nil {
				results[i] = err
				return
			}
			_, results[i] = e.accept.Handle(t.Context(), cmd)
		}()
	}
	close(start)
	wg.Wait()

	winner := -1
	for i, err := range results {
		if err == nil {
			require.Equal(t, -1, winner, "second winner at %d", i)
			winner = i
			continue
		}
		require.ErrorIs(t, err, errs.ErrConflict)
	}
	require.NotEqual(t, -1, winner)

	row, _ := e.store.snapshot(original.ID())
	assert.Equal(t, job.Assigned, row.Status)
	assert.False(t, row.IsPublic)
	assert.True(t, candidates[winner].driver.ID().SameAs(row.Assignment.DriverID))

	accepted := 0
	for _, offer := range e.store.offers(original.ID()) {
		switch offer.Status {
		case job.Accepted:
			accepted++
			assert.Equal(t, job.ResponseAccepted, offer.ResponseStatus)
		case job.Superseded:
			assert.Equal(t, job.ResponseSuperseded, offer.ResponseStatus)
		default:
			t.Fatalf("offer %s left in %s", offer.OfferID, offer.Status)
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestAcceptOffer_NonPendingOriginalIsConflict(t *testing.T) {
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	driver := e.newUser(t, actor.Driver)
	claimer := e.newUser(t, actor.Driver)
	original := e.newOriginal(t, dispatcher, true)
	offer := e.copyTo(t, original, dispatcher, driver)

	claim, err := commands.NewClaimJobCommand(original.ID(), claimer.ID())
	require.NoError(t, err)
	_, err = e.claim.Handle(t.Context(), claim)
	require.NoError(t, err)

	_, err = e.acceptAs(t, offer, driver)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, job.PendingAcceptance, e.status(t, offer.ID()))
	row, _ := e.store.snapshot(original.ID())
	assert.True(t, claimer.ID().SameAs(row.Assignment.DriverID))
}

func TestAcceptOffer_OnlyRespondentMayAccept(t *testing.T) {
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	driver := e.newUser(t, actor.Driver)
	original := e.newOriginal(t, dispatcher, false)
	offer := e.copyTo(t, original, dispatcher, driver)

	_, err := e.acceptAs(t, offer, e.newUser(t, actor.Driver))

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, job.Pending, e.status(t, original.ID()))
}

func TestApplications_AcceptOneSupersedeOther(t *testing.T) {
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	driverA := e.newUser(t, actor.Driver)
	driverB := e.newUser(t, actor.Driver)
	original := e.newOriginal(t, dispatcher, true)

	appA := e.applyFor(t, original, driverA)
	appB := e.applyFor(t, original, driverB)

	updated, err := e.acceptAs(t, appA, dispatcher)
	require.NoError(t, err)
	assert.Equal(t, job.Assigned, updated.Status())
	assert.False(t, updated.IsPublic())
	assert.True(t, driverA.ID().SameAs(updated.Assignment().DriverID))
	assert.Equal(t, "KA-01", updated.Assignment().Vehicle.LicensePlate)

	assert.Equal(t, job.Accepted, e.status(t, appA.ID()))
	assert.Equal(t, job.Superseded, e.status(t, appB.ID()))

	_, err = e.acceptAs(t, appB, dispatcher)
	require.ErrorIs(t, err, errs.ErrConflict)

	delB, err := commands.NewDeleteOwnApplicationCommand(appB.OfferID().String(), driverB.ID())
	require.NoError(t, err)
	require.NoError(t, e.deleteMy.Handle(t.Context(), delB))

	delA, err := commands.NewDeleteOwnApplicationCommand(appA.OfferID().String(), driverA.ID())
	require.NoError(t, err)
	require.NoError(t, e.deleteMy.Handle(t.Context(), delA))

	assert.Empty(t, e.store.offers(original.ID()))
}

func TestApplications_DriverMayHoldOneLiveApplication(t *testing.T) {
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	driver := e.newUser(t, actor.Driver)
	original := e.newOriginal(t, dispatcher, true)
	e.applyFor(t, original, driver)

	cmd, err := commands.NewCreateApplicationCommand(original.ID(), driver.ID(), kernel.NewUUID(), "", "")
	require.NoError(t, err)
	_, err = e.apply.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, job.ErrAlreadyApplied)
}

func TestDeleteOwnApplication_Rules(t *testing.T) {
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	driver := e.newUser(t, actor.Driver)
	original := e.newOriginal(t, dispatcher, true)
	app := e.applyFor(t, original, driver)

	live, err := commands.NewDeleteOwnApplicationCommand(app.OfferID().String(), driver.ID())
	require.NoError(t, err)
	require.ErrorIs(t, e.deleteMy.Handle(t.Context(), live), errs.ErrInvalidState)

	_, err = e.acceptAs(t, app, dispatcher)
	require.NoError(t, err)

	stranger, err := commands.NewDeleteOwnApplicationCommand(app.OfferID().String(), kernel.NewUUID())
	require.NoError(t, err)
	require.ErrorIs(t, e.deleteMy.Handle(t.Context(), stranger), errs.ErrUnauthorized)

	require.NoError(t, e.deleteMy.Handle(t.Context(), live))
	_, ok := e.store.snapshot(app.ID())
	assert.False(t, ok)
}

func TestRejectOffer_ReturnsFalseOnceProcessed(t *testing.T) {
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	driver := e.newUser(t, actor.Driver)
	original := e.newOriginal(t, dispatcher, false)
	offer := e.copyTo(t, original, dispatcher, driver)

	cmd, err := commands.NewRejectOfferCommand(offer.OfferID().String(), driver.ID())
	require.NoError(t, err)

	removed, err := e.reject.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = e.reject.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Equal(t, job.Pending, e.status(t, original.ID()))
}

func TestRejectOffer_SettledOfferIsNotRemoved(t *testing.T) {
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	driver := e.newUser(t, actor.Driver)
	original := e.newOriginal(t, dispatcher, false)
	offer := e.copyTo(t, original, dispatcher, driver)
	_, err := e.acceptAs(t, offer, driver)
	require.NoError(t, err)

	cmd, err := commands.NewRejectOfferCommand(offer.OfferID().String(), driver.ID())
	require.NoError(t, err)
	removed, err := e.reject.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, job.Accepted, e.status(t, offer.ID()))
}

func TestCompleteJob_WrongDriverAndTwice(t *testing.T) {
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	driver := e.newUser(t, actor.Driver)
	original := e.newOriginal(t, dispatcher, true)

	claim, err := commands.NewClaimJobCommand(original.ID(), driver.ID())
	require.NoError(t, err)
	_, err = e.claim.Handle(t.Context(), claim)
	require.NoError(t, err)

	wrong, err := commands.NewCompleteJobCommand(original.ID(), kernel.NewUUID())
	require.NoError(t, err)
	_, err = e.complete.Handle(t.Context(), wrong)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	right, err := commands.NewCompleteJobCommand(original.ID(), driver.ID())
	require.NoError(t, err)
	done, err := e.complete.Handle(t.Context(), right)
	require.NoError(t, err)
	assert.Equal(t, job.Completed, done.Status())

	_, err = e.complete.Handle(t.Context(), right)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	require.ErrorIs(t, err, job.ErrJobIsAlreadyCompleted)
}

func TestClaimJob_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	const drivers = 8
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	original := e.newOriginal(t, dispatcher, true)

	results := make([]error, drivers)
	var wg sync.WaitGroup
	for i := range drivers {
		driver := e.newUser(t, actor.Driver)
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewClaimJobCommand(original.ID(), driver.ID())
			if err != nil {
				results[i] = err
				return
			}
			_, results[i] = e.claim.Handle(t.Context(), cmd)
		}()
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, errors.Is(err, errs.ErrInvalidState) || errors.Is(err, errs.ErrConflict), err)
	}
	assert.Equal(t, 1, wins)
}

func TestReconcileOffers_SupersedesOffersOfClosedOriginals(t *testing.T) {
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	original := e.newOriginal(t, dispatcher, true)
	offer := e.copyTo(t, original, dispatcher, e.newUser(t, actor.Driver))
	app := e.applyFor(t, original, e.newUser(t, actor.Driver))
	untouched := e.newOriginal(t, dispatcher, true)
	liveOffer := e.copyTo(t, untouched, dispatcher, e.newUser(t, actor.Driver))

	cancel, err := commands.NewCancelJobCommand(original.ID(), dispatcher.ID())
	require.NoError(t, err)
	_, err = e.cancel.Handle(t.Context(), cancel)
	require.NoError(t, err)

	count, err := e.sweep.Handle(t.Context(), commands.NewReconcileOffersCommand())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, job.Superseded, e.status(t, offer.ID()))
	assert.Equal(t, job.Superseded, e.status(t, app.ID()))
	assert.Equal(t, job.PendingAcceptance, e.status(t, liveOffer.ID()))

	count, err = e.sweep.Handle(t.Context(), commands.NewReconcileOffersCommand())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEvents_PublishedForCommittedChanges(t *testing.T) {
	e := newEngine(t)
	dispatcher := e.newUser(t, actor.Dispatcher)
	driver := e.newUser(t, actor.Driver)
	original := e.newOriginal(t, dispatcher, false)
	offer := e.copyTo(t, original, dispatcher, driver)
	_, err := e.acceptAs(t, offer, driver)
	require.NoError(t, err)

	types := make([]job.EventType, 0, len(e.store.events))
	for _, ev := range e.store.events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []job.EventType{
		job.EventJobCreated,
		job.EventOfferCreated,
		job.EventJobAssigned,
		job.EventOfferAccepted,
	}, types)
}
