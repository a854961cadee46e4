package eventbus_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event job.Event) error {
	return m.Called(ctx, event).Error(0)
}

func newJob(t *testing.T) *job.Job {
	t.Helper()
	creator, err := actor.NewActor(kernel.NewUUID(), []actor.Role{actor.Dispatcher}, nil, "", actor.Unassociated)
	require.NoError(t, err)
	j, err := job.NewOriginal(kernel.NewUUID(), job.TripDetails{Title: "Harbour"}, true, job.OwnerFromActor(creator),
		time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return j
}

func TestDispatcher_Flush_PublishesOncePerAggregate(t *testing.T) {
	ctx := t.Context()
	j := newJob(t)

	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, mock.MatchedBy(func(e job.Event) bool {
		return e.Type == job.EventJobCreated && e.JobID.IsEqual(j.ID())
	})).Return(nil).Once()

	eventbus.NewDispatcher(publisher, slog.Default()).Flush(ctx, []*job.Job{j, j})

	publisher.AssertExpectations(t)
	assert.Empty(t, j.PullEvents())
}

func TestDispatcher_Flush_LogsPublishFailure(t *testing.T) {
	ctx := t.Context()
	var logs bytes.Buffer

	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))

	d := eventbus.NewDispatcher(publisher, slog.New(slog.NewTextHandler(&logs, nil)))
	d.Flush(ctx, []*job.Job{newJob(t)})

	assert.Contains(t, logs.String(), "failed to publish event")
	assert.Contains(t, logs.String(), "broker down")
}

func TestDispatcher_Flush_NilPublisherDrainsEvents(t *testing.T) {
	j := newJob(t)

	eventbus.NewDispatcher(nil, nil).Flush(t.Context(), []*job.Job{j})

	assert.Empty(t, j.PullEvents())
}

func TestLogPublisher_Publish(t *testing.T) {
	var logs bytes.Buffer
	p := eventbus.NewLogPublisher(slog.New(slog.NewTextHandler(&logs, nil)))
	j := newJob(t)

	for _, e := range j.PullEvents() {
		require.NoError(t, p.Publish(t.Context(), e))
	}

	assert.Contains(t, logs.String(), "event_type=job.created")
	assert.Contains(t, logs.String(), "job_id="+j.ID().String())
}
