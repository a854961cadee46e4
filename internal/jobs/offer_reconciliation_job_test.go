package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReconciler struct{ mock.Mock }

func (m *MockReconciler) Handle(ctx context.Context, cmd commands.ReconcileOffersCommand) (int64, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(int64), args.Error(1)
}

func TestOfferReconciliationJob_RunOnce(t *testing.T) {
	reconciler := new(MockReconciler)
	reconciler.On("Handle", mock.Anything, mock.Anything).Return(int64(3), nil).Once()

	var buf bytes.Buffer
	job := NewOfferReconciliationJob(reconciler, "", slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Equal(t, int64(3), job.RunOnce(t.Context()))
	assert.Contains(t, buf.String(), "superseded stale offers")
	reconciler.AssertExpectations(t)
}

func TestOfferReconciliationJob_RunOnce_LogsFailure(t *testing.T) {
	reconciler := new(MockReconciler)
	reconciler.On("Handle", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()

	var buf bytes.Buffer
	job := NewOfferReconciliationJob(reconciler, "", slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Zero(t, job.RunOnce(t.Context()))
	assert.Contains(t, buf.String(), "offer reconciliation failed")
	assert.Contains(t, buf.String(), "db down")
}

func TestOfferReconciliationJob_Start_InvalidSchedule(t *testing.T) {
	job := NewOfferReconciliationJob(new(MockReconciler), "not a schedule", slog.Default())

	require.Error(t, job.Start())
}

func TestOfferReconciliationJob_RunsOnSchedule(t *testing.T) {
	reconciler := new(MockReconciler)
	ran := make(chan struct{}, 1)
	reconciler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		}).
		Return(int64(0), nil)

	manager := NewJobManager(reconciler, "* * * * * *", slog.Default())
	require.NoError(t, manager.StartAll())
	defer manager.StopAll()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("reconciliation did not run")
	}
}
