package job_test

import (
	"testing"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []job.Status{
	job.Pending, job.Assigned, job.Completed, job.Cancelled,
	job.PendingAcceptance, job.Accepted, job.Rejected, job.Superseded, job.ApplicationRequested,
}

func TestStatus_StringRoundTrip(t *testing.T) {
	for _, s := range allStatuses {
		t.Run(s.String(), func(t *testing.T) {
			require.NoError(t, s.Validate())

			parsed, err := job.StatusFromString(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		})
	}

	_, err := job.StatusFromString("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, job.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, job.Status(99).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", job.Status(99).String())
}

func TestStatus_Assign(t *testing.T) {
	next, err := job.Pending.Assign()
	require.NoError(t, err)
	assert.Equal(t, job.Assigned, next)

	for _, s := range allStatuses {
		if s == job.Pending {
			continue
		}
		_, err := s.Assign()
		require.ErrorIs(t, err, errs.ErrInvalidState, s.String())
		require.ErrorIs(t, err, job.ErrJobIsNotPending, s.String())
	}
}

func TestStatus_CompleteAndCancel(t *testing.T) {
	tests := []struct {
		from   job.Status
		reason error
	}{
		{job.Pending, nil},
		{job.Assigned, nil},
		{job.Completed, job.ErrJobIsAlreadyCompleted},
		{job.Cancelled, job.ErrJobIsAlreadyCancelled},
		{job.PendingAcceptance, job.ErrTransitionNotAllowed},
		{job.Accepted, job.ErrTransitionNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			completed, completeErr := tt.from.Complete()
			cancelled, cancelErr := tt.from.Cancel()

			if tt.reason == nil {
				require.NoError(t, completeErr)
				require.NoError(t, cancelErr)
				assert.Equal(t, job.Completed, completed)
				assert.Equal(t, job.Cancelled, cancelled)
				return
			}
			require.ErrorIs(t, completeErr, errs.ErrInvalidState)
			require.ErrorIs(t, completeErr, tt.reason)
			require.ErrorIs(t, cancelErr, tt.reason)
		})
	}
}

func TestStatus_OfferTransitions(t *testing.T) {
	transitions := map[string]func(job.Status) (job.Status, error){
		"accept":    job.Status.Accept,
		"reject":    job.Status.Reject,
		"supersede": job.Status.Supersede,
	}
	want := map[string]job.Status{
		"accept":    job.Accepted,
		"reject":    job.Rejected,
		"supersede": job.Superseded,
	}

	for name, transition := range transitions {
		t.Run(name, func(t *testing.T) {
			for _, from := range job.PendingOfferStatuses() {
				next, err := transition(from)
				require.NoError(t, err)
				assert.Equal(t, want[name], next)
			}
			for _, from := range append(job.TerminalOfferStatuses(), job.Pending, job.Assigned) {
				_, err := transition(from)
				require.ErrorIs(t, err, job.ErrOfferIsNotPending, from.String())
			}
		})
	}
}

func TestStatus_NothingLeavesTerminal(t *testing.T) {
	for _, s := range allStatuses {
		if !s.IsTerminal() {
			continue
		}
		_, assignErr := s.Assign()
		_, completeErr := s.Complete()
		_, cancelErr := s.Cancel()
		_, acceptErr := s.Accept()
		_, rejectErr := s.Reject()
		_, supersedeErr := s.Supersede()

		for _, err := range []error{assignErr, completeErr, cancelErr, acceptErr, rejectErr, supersedeErr} {
			require.ErrorIs(t, err, errs.ErrInvalidState, s.String())
		}
	}
}

func TestStatus_IsValidFor(t *testing.T) {
	assert.True(t, job.Pending.IsValidFor(job.Original))
	assert.False(t, job.Pending.IsValidFor(job.Copied))
	assert.True(t, job.PendingAcceptance.IsValidFor(job.Copied))
	assert.False(t, job.PendingAcceptance.IsValidFor(job.Application))
	assert.True(t, job.ApplicationRequested.IsValidFor(job.Application))
	assert.True(t, job.Superseded.IsValidFor(job.Application))
	assert.False(t, job.Superseded.IsValidFor(job.Original))
	assert.False(t, job.Pending.IsValidFor(job.UnknownType))
}

func TestType(t *testing.T) {
	for _, typ := range []job.Type{job.Original, job.Copied, job.Application} {
		parsed, err := job.TypeFromString(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
	assert.False(t, job.Original.IsOffer())
	assert.True(t, job.Copied.IsOffer())
	assert.True(t, job.Application.IsOffer())

	_, err := job.TypeFromString("draft")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, job.UnknownType.Validate(), errs.ErrValueIsInvalid)
}

func TestResponseStatus_Validate(t *testing.T) {
	require.NoError(t, job.NoResponse.Validate())
	require.NoError(t, job.ResponseAccepted.Validate())
	require.NoError(t, job.ResponseSuperseded.Validate())
	require.ErrorIs(t, job.ResponseStatus("maybe").Validate(), errs.ErrValueIsInvalid)
}
