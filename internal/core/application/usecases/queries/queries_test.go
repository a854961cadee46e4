package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobReader struct{ mock.Mock }

func (m *MockJobReader) Find(ctx context.Context, filter ports.JobFilter) ([]job.Snapshot, error) {
	args := m.Called(ctx, filter)
	jobs, _ := args.Get(0).([]job.Snapshot)
	return jobs, args.Error(1)
}

func (m *MockJobReader) FindByID(ctx context.Context, id kernel.UUID) (job.Snapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(job.Snapshot), args.Error(1)
}

func snapshot(id kernel.UUID) job.Snapshot {
	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	return job.Snapshot{
		ID:        id,
		Type:      job.Original,
		Status:    job.Pending,
		Details:   job.TripDetails{Title: "Airport run"},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestNewGetJobQuery(t *testing.T) {
	_, err := queries.NewGetJobQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	q, err := queries.NewGetJobQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, q.Validate())

	assert.ErrorIs(t, queries.GetJobQuery{}.Validate(), queries.ErrGetJobQueryIsNotConstructed)
}

func TestGetJobQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	reader := new(MockJobReader)
	reader.On("FindByID", ctx, id).Return(snapshot(id), nil).Once()

	q, _ := queries.NewGetJobQuery(id)
	got, err := queries.NewGetJobQueryHandler(reader).Handle(ctx, q)

	require.NoError(t, err)
	assert.True(t, got.ID.IsEqual(id))
	assert.Equal(t, "Airport run", got.Details.Title)
	reader.AssertExpectations(t)
}

func TestGetJobQueryHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	reader := new(MockJobReader)
	reader.On("FindByID", ctx, id).Return(job.Snapshot{}, errs.NewObjectNotFoundError("job", id)).Once()

	q, _ := queries.NewGetJobQuery(id)
	_, err := queries.NewGetJobQueryHandler(reader).Handle(ctx, q)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetJobQueryHandler_Handle_InvalidQuery(t *testing.T) {
	reader := new(MockJobReader)

	_, err := queries.NewGetJobQueryHandler(reader).Handle(t.Context(), queries.GetJobQuery{})

	require.ErrorIs(t, err, queries.ErrGetJobQueryIsNotConstructed)
	reader.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestNewListJobsQuery_DefaultsLimit(t *testing.T) {
	q, err := queries.NewListJobsQuery(queries.ListJobsFilter{})

	require.NoError(t, err)
	assert.Equal(t, ports.DefaultListLimit, q.Filter().Limit)
	assert.Zero(t, q.Filter().Offset)
}

func TestNewListJobsQuery_RejectsBadFilters(t *testing.T) {
	unknownStatus := job.Status(0)
	unknownType := job.Type(0)
	nilID := kernel.UUID{}

	tests := []struct {
		name   string
		filter queries.ListJobsFilter
	}{
		{"negative limit", queries.ListJobsFilter{Limit: -1}},
		{"limit above max", queries.ListJobsFilter{Limit: queries.MaxListLimit + 1}},
		{"negative offset", queries.ListJobsFilter{Offset: -5}},
		{"unknown status", queries.ListJobsFilter{Status: &unknownStatus}},
		{"unknown type", queries.ListJobsFilter{Type: &unknownType}},
		{"nil driver id", queries.ListJobsFilter{AssignedDriverID: &nilID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewListJobsQuery(tt.filter)
			require.Error(t, err)
		})
	}
}

func TestListJobsQueryHandler_Handle_PassesFilter(t *testing.T) {
	ctx := t.Context()
	companyID := kernel.NewUUID()
	pending := job.Pending
	public := true

	q, err := queries.NewListJobsQuery(queries.ListJobsFilter{
		CompanyID: &companyID,
		Status:    &pending,
		IsPublic:  &public,
		Limit:     20,
		Offset:    40,
	})
	require.NoError(t, err)

	rows := []job.Snapshot{snapshot(kernel.NewUUID()), snapshot(kernel.NewUUID())}
	reader := new(MockJobReader)
	reader.On("Find", ctx, mock.MatchedBy(func(f ports.JobFilter) bool {
		return f.CompanyID != nil && f.CompanyID.IsEqual(companyID) &&
			f.Status != nil && *f.Status == job.Pending &&
			f.IsPublic != nil && *f.IsPublic &&
			f.AssignedDriverID == nil &&
			f.Limit == 20 && f.Offset == 40
	})).Return(rows, nil).Once()

	got, err := queries.NewListJobsQueryHandler(reader).Handle(ctx, q)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	reader.AssertExpectations(t)
}

func TestListJobsQueryHandler_Handle_EmptyIsNotNil(t *testing.T) {
	ctx := t.Context()
	reader := new(MockJobReader)
	reader.On("Find", ctx, mock.Anything).Return(nil, nil).Once()

	q, _ := queries.NewListJobsQuery(queries.ListJobsFilter{})
	got, err := queries.NewListJobsQueryHandler(reader).Handle(ctx, q)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListJobsQueryHandler_Handle_InvalidQuery(t *testing.T) {
	_, err := queries.NewListJobsQueryHandler(new(MockJobReader)).Handle(t.Context(), queries.ListJobsQuery{})

	require.ErrorIs(t, err, queries.ErrListJobsQueryIsNotConstructed)
}
