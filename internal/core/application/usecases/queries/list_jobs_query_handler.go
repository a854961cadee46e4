package queries

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
)

// ListJobsQueryHandler serves job listings from the read model.
type ListJobsQueryHandler struct {
	reader ports.JobReader
}

func NewListJobsQueryHandler(reader ports.JobReader) ListJobsQueryHandler {
	return ListJobsQueryHandler{reader: reader}
}

// Handle always returns a non-nil slice.
func (h ListJobsQueryHandler) Handle(ctx context.Context, query ListJobsQuery) ([]job.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	jobs, err := h.reader.Find(ctx, query.Filter())
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = make([]job.Snapshot, 0)
	}
	return jobs, nil
}
