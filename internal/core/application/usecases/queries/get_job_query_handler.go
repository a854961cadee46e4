package queries

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
)

type GetJobQueryHandler struct {
	reader ports.JobReader
}

func NewGetJobQueryHandler(reader ports.JobReader) GetJobQueryHandler {
	return GetJobQueryHandler{reader: reader}
}

// Handle returns NotFound when no job has the requested id.
func (h GetJobQueryHandler) Handle(ctx context.Context, query GetJobQuery) (job.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return job.Snapshot{}, err
	}
	return h.reader.FindByID(ctx, query.JobID())
}
