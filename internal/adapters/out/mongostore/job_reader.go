package mongostore

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoJobReader implements ports.JobReader.
type MongoJobReader struct {
	jobs *mongo.Collection
}

func NewMongoJobReader(db *mongo.Database) *MongoJobReader {
	return &MongoJobReader{jobs: db.Collection(JobsCollection)}
}

func (r *MongoJobReader) FindByID(ctx context.Context, id kernel.UUID) (job.Snapshot, error) {
	if err := id.Validate(); err != nil {
		return job.Snapshot{}, err
	}

	var doc jobDocument
	if err := r.jobs.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return job.Snapshot{}, errs.NewObjectNotFoundError("job", id.String())
		}
		return job.Snapshot{}, errs.NewStoreFailureError("find job", err)
	}
	return doc.snapshot()
}

func (r *MongoJobReader) Find(ctx context.Context, f ports.JobFilter) ([]job.Snapshot, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = ports.DefaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(f.Offset))

	cursor, err := r.jobs.Find(ctx, filterDocument(f), opts)
	if err != nil {
		return nil, errs.NewStoreFailureError("find jobs", err)
	}

	var docs []jobDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, errs.NewStoreFailureError("find jobs", err)
	}

	out := make([]job.Snapshot, 0, len(docs))
	for _, doc := range docs {
		s, mapErr := doc.snapshot()
		if mapErr != nil {
			return nil, mapErr
		}
		out = append(out, s)
	}
	return out, nil
}

func filterDocument(f ports.JobFilter) bson.M {
	filter := bson.M{}
	if f.AssignedDriverID != nil {
		filter["assigned_driver_id"] = f.AssignedDriverID.String()
	}
	if f.CreatedByID != nil {
		filter["created_by_dispatcher_id"] = f.CreatedByID.String()
	}
	if f.CompanyID != nil {
		filter["company_id"] = f.CompanyID.String()
	}
	if f.OriginalJobID != nil {
		filter["original_job_id"] = f.OriginalJobID.String()
	}
	if f.IsPublic != nil {
		filter["is_public"] = *f.IsPublic
	}
	if f.Status != nil {
		filter["status"] = f.Status.String()
	}
	if f.Type != nil {
		filter["job_type"] = f.Type.String()
	}
	return filter
}
