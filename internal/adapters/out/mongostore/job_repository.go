package mongostore

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type aggregateTracker interface {
	TrackAggregate(aggregate *job.Job)
}

// MongoJobRepository implements ports.JobRepository on a jobs collection.
type MongoJobRepository struct {
	jobs    *mongo.Collection
	tracker aggregateTracker
	now     func() time.Time
}

func NewMongoJobRepository(db *mongo.Database, tracker aggregateTracker) *MongoJobRepository {
	return &MongoJobRepository{
		jobs:    db.Collection(JobsCollection),
		tracker: tracker,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *MongoJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, err := r.jobs.InsertOne(ctx, fromDomain(aggregate)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewConflictErrorWithCause("job", aggregate.ID().String(), err)
		}
		return errs.NewStoreFailureError("add job", err)
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *MongoJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": id.String()}, "job", id.String())
}

func (r *MongoJobRepository) GetByOfferID(ctx context.Context, offerID job.OfferID) (*job.Job, error) {
	if err := offerID.Validate(); err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"offer_id": offerID.String()}, "offer", offerID.String())
}

func (r *MongoJobRepository) findOne(ctx context.Context, filter bson.M, object, key string) (*job.Job, error) {
	var doc jobDocument
	if err := r.jobs.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundError(object, key)
		}
		return nil, errs.NewStoreFailureError("get "+object, err)
	}
	return doc.toDomain()
}

func (r *MongoJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	matched, err := r.updateWhere(ctx, aggregate, bson.M{})
	if err != nil {
		return err
	}
	if !matched {
		return errs.NewObjectNotFoundError("job", aggregate.ID().String())
	}
	return nil
}

func (r *MongoJobRepository) UpdateIfStatus(ctx context.Context, aggregate *job.Job, expected job.Status) error {
	matched, err := r.updateWhere(ctx, aggregate, bson.M{"status": expected.String()})
	if err != nil {
		return err
	}
	if !matched {
		return errs.NewConflictError("job", aggregate.ID().String())
	}
	return nil
}

func (r *MongoJobRepository) AssignIfUnassigned(ctx context.Context, aggregate *job.Job, requirePublic bool) error {
	precondition := bson.M{
		"job_type":           job.Original.String(),
		"status":             job.Pending.String(),
		"assigned_driver_id": nil,
	}
	if requirePublic {
		precondition["is_public"] = true
	}

	matched, err := r.updateWhere(ctx, aggregate, precondition)
	if err != nil {
		return err
	}
	if !matched {
		return errs.NewConflictError("job", aggregate.ID().String())
	}
	return nil
}

// ReleaseAssignment puts previous back only while the document is still an
// Assigned original held by driverID. The document is not tracked: the
// release records no event.
func (r *MongoJobRepository) ReleaseAssignment(ctx context.Context, previous *job.Job, driverID kernel.UUID) (bool, error) {
	if err := previous.Validate(); err != nil {
		return false, err
	}

	doc := fromDomain(previous)
	result, err := r.jobs.UpdateOne(ctx,
		bson.M{
			"_id":                doc.ID,
			"job_type":           job.Original.String(),
			"status":             job.Assigned.String(),
			"assigned_driver_id": driverID.String(),
		},
		bson.M{"$set": doc.mutable()},
	)
	if err != nil {
		return false, errs.NewStoreFailureError("release job", err)
	}
	return result.MatchedCount > 0, nil
}

// updateWhere sets the aggregate's mutable fields on its document if the
// document also matches precondition.
func (r *MongoJobRepository) updateWhere(ctx context.Context, aggregate *job.Job, precondition bson.M) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	doc := fromDomain(aggregate)
	filter := bson.M{"_id": doc.ID}
	for k, v := range precondition {
		filter[k] = v
	}

	result, err := r.jobs.UpdateOne(ctx, filter, bson.M{"$set": doc.mutable()})
	if err != nil {
		return false, errs.NewStoreFailureError("update job", err)
	}
	if result.MatchedCount == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(aggregate)
	return true, nil
}

func (r *MongoJobRepository) SupersedeSiblings(ctx context.Context, originalID kernel.UUID, winner job.OfferID) (int64, error) {
	result, err := r.jobs.UpdateMany(ctx,
		bson.M{
			"original_job_id": originalID.String(),
			"offer_id":        bson.M{"$ne": winner.String()},
			"status":          bson.M{"$in": statusNames(job.PendingOfferStatuses())},
		},
		r.supersede(),
	)
	if err != nil {
		return 0, errs.NewStoreFailureError("supersede siblings", err)
	}
	return result.ModifiedCount, nil
}

func (r *MongoJobRepository) supersede() bson.M {
	return bson.M{"$set": bson.M{
		"status":          job.Superseded.String(),
		"response_status": string(job.ResponseSuperseded),
		"updated_at":      r.now(),
	}}
}

func (r *MongoJobRepository) DeleteOfferIfStatus(ctx context.Context, offer *job.Job, statuses ...job.Status) (bool, error) {
	if err := offer.Validate(); err != nil {
		return false, err
	}
	if len(statuses) == 0 {
		return false, nil
	}

	result, err := r.jobs.DeleteOne(ctx, bson.M{
		"_id":      offer.ID().String(),
		"job_type": bson.M{"$in": offerTypeNames()},
		"status":   bson.M{"$in": statusNames(statuses)},
	})
	if err != nil {
		return false, errs.NewStoreFailureError("delete offer", err)
	}
	if result.DeletedCount == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(offer)
	return true, nil
}

func (r *MongoJobRepository) Delete(ctx context.Context, aggregate *job.Job, statuses ...job.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	filter := bson.M{"_id": aggregate.ID().String()}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statusNames(statuses)}
	}

	result, err := r.jobs.DeleteOne(ctx, filter)
	if err != nil {
		return errs.NewStoreFailureError("delete job", err)
	}
	if result.DeletedCount == 0 {
		if len(statuses) > 0 {
			return errs.NewConflictError("job", aggregate.ID().String())
		}
		return errs.NewObjectNotFoundError("job", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *MongoJobRepository) ListLiveApplications(ctx context.Context, originalID kernel.UUID, driverID kernel.UUID) ([]*job.Job, error) {
	cursor, err := r.jobs.Find(ctx,
		bson.M{
			"original_job_id":    originalID.String(),
			"assigned_driver_id": driverID.String(),
			"job_type":           job.Application.String(),
			"status":             bson.M{"$in": statusNames(job.PendingOfferStatuses())},
		},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, errs.NewStoreFailureError("list applications", err)
	}

	var docs []jobDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, errs.NewStoreFailureError("list applications", err)
	}

	jobs := make([]*job.Job, 0, len(docs))
	for _, doc := range docs {
		j, mapErr := doc.toDomain()
		if mapErr != nil {
			return nil, mapErr
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// SupersedeStaleOffers finds the originals that still have live offers,
// keeps those that are Pending and unassigned, and supersedes the live
// offers of all others. An Original never returns to Pending, so the two
// reads cannot revive an offer that should stay live.
func (r *MongoJobRepository) SupersedeStaleOffers(ctx context.Context) (int64, error) {
	live := bson.M{
		"job_type": bson.M{"$in": offerTypeNames()},
		"status":   bson.M{"$in": statusNames(job.PendingOfferStatuses())},
	}

	raw, err := r.jobs.Distinct(ctx, "original_job_id", live)
	if err != nil {
		return 0, errs.NewStoreFailureError("supersede stale offers", err)
	}
	originalIDs := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			originalIDs = append(originalIDs, s)
		}
	}
	if len(originalIDs) == 0 {
		return 0, nil
	}

	cursor, err := r.jobs.Find(ctx,
		bson.M{
			"_id":                bson.M{"$in": originalIDs},
			"status":             job.Pending.String(),
			"assigned_driver_id": nil,
		},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return 0, errs.NewStoreFailureError("supersede stale offers", err)
	}
	var open []struct {
		ID string `bson:"_id"`
	}
	if err = cursor.All(ctx, &open); err != nil {
		return 0, errs.NewStoreFailureError("supersede stale offers", err)
	}

	healthy := make(map[string]struct{}, len(open))
	for _, o := range open {
		healthy[o.ID] = struct{}{}
	}
	stale := make([]string, 0, len(originalIDs))
	for _, id := range originalIDs {
		if _, ok := healthy[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	live["original_job_id"] = bson.M{"$in": stale}
	result, err := r.jobs.UpdateMany(ctx, live, r.supersede())
	if err != nil {
		return 0, errs.NewStoreFailureError("supersede stale offers", err)
	}
	return result.ModifiedCount, nil
}
