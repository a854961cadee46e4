// Package mongostore keeps jobs, users and vehicles in MongoDB.
//
// It is the document-store alternative to the postgres adapters. Every
// conditional write is a single-document update whose filter carries the
// precondition, which MongoDB applies atomically. There are no multi-document
// transactions: a unit of work only batches event publication.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	JobsCollection     = "jobs"
	UsersCollection    = "users"
	VehiclesCollection = "vehicles"
)

// Connect opens a client and checks the primary is reachable.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repository depends on. offer_id is
// unique among documents that carry one; Originals leave it unset.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	jobs := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "offer_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_offer_id").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"offer_id": bson.M{"$type": "string"}}),
		},
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_by_dispatcher_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_driver_id", Value: 1}}},
		{Keys: bson.D{{Key: "original_job_id", Value: 1}, {Key: "job_type", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection(JobsCollection).Indexes().CreateMany(ctx, jobs); err != nil {
		return fmt.Errorf("failed to create job indexes: %w", err)
	}

	vehicles := mongo.IndexModel{
		Keys:    bson.D{{Key: "license_plate", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(VehiclesCollection).Indexes().CreateOne(ctx, vehicles); err != nil {
		return fmt.Errorf("failed to create vehicle indexes: %w", err)
	}
	return nil
}
