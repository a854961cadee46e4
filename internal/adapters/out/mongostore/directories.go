package mongostore

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID          string   `bson:"_id"`
	Roles       []string `bson:"roles"`
	CompanyID   *string  `bson:"company_id"`
	CompanyName string   `bson:"company_name"`
	Association string   `bson:"association"`
}

// MongoUserDirectory implements ports.UserDirectory.
type MongoUserDirectory struct {
	users *mongo.Collection
}

func NewMongoUserDirectory(db *mongo.Database) *MongoUserDirectory {
	return &MongoUserDirectory{users: db.Collection(UsersCollection)}
}

func (d *MongoUserDirectory) Get(ctx context.Context, id kernel.UUID) (actor.Actor, error) {
	if err := id.Validate(); err != nil {
		return actor.Actor{}, err
	}

	var doc userDocument
	if err := d.users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return actor.Actor{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return actor.Actor{}, errs.NewStoreFailureError("get user", err)
	}

	roles := make([]actor.Role, 0, len(doc.Roles))
	for _, name := range doc.Roles {
		role, err := actor.RoleFromString(name)
		if err != nil {
			return actor.Actor{}, err
		}
		roles = append(roles, role)
	}
	companyID, err := parseID(doc.CompanyID)
	if err != nil {
		return actor.Actor{}, err
	}
	return actor.NewActor(id, roles, companyID, doc.CompanyName, actor.Association(doc.Association))
}

// Save inserts or replaces the account.
func (d *MongoUserDirectory) Save(ctx context.Context, a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	roles := make([]string, 0, len(a.Roles()))
	for _, r := range a.Roles() {
		roles = append(roles, r.String())
	}
	companyID, companyName := a.Membership()
	doc := userDocument{
		ID:          a.ID().String(),
		Roles:       roles,
		CompanyID:   idString(companyID),
		CompanyName: companyName,
		Association: string(a.Association()),
	}

	_, err := d.users.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errs.NewStoreFailureError("save user", err)
	}
	return nil
}

type vehicleRecord struct {
	ID           string `bson:"_id"`
	LicensePlate string `bson:"license_plate"`
	Make         string `bson:"make"`
	Model        string `bson:"model"`
}

// MongoVehicleDirectory implements ports.VehicleDirectory.
type MongoVehicleDirectory struct {
	vehicles *mongo.Collection
}

func NewMongoVehicleDirectory(db *mongo.Database) *MongoVehicleDirectory {
	return &MongoVehicleDirectory{vehicles: db.Collection(VehiclesCollection)}
}

func (d *MongoVehicleDirectory) Get(ctx context.Context, id kernel.UUID) (job.VehicleSnapshot, error) {
	if err := id.Validate(); err != nil {
		return job.VehicleSnapshot{}, err
	}

	var doc vehicleRecord
	if err := d.vehicles.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return job.VehicleSnapshot{}, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return job.VehicleSnapshot{}, errs.NewStoreFailureError("get vehicle", err)
	}
	return job.NewVehicleSnapshot(doc.LicensePlate, doc.Make, doc.Model)
}

func (d *MongoVehicleDirectory) Save(ctx context.Context, id kernel.UUID, v job.VehicleSnapshot) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if v.IsZero() {
		return errs.NewValueIsRequiredError("vehicle")
	}

	doc := vehicleRecord{ID: id.String(), LicensePlate: v.LicensePlate, Make: v.Make, Model: v.Model}
	_, err := d.vehicles.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewConflictErrorWithCause("vehicle", id.String(), err)
		}
		return errs.NewStoreFailureError("save vehicle", err)
	}
	return nil
}
