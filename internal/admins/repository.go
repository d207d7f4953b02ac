package admins

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, admin Admin) error
	FindByID(ctx context.Context, id string) (Admin, error)
	FindActiveByUsername(ctx context.Context, username string) (Admin, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// EnsureByUsername inserts admin unless the username already exists and
	// reports whether a document was created.
	EnsureByUsername(ctx context.Context, admin Admin) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, admin Admin) error {
	_, err := r.col.InsertOne(ctx, admin)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (Admin, error) {
	var admin Admin
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&admin); err != nil {
		return Admin{}, err
	}
	return admin, nil
}

func (r *MongoRepository) FindActiveByUsername(ctx context.Context, username string) (Admin, error) {
	var admin Admin
	if err := r.col.FindOne(ctx, bson.M{"username": username, "isActive": true}).Decode(&admin); err != nil {
		return Admin{}, err
	}
	return admin, nil
}

func (r *MongoRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"lastLogin": at}})
	return err
}

func (r *MongoRepository) EnsureByUsername(ctx context.Context, admin Admin) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"username": admin.Username},
		bson.M{"$setOnInsert": admin},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
