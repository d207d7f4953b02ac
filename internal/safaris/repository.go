package safaris

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item SafariPackage) error
	FindByID(ctx context.Context, id string) (SafariPackage, error)
	FindByName(ctx context.Context, name string) (SafariPackage, error)
	List(ctx context.Context, filter ListFilter) ([]SafariPackage, error)
	Update(ctx context.Context, id string, set bson.M) (SafariPackage, error)
	Delete(ctx context.Context, id string) (bool, error)
	ReplaceAll(ctx context.Context, items []SafariPackage) error
	EnsureByName(ctx context.Context, item SafariPackage) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item SafariPackage) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (SafariPackage, error) {
	var item SafariPackage
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return SafariPackage{}, err
	}
	return item, nil
}

func (r *MongoRepository) FindByName(ctx context.Context, name string) (SafariPackage, error) {
	var item SafariPackage
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&item); err != nil {
		return SafariPackage{}, err
	}
	return item, nil
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]SafariPackage, error) {
	query := bson.M{}
	if filter.Available != nil {
		query["isAvailable"] = *filter.Available
	}
	if filter.Popular != nil {
		query["isPopular"] = *filter.Popular
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "isPopular", Value: -1},
			{Key: "price", Value: 1},
		})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]SafariPackage, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (SafariPackage, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated SafariPackage
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return SafariPackage{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ReplaceAll empties the collection and inserts items. The two steps are not
// atomic.
func (r *MongoRepository) ReplaceAll(ctx context.Context, items []SafariPackage) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		docs = append(docs, item)
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *MongoRepository) EnsureByName(ctx context.Context, item SafariPackage) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"name": item.Name},
		bson.M{"$setOnInsert": item},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
