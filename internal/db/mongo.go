package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	AdminsCollection         = "admins"
	BookingsCollection       = "bookings"
	MessagesCollection       = "messages"
	SafariPackagesCollection = "safari_packages"
)

type Collections struct {
	Admins         *mongo.Collection
	Bookings       *mongo.Collection
	Messages       *mongo.Collection
	SafariPackages *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, errors.Wrap(err, "mongo connect")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, errors.Wrap(err, "mongo ping")
	}

	return client, Bind(client.Database(dbName)), nil
}

func Bind(db *mongo.Database) *Collections {
	return &Collections{
		Admins:         db.Collection(AdminsCollection),
		Bookings:       db.Collection(BookingsCollection),
		Messages:       db.Collection(MessagesCollection),
		SafariPackages: db.Collection(SafariPackagesCollection),
	}
}

// Indexes lists the indexes each collection needs, keyed by collection name.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		AdminsCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		BookingsCollection: {
			{Keys: bson.D{{Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		MessagesCollection: {
			{Keys: bson.D{{Key: "isRead", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		SafariPackagesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "isAvailable", Value: 1}}},
			{Keys: bson.D{{Key: "isPopular", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
		},
	}
}

func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	byName := map[string]*mongo.Collection{
		AdminsCollection:         cols.Admins,
		BookingsCollection:       cols.Bookings,
		MessagesCollection:       cols.Messages,
		SafariPackagesCollection: cols.SafariPackages,
	}

	for name, models := range Indexes() {
		if _, err := byName[name].Indexes().CreateMany(indexTimeout, models); err != nil {
			return errors.Wrapf(err, "create indexes on %s", name)
		}
	}
	return nil
}
