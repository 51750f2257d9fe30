// Package mongostore implements store.Store on MongoDB.
//
// Documents are (de)serialized through the bson tags on the model structs.
// Collection names and indexes live in ensureIndexes so the whole schema is
// visible in one place.
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"photofolio/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ColUsers    = "users"
	ColPhotos   = "photos"
	ColAlbums   = "albums"
	ColProducts = "products"
	ColCarts    = "carts"
	ColOrders   = "orders"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

// NewStore connects to MongoDB, pings it, and creates the indexes.
//
// uri is a connection URI such as "mongodb://localhost:27017".
func NewStore(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}

	if err := s.ensureIndexes(ctx); err != nil {
		slog.Warn("mongostore: ensure indexes failed", "error", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		// users: both login identifiers are unique
		{ColUsers, bson.D{{Key: "username", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},

		// photos
		{ColPhotos, bson.D{{Key: "title", Value: 1}}, true},
		{ColPhotos, bson.D{{Key: "tags", Value: 1}}, false},
		{ColPhotos, bson.D{{Key: "is_featured", Value: 1}}, false},
		{ColPhotos, bson.D{{Key: "created_at", Value: -1}}, false},

		// albums
		{ColAlbums, bson.D{{Key: "title", Value: 1}}, true},
		{ColAlbums, bson.D{{Key: "created_at", Value: -1}}, false},

		// products
		{ColProducts, bson.D{{Key: "category", Value: 1}}, false},
		{ColProducts, bson.D{{Key: "display_flags.is_featured", Value: 1}}, false},
		{ColProducts, bson.D{{Key: "created_at", Value: -1}}, false},

		// carts: one per user
		{ColCarts, bson.D{{Key: "user_id", Value: 1}}, true},

		// orders
		{ColOrders, bson.D{{Key: "user_id", Value: 1}}, false},
		{ColOrders, bson.D{{Key: "status", Value: 1}}, false},
		{ColOrders, bson.D{{Key: "created_at", Value: -1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	return nil
}
