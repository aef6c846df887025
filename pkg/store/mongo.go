package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sitegrid/sitegrid/pkg/observability"
)

// MongoStore is a MongoDB-backed diagram store for server deployments.
// Records live in a single collection keyed by diagram ID.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		col:    client.Database(database).Collection(collection),
	}, nil
}

// Get retrieves a diagram by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	start := time.Now()

	var rec Record
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnStoreGet(ctx, id, false, time.Since(start))
		return nil, ErrNotFound
	}
	if err != nil {
		observability.Store().OnStoreError(ctx, "get", id, err)
		return nil, fmt.Errorf("find diagram %s: %w", id, err)
	}

	observability.Store().OnStoreGet(ctx, id, true, time.Since(start))
	return &rec, nil
}

// Put stores a diagram, replacing any existing record with the same ID.
func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	start := time.Now()

	var created time.Time
	var existing Record
	err := s.col.FindOne(ctx, bson.M{"_id": rec.ID}).Decode(&existing)
	if err == nil {
		created = existing.CreatedAt
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnStoreError(ctx, "put", rec.ID, err)
		return fmt.Errorf("find diagram %s: %w", rec.ID, err)
	}
	stamp(rec, created)

	_, err = s.col.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec,
		options.Replace().SetUpsert(true))
	if err != nil {
		observability.Store().OnStoreError(ctx, "put", rec.ID, err)
		return fmt.Errorf("store diagram %s: %w", rec.ID, err)
	}

	observability.Store().OnStorePut(ctx, rec.ID, time.Since(start))
	return nil
}

// Delete removes a diagram.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		observability.Store().OnStoreError(ctx, "delete", id, err)
		return fmt.Errorf("delete diagram %s: %w", id, err)
	}
	return nil
}

// List returns all stored diagram IDs, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cursor, err := s.col.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.M{"_id": 1}))
	if err != nil {
		observability.Store().OnStoreError(ctx, "list", "", err)
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var row struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode diagram id: %w", err)
		}
		ids = append(ids, row.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	return ids, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
