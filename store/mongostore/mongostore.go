// Package mongostore implements store.Backend on a MongoDB collection. Each
// record is one document {_id: key, data: <binary>, updated_at: <date>}.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reoring/tasl/store"
)

type record struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Backend stores records in a single collection.
type Backend struct {
	coll *mongo.Collection
}

// New wraps coll.
func New(coll *mongo.Collection) *Backend {
	return &Backend{coll: coll}
}

// Connect opens a client for uri, pings it and returns a backend over
// database.collection. The caller disconnects the returned client.
func Connect(ctx context.Context, uri, database, collection string) (*Backend, *mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return New(client.Database(database).Collection(collection)), client, nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	var rec record
	err := b.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	return rec.Data, nil
}

func (b *Backend) Put(ctx context.Context, key string, data []byte) error {
	rec := record{ID: key, Data: data, UpdatedAt: time.Now().UTC()}
	_, err := b.coll.ReplaceOne(ctx, bson.M{"_id": key}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace: %w", err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	res, err := b.coll.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Ensure Backend implements store.Backend.
var _ store.Backend = (*Backend)(nil)
