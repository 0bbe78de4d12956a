// Package mongo backs the durable snapshot store with MongoDB; every storage
// key becomes one document in a snapshots collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/admindesk/directory-system/internal/core/domain"
)

const (
	defaultTimeout      = 10 * time.Second
	snapshotsCollection = "snapshots"
)

// Config captures the minimal settings required to establish a MongoDB
// connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// SnapshotStore implements ports.SnapshotStore over a single collection keyed
// by the storage key.
type SnapshotStore struct {
	coll *mongo.Collection
}

func NewSnapshotStore(db *mongo.Database) *SnapshotStore {
	return &SnapshotStore{coll: db.Collection(snapshotsCollection)}
}

type snapshotDoc struct {
	Key  string `bson:"_id"`
	Data []byte `bson:"data"`
}

func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc snapshotDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSnapshotMissing
		}
		return nil, fmt.Errorf("mongo find %s: %w", key, err)
	}
	return doc.Data, nil
}

func (s *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		snapshotDoc{Key: key, Data: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo replace %s: %w", key, err)
	}
	return nil
}

func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
