package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/config"
)

// Collection names of the document store.
const (
	TeachersCollection = "maestros"
	StudentsCollection = "alumnos"
	CountersCollection = "counters"
)

// Mongo wraps the document-store client, its database handle and the
// per-call deadline every gateway operation must respect.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
	timeout  time.Duration
}

// NewMongo connects to the document store and verifies the connection.
func NewMongo(cfg *config.Config) (*Mongo, error) {
	timeout := cfg.MongoTimeout()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Mongo{
		Client:   client,
		Database: client.Database(cfg.Mongo.Database),
		timeout:  timeout,
	}, nil
}

// Collection returns a handle on a named collection.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

// Context bounds a gateway call with the configured deadline unless the
// parent already carries one.
func (m *Mongo) Context(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return parent, func() {}
	}
	return context.WithTimeout(parent, m.timeout)
}

// sequenceDoc mirrors one counter document.
type sequenceDoc struct {
	Seq int64 `bson:"seq"`
}

// NextSequence atomically increments and returns the named counter. This is
// the id source for student creation: concurrent callers always receive
// distinct values.
func (m *Mongo) NextSequence(ctx context.Context, name string) (int64, error) {
	ctx, cancel := m.Context(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc sequenceDoc
	err := m.Collection(CountersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return doc.Seq, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	ctx, cancel := m.Context(ctx)
	defer cancel()
	return m.Client.Disconnect(ctx)
}
