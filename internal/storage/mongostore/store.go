// Package mongostore implements the document store on MongoDB. The driver's
// client pools connections internally, so a single Store is shared by all
// requests for the lifetime of the process.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/fesdmit/portal/internal/storage"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client against url and selects the named database. The
// connection is verified with a ping so a bad URL fails here rather than on
// the first request.
func Connect(ctx context.Context, url, database string) (*Store, error) {
	if url == "" || database == "" {
		return nil, storage.ErrUnavailable
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// Insert persists doc and returns the assigned ObjectID in hex form. The
// created_at and updated_at fields are stamped in UTC when absent so list
// endpoints always have a timestamp to render.
func (s *Store) Insert(ctx context.Context, collection string, doc storage.Document) (string, error) {
	if s == nil || s.db == nil {
		return "", storage.ErrUnavailable
	}

	record := make(bson.M, len(doc)+2)
	for k, v := range doc {
		record[k] = v
	}
	now := time.Now().UTC()
	if _, ok := record["created_at"]; !ok {
		record["created_at"] = now
	}
	if _, ok := record["updated_at"]; !ok {
		record["updated_at"] = now
	}

	res, err := s.db.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		return "", &storage.PersistenceError{Op: "insert", Collection: collection, Err: err}
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", res.InsertedID), nil
	}
	return oid.Hex(), nil
}

// Find returns all matching records in natural storage order.
func (s *Store) Find(ctx context.Context, collection string, filter storage.Filter) ([]storage.Document, error) {
	if s == nil || s.db == nil {
		return nil, storage.ErrUnavailable
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filterToBSON(filter))
	if err != nil {
		return nil, &storage.PersistenceError{Op: "find", Collection: collection, Err: err}
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, &storage.PersistenceError{Op: "find", Collection: collection, Err: err}
	}

	docs := make([]storage.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, storage.Document(row))
	}
	return docs, nil
}

// Ping reports whether the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return storage.ErrUnavailable
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// Collections lists collection names in the selected database.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, storage.ErrUnavailable
	}
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, &storage.PersistenceError{Op: "list collections", Collection: "", Err: err}
	}
	return names, nil
}

// Close tears down the client. Only called on process shutdown.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// filterToBSON translates the tagged filter expression into the driver's
// native query form. Contains maps to $in with a single-element set, matching
// exact membership in a list-valued field.
func filterToBSON(f storage.Filter) bson.M {
	switch f.Kind {
	case storage.KindEquals:
		return bson.M{f.Field: f.Value}
	case storage.KindContains:
		return bson.M{f.Field: bson.M{"$in": []any{f.Value}}}
	case storage.KindAnd:
		merged := bson.M{}
		for _, p := range f.Parts {
			for k, v := range filterToBSON(p) {
				merged[k] = v
			}
		}
		return merged
	default:
		return bson.M{}
	}
}
