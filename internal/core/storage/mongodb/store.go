// Package mongodb implements storage.EventStore on MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	"github.com/gridwatch-lab/outage-events/internal/core/storage"
)

const disconnectTimeout = 10 * time.Second

// eventDocument is the persisted layout of one outage event.
// BSON datetimes keep millisecond precision.
type eventDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	ControllerID string        `bson:"controller_id"`
	OutageType   string        `bson:"outage_type"`
	StartTime    time.Time     `bson:"start_time"`
	EndTime      time.Time     `bson:"end_time"`
}

func (d *eventDocument) toEvent() *v1.OutageEvent {
	return &v1.OutageEvent{
		ID:           d.ID.Hex(),
		ControllerID: d.ControllerID,
		OutageType:   v1.OutageType(d.OutageType),
		StartTime:    v1.NewTimestamp(d.StartTime),
		EndTime:      v1.NewTimestamp(d.EndTime),
	}
}

// Store implements storage.EventStore on a MongoDB collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect opens a client, verifies it with a ping, and ensures indexes exist
// on database.collection.
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	if collection == "" {
		collection = DefaultCollection
	}
	coll := client.Database(database).Collection(collection)

	if err := CreateIndexes(ctx, coll); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("[Mongo] Connected", "database", database, "collection", collection)

	return &Store{client: client, collection: coll}, nil
}

// NewStore wraps an existing collection. The caller keeps ownership of the client.
func NewStore(collection *mongo.Collection) *Store {
	return &Store{collection: collection}
}

func (s *Store) FindLatest(ctx context.Context, controllerID string, outageType v1.OutageType) (*v1.OutageEvent, error) {
	filter := bson.M{
		"controller_id": controllerID,
		"outage_type":   string(outageType),
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "end_time", Value: -1}})

	var doc eventDocument
	err := s.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, handleMongoError(err, "find latest event")
	}
	return doc.toEvent(), nil
}

func (s *Store) ExtendEnd(ctx context.Context, id string, end time.Time) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// Not an id this store could have issued.
		return fmt.Errorf("extend event %s: %w", id, storage.ErrNotFound)
	}

	update := bson.M{"$set": bson.M{"end_time": v1.Naive(end)}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return handleMongoError(err, "extend event end")
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("extend event %s: %w", id, storage.ErrNotFound)
	}

	slog.Debug("[Mongo] Extended event", "event_id", id, "end_time", end)
	return nil
}

func (s *Store) Insert(ctx context.Context, event *v1.OutageEvent) (string, error) {
	doc := eventDocument{
		ID:           bson.NewObjectID(),
		ControllerID: event.ControllerID,
		OutageType:   string(event.OutageType),
		StartTime:    event.StartTime.Time,
		EndTime:      event.EndTime.Time,
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return "", handleMongoError(err, "insert event")
	}

	event.ID = doc.ID.Hex()

	slog.Debug("[Mongo] Inserted event",
		"event_id", event.ID,
		"controller_id", event.ControllerID,
		"outage_type", event.OutageType)
	return event.ID, nil
}

// Query returns matching events in natural (insertion) order.
func (s *Store) Query(ctx context.Context, filter storage.EventFilter) ([]*v1.OutageEvent, error) {
	opts := options.Find()
	if filter.Skip > 0 {
		opts.SetSkip(int64(filter.Skip))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, handleMongoError(err, "query events")
	}
	defer cursor.Close(ctx)

	events := make([]*v1.OutageEvent, 0)
	for cursor.Next(ctx) {
		var doc eventDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode outage event: %w", err)
		}
		events = append(events, doc.toEvent())
	}

	if err := cursor.Err(); err != nil {
		return nil, handleMongoError(err, "iterate events")
	}

	return events, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return s.collection.Database().Client().Ping(ctx, nil)
	}
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client opened by Connect. No-op for NewStore.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongodb: %w", err)
	}
	slog.Info("[Mongo] Disconnected")
	return nil
}

// buildFilter translates an EventFilter into a query document.
func buildFilter(f storage.EventFilter) bson.M {
	filter := bson.M{}
	if f.ControllerID != "" {
		filter["controller_id"] = f.ControllerID
	}
	if f.OutageType != "" {
		filter["outage_type"] = string(f.OutageType)
	}
	if !f.StartFrom.IsZero() {
		filter["start_time"] = bson.M{"$gte": f.StartFrom}
	}
	if !f.EndUntil.IsZero() {
		filter["end_time"] = bson.M{"$lte": f.EndUntil}
	}
	return filter
}

// handleMongoError wraps a driver error as a retryable store failure.
func handleMongoError(err error, op string) error {
	return fmt.Errorf("failed to %s: %w: %w", op, storage.ErrUnavailable, err)
}
