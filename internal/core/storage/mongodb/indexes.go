package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultCollection is the collection outage events live in.
const DefaultCollection = "outage_events"

// IndexDefinition describes a MongoDB index to be created.
type IndexDefinition struct {
	Name string
	Keys bson.D
}

// EventIndexes returns the index definitions for the outage events collection.
func EventIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// Latest-event lookup per grouping key, and key filters on the query path
			Name: "idx_outage_events_key_end",
			Keys: bson.D{
				{Key: "controller_id", Value: 1},
				{Key: "outage_type", Value: 1},
				{Key: "end_time", Value: -1},
			},
		},
		{
			// Time range filters without a key
			Name: "idx_outage_events_start",
			Keys: bson.D{{Key: "start_time", Value: 1}},
		},
	}
}

// CreateIndexes creates all indexes for coll.
// This function is idempotent - calling it multiple times is safe.
func CreateIndexes(ctx context.Context, coll *mongo.Collection) error {
	for _, idx := range EventIndexes() {
		model := mongo.IndexModel{
			Keys:    idx.Keys,
			Options: options.Index().SetName(idx.Name),
		}
		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index %s on collection %s: %w", idx.Name, coll.Name(), err)
		}
	}
	return nil
}
