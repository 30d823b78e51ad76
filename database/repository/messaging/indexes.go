package messagingRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries.
// The unique (parentId, schoolId) index guarantees one conversation per
// parent/school pair.
func (r *MongoMessagingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	convIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "parentId", Value: 1}, {Key: "schoolId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "schoolId", Value: 1}, {Key: "updatedAt", Value: -1}}},
	}
	if _, err := r.convColl.Indexes().CreateMany(ctx, convIndexes); err != nil {
		return fmt.Errorf("failed to create conversation indexes: %w", err)
	}

	msgIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	if _, err := r.msgColl.Indexes().CreateMany(ctx, msgIndexes); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}
