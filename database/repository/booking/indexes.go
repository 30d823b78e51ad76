package bookingRepo

import (
	"fmt"
	"time"

	"tourbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries.
// The partial unique index on (parentId, tourId) is scoped to active
// statuses: it is the storage-level guarantee behind the
// one-active-booking-per-parent-per-tour rule.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	activeFilter := bson.D{{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{
		models.BookingPending, models.BookingConfirmed,
	}}}}}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "parentId", Value: 1}, {Key: "tourId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(activeFilter),
		},
		{Keys: bson.D{{Key: "schoolId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "tourDate", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
