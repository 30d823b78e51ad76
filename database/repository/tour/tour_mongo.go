package tourRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourbook/database"
	"tourbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no tour matches the query.
var ErrNotFound = errors.New("tour not found")

// ErrCapacityConflict is returned when an edit or delete would conflict
// with existing bookings (shrinking maxCapacity below currentBookings,
// or deleting a tour that still has bookings).
var ErrCapacityConflict = errors.New("tour has conflicting bookings")

// MongoTourRepo implements TourRepository using MongoDB.
type MongoTourRepo struct {
	coll        *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoTourRepo creates a new instance of TourRepository using MongoDB.
func NewMongoTourRepo() TourRepository {
	repo := &MongoTourRepo{
		coll:        database.Collection("tours"),
		bookingColl: database.Collection("bookings"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new tour document with a zero booking counter.
func (r *MongoTourRepo) Create(tour *models.Tour) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	tour.CurrentBookings = 0
	tour.CreatedAt = now
	tour.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, tour); err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}
	return nil
}

// UpdateDetails modifies a tour's editable fields and keeps the date
// copied onto its active bookings in line with the tour, as one
// transaction. The filter refuses a maxCapacity below the current
// booking count so occupancy can never exceed capacity through an
// admin edit. schoolId and currentBookings are deliberately not part
// of the update.
func (r *MongoTourRepo) UpdateDetails(tour *models.Tour) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"id":              tour.ID,
			"currentBookings": bson.M{"$lte": tour.MaxCapacity},
		}
		update := bson.M{"$set": bson.M{
			"title":       tour.Title,
			"date":        tour.Date,
			"timeSlots":   tour.TimeSlots,
			"maxCapacity": tour.MaxCapacity,
			"tourType":    tour.TourType,
			"isActive":    tour.IsActive,
			"updatedAt":   now,
		}}

		result, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("failed to update tour %s: %w", tour.ID, err)
		}
		if result.MatchedCount == 0 {
			count, err := r.coll.CountDocuments(sc, bson.M{"id": tour.ID})
			if err != nil {
				return fmt.Errorf("failed to check tour %s after update miss: %w", tour.ID, err)
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrCapacityConflict
		}

		// Active bookings carry a copy of the tour date; a reschedule
		// must reach them or the cancellation window and the overdue
		// sweep would run against the old date.
		bookingFilter := bson.M{
			"tourId": tour.ID,
			"status": bson.M{"$in": bson.A{models.BookingPending, models.BookingConfirmed}},
		}
		bookingUpdate := bson.M{"$set": bson.M{"tourDate": tour.Date, "updatedAt": now}}
		if _, err := r.bookingColl.UpdateMany(sc, bookingFilter, bookingUpdate); err != nil {
			return fmt.Errorf("failed to sync booking dates for tour %s: %w", tour.ID, err)
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// Delete removes a tour, but only while it has no live bookings.
func (r *MongoTourRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "currentBookings": 0})
	if err != nil {
		return fmt.Errorf("failed to delete tour %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("failed to check tour %s after delete miss: %w", id, err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrCapacityConflict
	}
	return nil
}

// GetByID retrieves a tour by its unique ID.
func (r *MongoTourRepo) GetByID(id string) (*models.Tour, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var tour models.Tour
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tour); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch tour with id %s: %w", id, err)
	}
	return &tour, nil
}

// ListBySchool retrieves a school's tours, newest date first.
func (r *MongoTourRepo) ListBySchool(schoolID string, activeOnly bool) ([]models.Tour, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"schoolId": schoolID}
	if activeOnly {
		query["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours for school %s: %w", schoolID, err)
	}
	defer cursor.Close(ctx)

	var tours []models.Tour
	if err := cursor.All(ctx, &tours); err != nil {
		return nil, fmt.Errorf("failed to decode tours: %w", err)
	}
	return tours, nil
}

// CountUpcoming counts active tours dated on or after fromDate.
func (r *MongoTourRepo) CountUpcoming(fromDate string) (int, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"isActive": true,
		"date":     bson.M{"$gte": fromDate},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming tours: %w", err)
	}
	return int(count), nil
}

// UpcomingFillRates computes occupancy ratios for a school's upcoming
// active tours.
func (r *MongoTourRepo) UpcomingFillRates(schoolID, fromDate string) ([]models.TourFillRate, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "schoolId", Value: schoolID},
			{Key: "isActive", Value: true},
			{Key: "date", Value: bson.D{{Key: "$gte", Value: fromDate}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "id", Value: 1},
			{Key: "title", Value: 1},
			{Key: "date", Value: 1},
			{Key: "maxCapacity", Value: 1},
			{Key: "currentBookings", Value: 1},
			{Key: "fillRate", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$gt", Value: bson.A{"$maxCapacity", 0}}},
				bson.D{{Key: "$divide", Value: bson.A{"$currentBookings", "$maxCapacity"}}},
				0,
			}}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate fill rates for school %s: %w", schoolID, err)
	}
	defer cursor.Close(ctx)

	var rates []models.TourFillRate
	if err := cursor.All(ctx, &rates); err != nil {
		return nil, fmt.Errorf("failed to decode fill rates: %w", err)
	}
	return rates, nil
}
