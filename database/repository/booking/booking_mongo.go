package bookingRepo

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

// ErrNotFound is returned when no booking matches the query.
var ErrNotFound = errors.New("booking not found")

// ErrNoCapacity is returned when the tour cannot absorb the requested
// guests (insufficient spots or tour inactive).
var ErrNoCapacity = errors.New("not enough available spots on this tour")

// ErrDuplicateBooking is returned when the parent already holds an
// active booking on the tour.
var ErrDuplicateBooking = errors.New("an active booking for this tour already exists")

// ErrInvalidState is returned when a guarded status update finds the
// booking in a different state than expected.
var ErrInvalidState = errors.New("booking is not in the expected state")

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll     *mongo.Collection
	tourColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{
		coll:     database.Collection("bookings"),
		tourColl: database.Collection("tours"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// ListByParent retrieves a parent's bookings, newest first.
func (r *MongoBookingRepo) ListByParent(parentID string) ([]models.Booking, error) {
	return r.list(bson.M{"parentId": parentID})
}

// ListBySchool retrieves all bookings made against a school's tours.
func (r *MongoBookingRepo) ListBySchool(schoolID string) ([]models.Booking, error) {
	return r.list(bson.M{"schoolId": schoolID})
}

func (r *MongoBookingRepo) list(query bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// TransitionStatus performs a guarded status update. The filter on the
// prior status makes concurrent transitions lose cleanly instead of
// double-applying. Transitions into cancelled must go through
// CancelWithRelease so capacity is returned to the tour.
func (r *MongoBookingRepo) TransitionStatus(bookingID string, from, to models.BookingStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to transition booking %s: %w", bookingID, err)
	}
	if result.MatchedCount == 0 {
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": bookingID})
		if err != nil {
			return fmt.Errorf("failed to check booking %s after transition miss: %w", bookingID, err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInvalidState
	}
	return nil
}

// DeleteCancelled hard-removes a booking, but only when it belongs to
// the parent and has already been cancelled.
func (r *MongoBookingRepo) DeleteCancelled(bookingID, parentID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID, "parentId": parentID, "status": models.BookingCancelled}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", bookingID, err)
	}
	if result.DeletedCount == 0 {
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": bookingID, "parentId": parentID})
		if err != nil {
			return fmt.Errorf("failed to check booking %s after delete miss: %w", bookingID, err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInvalidState
	}
	return nil
}

// CompleteOverdue promotes every confirmed booking whose tour date has
// passed into completed. A single UpdateMany keeps the sweep idempotent:
// already-completed bookings never match again.
func (r *MongoBookingRepo) CompleteOverdue(beforeDate string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":   models.BookingConfirmed,
		"tourDate": bson.M{"$lt": beforeDate},
	}
	update := bson.M{"$set": bson.M{"status": models.BookingCompleted, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete overdue bookings: %w", err)
	}
	return result.ModifiedCount, nil
}

// CountByStatus groups bookings by status, optionally scoped to one school.
func (r *MongoBookingRepo) CountByStatus(schoolID string) ([]models.StatusCount, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	match := bson.D{}
	if schoolID != "" {
		match = bson.D{{Key: "schoolId", Value: schoolID}}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings by status: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []models.StatusCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode status counts: %w", err)
	}
	return counts, nil
}

// TopSchools ranks schools by total bookings received, joined against
// the schools collection for display names.
func (r *MongoBookingRepo) TopSchools(limit int) ([]models.SchoolBookingVolume, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$schoolId"},
			{Key: "bookings", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "bookings", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "schools"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "id"},
			{Key: "as", Value: "school"},
		}}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$school.name"}}},
		}}},
		bson.D{{Key: "$unset", Value: "school"}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top schools: %w", err)
	}
	defer cursor.Close(ctx)

	var volumes []models.SchoolBookingVolume
	if err := cursor.All(ctx, &volumes); err != nil {
		return nil, fmt.Errorf("failed to decode school volumes: %w", err)
	}
	return volumes, nil
}
