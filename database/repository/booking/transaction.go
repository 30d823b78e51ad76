package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"tourbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithCapacity inserts the booking and claims tour capacity as
// one transaction. The capacity claim is a conditional $inc whose
// filter requires maxCapacity - currentBookings >= numberOfGuests on an
// active tour; when the filter misses, the transaction aborts and the
// booking insert is rolled back. Two concurrent creations can therefore
// never oversell the tour.
func (r *MongoBookingRepo) CreateWithCapacity(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	booking.Status = models.BookingPending
	booking.CreatedAt = now
	booking.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicateBooking
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{
			"id":       booking.TourID,
			"isActive": true,
			"$expr": bson.M{
				"$gte": bson.A{
					bson.M{"$subtract": bson.A{"$maxCapacity", "$currentBookings"}},
					booking.NumberOfGuests,
				},
			},
		}
		update := bson.M{
			"$inc": bson.M{"currentBookings": booking.NumberOfGuests},
			"$set": bson.M{"updatedAt": now},
		}

		res, err := r.tourColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("claim tour capacity failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNoCapacity
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}

// CancelWithRelease marks the booking cancelled and returns its guests
// to the tour's capacity pool in one transaction. The status filter
// only matches active bookings, so a concurrent cancel or admin
// transition makes this a no-op failure rather than a double release.
func (r *MongoBookingRepo) CancelWithRelease(ctx context.Context, bookingID string, cancelledAt time.Time) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		var booking models.Booking
		err := r.coll.FindOne(sc, bson.M{"id": bookingID}).Decode(&booking)
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("fetch booking failed: %w", err)
		}
		if !booking.Status.IsActive() {
			return ErrInvalidState
		}

		filter := bson.M{"id": bookingID, "status": booking.Status}
		update := bson.M{"$set": bson.M{
			"status":      models.BookingCancelled,
			"cancelledAt": cancelledAt,
			"updatedAt":   cancelledAt,
		}}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("cancel booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrInvalidState
		}

		tourFilter := bson.M{
			"id":              booking.TourID,
			"currentBookings": bson.M{"$gte": booking.NumberOfGuests},
		}
		tourUpdate := bson.M{
			"$inc": bson.M{"currentBookings": -booking.NumberOfGuests},
			"$set": bson.M{"updatedAt": cancelledAt},
		}
		if _, err := r.tourColl.UpdateOne(sc, tourFilter, tourUpdate); err != nil {
			return fmt.Errorf("release tour capacity failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
