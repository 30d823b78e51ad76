package schoolRepo

import (
	"errors"
	"fmt"
	"time"

	"tourbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateRating is returned when the parent has already rated the school.
var ErrDuplicateRating = errors.New("parent has already rated this school")

// AddRating appends a rating and recomputes the category averages in
// one transaction. The averages come from models.ComputeRatingAverages
// over the snapshot's ratings plus the new one; the push itself is
// still guarded by "$ne" on ratings.parentId so a concurrent duplicate
// from the same parent loses instead of double-counting.
func (r *MongoSchoolRepo) AddRating(schoolID string, rating models.SchoolRating) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	rating.CreatedAt = time.Now()

	txnFn := func(sc mongo.SessionContext) error {
		var school models.School
		proj := options.FindOne().SetProjection(bson.M{"id": 1, "ratings": 1})
		err := r.coll.FindOne(sc, bson.M{"id": schoolID}, proj).Decode(&school)
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("fetch school failed: %w", err)
		}
		for _, existing := range school.Ratings {
			if existing.ParentID == rating.ParentID {
				return ErrDuplicateRating
			}
		}

		averages := models.ComputeRatingAverages(append(school.Ratings, rating))

		filter := bson.M{
			"id":               schoolID,
			"ratings.parentId": bson.M{"$ne": rating.ParentID},
		}
		update := bson.M{
			"$push": bson.M{"ratings": rating},
			"$set": bson.M{
				"averages":     averages,
				"totalRatings": len(school.Ratings) + 1,
				"updatedAt":    rating.CreatedAt,
			},
		}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("failed to add rating to school %s: %w", schoolID, err)
		}
		if res.MatchedCount == 0 {
			return ErrDuplicateRating
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
