package schoolRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourbook/database"
	"tourbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no school matches the query.
var ErrNotFound = errors.New("school not found")

// MongoSchoolRepo implements SchoolRepository using MongoDB.
type MongoSchoolRepo struct {
	coll *mongo.Collection
}

// NewMongoSchoolRepo creates a new instance of SchoolRepository using MongoDB.
func NewMongoSchoolRepo() SchoolRepository {
	repo := &MongoSchoolRepo{coll: database.Collection("schools")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new school document.
func (r *MongoSchoolRepo) Create(school *models.School) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	school.CreatedAt = now
	school.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, school); err != nil {
		return fmt.Errorf("failed to create school: %w", err)
	}
	return nil
}

// Update modifies an existing school document.
func (r *MongoSchoolRepo) Update(school *models.School) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	school.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": school.ID}, bson.M{"$set": school})
	if err != nil {
		return fmt.Errorf("failed to update school with id %s: %w", school.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a school by its unique ID.
func (r *MongoSchoolRepo) GetByID(id string) (*models.School, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var school models.School
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&school); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch school with id %s: %w", id, err)
	}
	return &school, nil
}

// GetByAdminID retrieves the school owned by the given school_admin account.
func (r *MongoSchoolRepo) GetByAdminID(adminID string) (*models.School, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var school models.School
	if err := r.coll.FindOne(ctx, bson.M{"adminId": adminID}).Decode(&school); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch school for admin %s: %w", adminID, err)
	}
	return &school, nil
}

// GetAll retrieves every school, verified or not.
func (r *MongoSchoolRepo) GetAll() ([]models.School, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve schools: %w", err)
	}
	defer cursor.Close(ctx)

	var schools []models.School
	if err := cursor.All(ctx, &schools); err != nil {
		return nil, fmt.Errorf("failed to decode schools: %w", err)
	}
	return schools, nil
}

// ListVerified retrieves verified schools matching the filter, sorted by name.
func (r *MongoSchoolRepo) ListVerified(filter SchoolFilter) ([]models.School, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"verified": true}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": primitive.Regex{Pattern: filter.Name, Options: "i"}}
	}
	if filter.FeeMin > 0 {
		query["feeRange.max"] = bson.M{"$gte": filter.FeeMin}
	}
	if filter.FeeMax > 0 {
		query["feeRange.min"] = bson.M{"$lte": filter.FeeMax}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list verified schools: %w", err)
	}
	defer cursor.Close(ctx)

	var schools []models.School
	if err := cursor.All(ctx, &schools); err != nil {
		return nil, fmt.Errorf("failed to decode schools: %w", err)
	}
	return schools, nil
}

// SetVerified toggles the verification flag on a school.
func (r *MongoSchoolRepo) SetVerified(id string, verified bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"verified": verified, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set verified flag for school %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByVerification groups schools by verification status.
func (r *MongoSchoolRepo) CountByVerification() ([]models.StatusCount, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$cond", Value: bson.A{"$verified", "verified", "unverified"}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate schools by verification: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []models.StatusCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode verification counts: %w", err)
	}
	return counts, nil
}
