package db

import (
	"context"
	"errors"
	"fmt"

	"prepwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InterviewRepository reads and writes the interviews collection.
type InterviewRepository struct {
	coll *mongo.Collection
}

func NewInterviewRepository(database *mongo.Database) *InterviewRepository {
	return &InterviewRepository{coll: database.Collection(InterviewsCollection)}
}

func (r *InterviewRepository) Insert(ctx context.Context, interview *models.Interview) error {
	if _, err := r.coll.InsertOne(ctx, interview); err != nil {
		return fmt.Errorf("failed to insert interview: %w", err)
	}
	return nil
}

func (r *InterviewRepository) FindByID(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&interview)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find interview %s: %w", id, err)
	}
	return &interview, nil
}

// FindLatest lists finalized interviews owned by anyone except excludeUserID,
// newest first. Other users' resume and job description text is left out.
func (r *InterviewRepository) FindLatest(ctx context.Context, excludeUserID string, limit int) ([]models.Interview, error) {
	return r.find(ctx, latestFilter(excludeUserID), latestFindOptions(limit))
}

func latestFindOptions(limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"resume": 0, "jobDescription": 0})
}

// FindByUser lists a user's interviews newest first, optionally only the ones
// generated from a resume.
func (r *InterviewRepository) FindByUser(ctx context.Context, userID string, customOnly bool) ([]models.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, userFilter(userID, customOnly), opts)
}

func (r *InterviewRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Interview, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query interviews: %w", err)
	}
	defer cursor.Close(ctx)

	interviews := []models.Interview{}
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, fmt.Errorf("failed to decode interviews: %w", err)
	}
	return interviews, nil
}

func latestFilter(excludeUserID string) bson.M {
	return bson.M{
		"finalized": true,
		"userId":    bson.M{"$ne": excludeUserID},
	}
}

func userFilter(userID string, customOnly bool) bson.M {
	filter := bson.M{"userId": userID}
	if customOnly {
		filter["isCustom"] = true
	}
	return filter
}
