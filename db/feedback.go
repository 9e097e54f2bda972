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

// FeedbackRepository reads and writes the feedback collection.
type FeedbackRepository struct {
	coll *mongo.Collection
}

func NewFeedbackRepository(database *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{coll: database.Collection(FeedbackCollection)}
}

// Save writes feedback under its id, replacing any document already there.
func (r *FeedbackRepository) Save(ctx context.Context, feedback *models.Feedback) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": feedback.ID}, feedback, opts); err != nil {
		return fmt.Errorf("failed to save feedback %s: %w", feedback.ID, err)
	}
	return nil
}

// FindByInterview returns the newest feedback a user received for an interview.
func (r *FeedbackRepository) FindByInterview(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	filter := bson.M{"interviewId": interviewID, "userId": userID}
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})

	var feedback models.Feedback
	err := r.coll.FindOne(ctx, filter, opts).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find feedback for interview %s: %w", interviewID, err)
	}
	return &feedback, nil
}
