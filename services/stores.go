package services

import (
	"context"

	"prepwise/db"
	"prepwise/models"
)

// ErrNotFound is returned when an interview or feedback document does not exist.
var ErrNotFound = db.ErrNotFound

type InterviewStore interface {
	Insert(ctx context.Context, interview *models.Interview) error
	FindByID(ctx context.Context, id string) (*models.Interview, error)
	FindLatest(ctx context.Context, excludeUserID string, limit int) ([]models.Interview, error)
	FindByUser(ctx context.Context, userID string, customOnly bool) ([]models.Interview, error)
}

type FeedbackStore interface {
	Save(ctx context.Context, feedback *models.Feedback) error
	FindByInterview(ctx context.Context, interviewID, userID string) (*models.Feedback, error)
}
