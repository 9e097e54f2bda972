package services

import (
	"context"
	"errors"
	"log"
	"time"

	"prepwise/internal/events"
	"prepwise/internal/llm"
	"prepwise/internal/metrics"
	"prepwise/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackService scores completed calls. Interviews is optional and only
// used to add resume context for custom interviews.
type FeedbackService struct {
	Feedback   FeedbackStore
	Interviews InterviewStore
	LLM        llm.Generator
	Events     events.Publisher
	Now        func() time.Time
}

type CreateFeedbackParams struct {
	InterviewID string                `json:"interviewId"`
	UserID      string                `json:"userId"`
	Transcript  []models.SavedMessage `json:"transcript"`
	FeedbackID  string                `json:"feedbackId,omitempty"`
}

type CreateFeedbackResult struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedbackId,omitempty"`
}

// feedbackObject is the structured output requested from the model.
type feedbackObject struct {
	TotalScore          float64                `json:"totalScore"`
	CategoryScores      []models.CategoryScore `json:"categoryScores"`
	Strengths           []string               `json:"strengths"`
	AreasForImprovement []string               `json:"areasForImprovement"`
	FinalAssessment     string                 `json:"finalAssessment"`
}

// CreateFeedback asks the model to score a transcript and stores the result,
// replacing the document at FeedbackID when one is given. It never returns an
// error: every failure is logged and reported as Success false.
func (s *FeedbackService) CreateFeedback(ctx context.Context, p CreateFeedbackParams) CreateFeedbackResult {
	if p.InterviewID == "" || p.UserID == "" || len(p.Transcript) == 0 {
		log.Printf("Refusing to create feedback: interviewId=%q userId=%q messages=%d", p.InterviewID, p.UserID, len(p.Transcript))
		metrics.IncFeedbackFailure()
		return CreateFeedbackResult{Success: false}
	}

	prompt := BuildFeedbackPrompt(FormatTranscript(p.Transcript), s.resumeContext(ctx, p.InterviewID))

	var out feedbackObject
	err := s.LLM.GenerateObject(ctx, llm.ObjectRequest{
		Name:   "feedback",
		System: feedbackSystemPrompt,
		Prompt: prompt,
		Schema: FeedbackSchema(),
	}, &out)
	if err != nil {
		log.Printf("Failed to generate feedback for interview %s: %v", p.InterviewID, err)
		metrics.IncFeedbackFailure()
		return CreateFeedbackResult{Success: false}
	}

	id := p.FeedbackID
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}
	createdAt := time.Now()
	if s.Now != nil {
		createdAt = s.Now()
	}

	feedback := &models.Feedback{
		ID:                  id,
		InterviewID:         p.InterviewID,
		UserID:              p.UserID,
		TotalScore:          out.TotalScore,
		CategoryScores:      out.CategoryScores,
		Strengths:           out.Strengths,
		AreasForImprovement: out.AreasForImprovement,
		FinalAssessment:     out.FinalAssessment,
		CreatedAt:           createdAt.UTC(),
	}
	if err := s.Feedback.Save(ctx, feedback); err != nil {
		log.Printf("Error saving feedback: %v", err)
		metrics.IncFeedbackFailure()
		return CreateFeedbackResult{Success: false}
	}

	metrics.IncFeedbackCreated()
	events.Emit(ctx, s.Events, events.TypeFeedbackCreated, events.FeedbackCreatedPayload{
		FeedbackID:  id,
		InterviewID: p.InterviewID,
		UserID:      p.UserID,
		TotalScore:  out.TotalScore,
	})
	return CreateFeedbackResult{Success: true, FeedbackID: id}
}

func (s *FeedbackService) resumeContext(ctx context.Context, interviewID string) *models.ResumeData {
	if s.Interviews == nil {
		return nil
	}
	interview, err := s.Interviews.FindByID(ctx, interviewID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("Failed to load interview %s for feedback context: %v", interviewID, err)
		}
		return nil
	}
	if !interview.IsCustom || interview.Resume == "" || interview.JobDescription == "" {
		return nil
	}
	return &models.ResumeData{Resume: interview.Resume, JobDescription: interview.JobDescription}
}

// GetFeedbackByInterviewID returns the user's feedback for an interview, or
// nil when none has been written yet.
func (s *FeedbackService) GetFeedbackByInterviewID(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	feedback, err := s.Feedback.FindByInterview(ctx, interviewID, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return feedback, err
}
