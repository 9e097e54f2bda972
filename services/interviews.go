package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"prepwise/internal/cache"
	"prepwise/internal/events"
	"prepwise/internal/llm"
	"prepwise/internal/metrics"
	"prepwise/internal/questions"
	"prepwise/internal/ratelimit"
	"prepwise/models"
	"prepwise/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultLatestLimit = 20
	maxLatestLimit     = 100
)

var (
	ErrMissingFields     = errors.New("Missing required fields: resume, jobDescription, and userId are required")
	ErrMissingRoleFields = errors.New("Missing required fields: role and userid are required")
	ErrRateLimited       = errors.New("Too many interviews generated, please try again later")
)

// InterviewService generates interviews and serves the read-side queries.
// Drafts, Limiter and Events are optional.
type InterviewService struct {
	Interviews InterviewStore
	LLM        llm.Generator
	Drafts     cache.DraftStore
	Limiter    ratelimit.Limiter
	Events     events.Publisher
	Now        func() time.Time
}

type ResumeJobRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"jobDescription"`
	UserID         string `json:"userId"`
	Role           string `json:"role"`
	Level          string `json:"level"`
	Type           string `json:"type"`
	Amount         int    `json:"amount"`
}

type RoleRequest struct {
	Type      string `json:"type"`
	Role      string `json:"role"`
	Level     string `json:"level"`
	Techstack string `json:"techstack"`
	Amount    int    `json:"amount"`
	UserID    string `json:"userid"`
}

func (s *InterviewService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateFromResume asks the model for questions tailored to a resume and a
// job description, then stores them as a finalized custom interview. Nothing
// is written unless at least one question was recovered.
func (s *InterviewService) GenerateFromResume(ctx context.Context, req ResumeJobRequest) (*models.Interview, error) {
	if strings.TrimSpace(req.Resume) == "" || strings.TrimSpace(req.JobDescription) == "" || strings.TrimSpace(req.UserID) == "" {
		return nil, ErrMissingFields
	}
	if req.Amount <= 0 {
		req.Amount = questions.DefaultAmount
	}
	if err := s.checkRate(ctx, req.UserID); err != nil {
		return nil, err
	}

	log.Printf("Generating tailored interview questions for user %s", req.UserID)
	prompt := questions.BuildResumeJobPrompt(questions.ResumeJobInput{
		Resume:         req.Resume,
		JobDescription: req.JobDescription,
		Role:           req.Role,
		Level:          req.Level,
		Type:           req.Type,
		Amount:         req.Amount,
	})
	qs, err := s.generateQuestions(ctx, prompt, req.Amount)
	if err != nil {
		return nil, err
	}

	interview := &models.Interview{
		ID:             primitive.NewObjectID().Hex(),
		Role:           utils.OrDefault(req.Role, "Custom Role"),
		Type:           utils.OrDefault(req.Type, models.InterviewTypeMixed),
		Level:          utils.OrDefault(req.Level, "custom"),
		Resume:         req.Resume,
		JobDescription: req.JobDescription,
		IsCustom:       true,
		Questions:      qs,
		UserID:         req.UserID,
		Finalized:      true,
		CoverImage:     utils.RandomInterviewCover(),
		CreatedAt:      s.now().UTC(),
	}
	if err := s.save(ctx, interview); err != nil {
		return nil, err
	}

	s.cacheDraft(ctx, interview)
	return interview, nil
}

// GenerateFromRole creates a finalized interview for a preset role. The hosted
// generation workflow calls this once it has collected the role details.
func (s *InterviewService) GenerateFromRole(ctx context.Context, req RoleRequest) (*models.Interview, error) {
	if strings.TrimSpace(req.Role) == "" || strings.TrimSpace(req.UserID) == "" {
		return nil, ErrMissingRoleFields
	}
	if req.Amount <= 0 {
		req.Amount = questions.DefaultAmount
	}
	if err := s.checkRate(ctx, req.UserID); err != nil {
		return nil, err
	}

	techstack := utils.SplitList(req.Techstack)
	prompt := questions.BuildRolePrompt(questions.RoleInput{
		Role:      req.Role,
		Level:     req.Level,
		Type:      req.Type,
		Techstack: techstack,
		Amount:    req.Amount,
	})
	qs, err := s.generateQuestions(ctx, prompt, req.Amount)
	if err != nil {
		return nil, err
	}

	interview := &models.Interview{
		ID:         primitive.NewObjectID().Hex(),
		Role:       req.Role,
		Type:       utils.OrDefault(req.Type, models.InterviewTypeMixed),
		Level:      req.Level,
		Techstack:  techstack,
		Questions:  qs,
		UserID:     req.UserID,
		Finalized:  true,
		CoverImage: utils.RandomInterviewCover(),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.save(ctx, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

func (s *InterviewService) checkRate(ctx context.Context, userID string) error {
	if s.Limiter == nil {
		return nil
	}
	ok, err := s.Limiter.Allow(ctx, userID)
	if err != nil {
		log.Printf("Rate limiter unavailable, allowing request: %v", err)
		return nil
	}
	if !ok {
		metrics.IncRateLimited()
		return ErrRateLimited
	}
	return nil
}

func (s *InterviewService) generateQuestions(ctx context.Context, prompt string, amount int) ([]string, error) {
	text, err := s.LLM.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	qs, err := questions.ParseQuestions(text, amount)
	if err != nil {
		metrics.IncParseFailure()
		log.Printf("Failed to parse generated questions: %v. Raw: %s", err, text)
		return nil, err
	}
	return qs, nil
}

func (s *InterviewService) save(ctx context.Context, interview *models.Interview) error {
	if err := s.Interviews.Insert(ctx, interview); err != nil {
		return err
	}
	metrics.IncInterviewCreated()
	log.Printf("Interview saved with ID: %s", interview.ID)

	events.Emit(ctx, s.Events, events.TypeInterviewCreated, events.InterviewCreatedPayload{
		InterviewID: interview.ID,
		UserID:      interview.UserID,
		Role:        interview.Role,
		IsCustom:    interview.IsCustom,
		Questions:   len(interview.Questions),
	})
	return nil
}

func (s *InterviewService) cacheDraft(ctx context.Context, interview *models.Interview) {
	if s.Drafts == nil {
		return
	}
	draft := models.InterviewDraft{
		Questions: interview.Questions,
		ResumeData: models.ResumeData{
			Resume:         interview.Resume,
			JobDescription: interview.JobDescription,
		},
		Metadata: models.DraftMetadata{
			InterviewID: interview.ID,
			Role:        interview.Role,
			Level:       interview.Level,
			Type:        interview.Type,
		},
	}
	if err := s.Drafts.Save(ctx, interview.UserID, draft); err != nil {
		log.Printf("Failed to cache interview draft: %v", err)
	}
}

// GetDraft returns the last question set generated for a user.
func (s *InterviewService) GetDraft(ctx context.Context, userID string) (*models.InterviewDraft, error) {
	if s.Drafts == nil {
		return nil, cache.ErrDraftNotFound
	}
	return s.Drafts.Load(ctx, userID)
}

func (s *InterviewService) GetInterviewByID(ctx context.Context, id string) (*models.Interview, error) {
	return s.Interviews.FindByID(ctx, id)
}

// GetLatestInterviews lists finalized interviews from other users.
func (s *InterviewService) GetLatestInterviews(ctx context.Context, userID string, limit int) ([]models.Interview, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	if limit > maxLatestLimit {
		limit = maxLatestLimit
	}
	return s.Interviews.FindLatest(ctx, userID, limit)
}

func (s *InterviewService) GetInterviewsByUserID(ctx context.Context, userID string) ([]models.Interview, error) {
	return s.Interviews.FindByUser(ctx, userID, false)
}

// GetResumeInterviewsByUserID lists only the interviews generated from a resume.
func (s *InterviewService) GetResumeInterviewsByUserID(ctx context.Context, userID string) ([]models.Interview, error) {
	return s.Interviews.FindByUser(ctx, userID, true)
}
