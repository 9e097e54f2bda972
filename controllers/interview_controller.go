package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"prepwise/internal/cache"
	"prepwise/models"
	"prepwise/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type InterviewController struct {
	Interviews *services.InterviewService
	Feedback   *services.FeedbackService
}

// GenerateFromResume handles POST /api/interviews/resume-job.
func (ic *InterviewController) GenerateFromResume(c *gin.Context) {
	var req services.ResumeJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	interview, err := ic.Interviews.GenerateFromResume(c.Request.Context(), req)
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"interviewId": interview.ID,
		"questions":   interview.Questions,
	})
}

// GenerateFromRole handles POST /api/vapi/generate, the call target of the
// generate workflow.
func (ic *InterviewController) GenerateFromRole(c *gin.Context) {
	var req services.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	interview, err := ic.Interviews.GenerateFromRole(c.Request.Context(), req)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "interviewId": interview.ID})
}

func writeGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrMissingRoleFields):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": err.Error()})
	default:
		log.Printf("Interview generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate interview questions"})
	}
}

func (ic *InterviewController) GetInterview(c *gin.Context) {
	interview, err := ic.Interviews.GetInterviewByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interview not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to load interview %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load interview"})
		return
	}
	c.JSON(http.StatusOK, interview)
}

// GetInterviewFeedback looks up the interview and the user's feedback in
// parallel so a bad id is reported as a missing interview.
func (ic *InterviewController) GetInterviewFeedback(c *gin.Context) {
	id := c.Param("id")
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId parameter"})
		return
	}

	var (
		feedback     *models.Feedback
		interviewErr error
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		_, interviewErr = ic.Interviews.GetInterviewByID(ctx, id)
		if errors.Is(interviewErr, services.ErrNotFound) {
			return nil
		}
		return interviewErr
	})
	g.Go(func() error {
		var err error
		feedback, err = ic.Feedback.GetFeedbackByInterviewID(ctx, id, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("Failed to load feedback for interview %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback"})
		return
	}
	if interviewErr != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interview not found"})
		return
	}
	if feedback == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (ic *InterviewController) GetLatestInterviews(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId parameter"})
		return
	}
	limit := services.DefaultLatestLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = n
	}

	interviews, err := ic.Interviews.GetLatestInterviews(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("Failed to list latest interviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load interviews"})
		return
	}
	c.JSON(http.StatusOK, interviews)
}

// GetUserInterviews lists a user's interviews; custom=true keeps only the
// ones generated from a resume.
func (ic *InterviewController) GetUserInterviews(c *gin.Context) {
	userID := c.Param("userId")
	customOnly := c.Query("custom") == "true"

	get := ic.Interviews.GetInterviewsByUserID
	if customOnly {
		get = ic.Interviews.GetResumeInterviewsByUserID
	}
	interviews, err := get(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to list interviews for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load interviews"})
		return
	}
	c.JSON(http.StatusOK, interviews)
}

func (ic *InterviewController) GetDraft(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId parameter"})
		return
	}
	draft, err := ic.Interviews.GetDraft(c.Request.Context(), userID)
	if errors.Is(err, cache.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No draft interview found"})
		return
	}
	if err != nil {
		log.Printf("Failed to load draft for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		return
	}
	c.JSON(http.StatusOK, draft)
}
