package controllers

import (
	"net/http"

	"prepwise/services"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	Feedback *services.FeedbackService
}

// CreateFeedback handles POST /api/feedback. The service never fails loudly,
// so a false result is reported as a 500 with the same envelope.
func (fc *FeedbackController) CreateFeedback(c *gin.Context) {
	var params services.CreateFeedbackParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}
	if params.InterviewID == "" || params.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: interviewId and userId are required"})
		return
	}
	if len(params.Transcript) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Transcript is empty"})
		return
	}

	result := fc.Feedback.CreateFeedback(c.Request.Context(), params)
	if !result.Success {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
