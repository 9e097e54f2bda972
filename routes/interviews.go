package routes

import (
	"prepwise/controllers"

	"github.com/gin-gonic/gin"
)

// SetupInterviewRoutes registers question generation and the interview read
// endpoints under the given /api group.
func SetupInterviewRoutes(router *gin.RouterGroup, ic *controllers.InterviewController) {
	interviews := router.Group("/interviews")
	{
		interviews.POST("/resume-job", ic.GenerateFromResume)
		interviews.GET("/latest", ic.GetLatestInterviews)
		interviews.GET("/draft", ic.GetDraft)
		interviews.GET("/:id", ic.GetInterview)
		interviews.GET("/:id/feedback", ic.GetInterviewFeedback)
	}

	router.GET("/users/:userId/interviews", ic.GetUserInterviews)
	router.POST("/vapi/generate", ic.GenerateFromRole)
}
