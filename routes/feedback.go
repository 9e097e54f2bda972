package routes

import (
	"prepwise/controllers"

	"github.com/gin-gonic/gin"
)

func SetupFeedbackRoutes(router *gin.RouterGroup, fc *controllers.FeedbackController) {
	router.POST("/feedback", fc.CreateFeedback)
}
