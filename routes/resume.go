package routes

import (
	"prepwise/controllers"

	"github.com/gin-gonic/gin"
)

func SetupResumeRoutes(router *gin.RouterGroup, rc *controllers.ResumeController) {
	router.POST("/resume/extract", rc.ExtractResume)
}
