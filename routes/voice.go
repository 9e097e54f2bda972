package routes

import (
	"prepwise/controllers"

	"github.com/gin-gonic/gin"
)

func SetupVoiceRoutes(router *gin.RouterGroup, vc *controllers.VoiceController) {
	router.GET("/voice/config", vc.GetConfig)
}
