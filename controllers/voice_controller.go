package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// VoiceController hands the browser what it needs to open a voice SDK
// session. The private workflow id stays on the server.
type VoiceController struct {
	PublicKey  string
	WorkflowID string
}

func (vc *VoiceController) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"publicKey":          vc.PublicKey,
		"workflowConfigured": vc.WorkflowID != "",
	})
}
