package controllers

import (
	"net/http"

	"prepwise/internal/metrics"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Metrics(c *gin.Context) {
	c.String(http.StatusOK, metrics.Format())
}
