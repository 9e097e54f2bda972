package controllers

import (
	"errors"
	"log"
	"net/http"

	"prepwise/internal/metrics"
	"prepwise/internal/resume"

	"github.com/gin-gonic/gin"
)

type ResumeController struct {
	MaxUploadBytes int64
}

// ExtractResume turns an uploaded resume file (multipart field "file") into
// plain text that can be pasted into the resume-job form.
func (rc *ResumeController) ExtractResume(c *gin.Context) {
	if rc.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, rc.MaxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": "Resume file is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No resume file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	text, err := resume.Extract(file, fileHeader.Filename)
	switch {
	case errors.Is(err, resume.ErrUnsupportedType):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"success": false, "error": err.Error()})
		return
	case errors.Is(err, resume.ErrEmptyDocument):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
		return
	case err != nil:
		log.Printf("Failed to extract resume %s: %v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to extract resume text"})
		return
	}

	metrics.IncResumeExtracted()
	c.JSON(http.StatusOK, gin.H{"success": true, "filename": fileHeader.Filename, "text": text})
}
