package services

import (
	"fmt"
	"strings"

	"prepwise/internal/llm"
	"prepwise/models"
)

const feedbackSystemPrompt = "You are a professional interviewer analyzing a mock interview. Your task is to evaluate the candidate based on structured categories"

var categoryRubric = map[string]string{
	models.CategoryCommunication:  "Clarity, articulation, structured responses.",
	models.CategoryTechnical:      "Understanding of key concepts for the role.",
	models.CategoryProblemSolving: "Ability to analyze problems and propose solutions.",
	models.CategoryCulturalFit:    "Alignment with company values and job role.",
	models.CategoryConfidence:     "Confidence in responses, engagement, and clarity.",
}

// FormatTranscript renders one "- role: content" line per message.
func FormatTranscript(messages []models.SavedMessage) string {
	var sb strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&sb, "- %s: %s\n", m.Role, m.Content)
	}
	return sb.String()
}

// BuildFeedbackPrompt builds the rubric prompt. resume may be nil.
func BuildFeedbackPrompt(transcript string, resume *models.ResumeData) string {
	var sb strings.Builder
	sb.WriteString("You are an AI interviewer analyzing a mock interview. Your task is to evaluate the candidate based on structured categories. ")
	sb.WriteString("Be thorough and detailed in your analysis. Don't be lenient with the candidate. If there are mistakes or areas for improvement, point them out.\n")

	if resume != nil {
		sb.WriteString("\nThis was a tailored interview. Judge technical knowledge and role fit against the candidate's resume and the job description.\n")
		fmt.Fprintf(&sb, "\nResume:\n%s\n", resume.Resume)
		fmt.Fprintf(&sb, "\nJob Description:\n%s\n", resume.JobDescription)
	}

	fmt.Fprintf(&sb, "\nTranscript:\n%s\n", transcript)
	sb.WriteString("Please score the candidate from 0 to 100 in the following areas. Do not add categories other than the ones provided:\n")
	for _, name := range models.FeedbackCategories {
		fmt.Fprintf(&sb, "- **%s**: %s\n", name, categoryRubric[name])
	}
	return sb.String()
}

// FeedbackSchema describes the structured feedback object.
func FeedbackSchema() *llm.Schema {
	return &llm.Schema{
		Type:     llm.TypeObject,
		Required: []string{"totalScore", "categoryScores", "strengths", "areasForImprovement", "finalAssessment"},
		Properties: map[string]*llm.Schema{
			"totalScore": {Type: llm.TypeNumber, Description: "Overall score from 0 to 100"},
			"categoryScores": {
				Type:        llm.TypeArray,
				Description: "Exactly one entry per category, in this order: " + strings.Join(models.FeedbackCategories, ", "),
				Items: &llm.Schema{
					Type:     llm.TypeObject,
					Required: []string{"name", "score", "comment"},
					Properties: map[string]*llm.Schema{
						"name":    {Type: llm.TypeString, Enum: models.FeedbackCategories},
						"score":   {Type: llm.TypeNumber},
						"comment": {Type: llm.TypeString},
					},
				},
			},
			"strengths":           {Type: llm.TypeArray, Items: &llm.Schema{Type: llm.TypeString}},
			"areasForImprovement": {Type: llm.TypeArray, Items: &llm.Schema{Type: llm.TypeString}},
			"finalAssessment":     {Type: llm.TypeString},
		},
	}
}
