package models

import "time"

// Rubric category names. Feedback always carries exactly these, in this order.
const (
	CategoryCommunication  = "Communication Skills"
	CategoryTechnical      = "Technical Knowledge"
	CategoryProblemSolving = "Problem-Solving"
	CategoryCulturalFit    = "Cultural & Role Fit"
	CategoryConfidence     = "Confidence & Clarity"
)

// FeedbackCategories lists the rubric categories in display order.
var FeedbackCategories = []string{
	CategoryCommunication,
	CategoryTechnical,
	CategoryProblemSolving,
	CategoryCulturalFit,
	CategoryConfidence,
}

type CategoryScore struct {
	Name    string  `json:"name" bson:"name"`
	Score   float64 `json:"score" bson:"score"`
	Comment string  `json:"comment" bson:"comment"`
}

// Feedback is the structured assessment of one completed call.
type Feedback struct {
	ID                  string          `json:"id" bson:"_id"`
	InterviewID         string          `json:"interviewId" bson:"interviewId"`
	UserID              string          `json:"userId" bson:"userId"`
	TotalScore          float64         `json:"totalScore" bson:"totalScore"`
	CategoryScores      []CategoryScore `json:"categoryScores" bson:"categoryScores"`
	Strengths           []string        `json:"strengths" bson:"strengths"`
	AreasForImprovement []string        `json:"areasForImprovement" bson:"areasForImprovement"`
	FinalAssessment     string          `json:"finalAssessment" bson:"finalAssessment"`
	CreatedAt           time.Time       `json:"createdAt" bson:"createdAt"`
}
