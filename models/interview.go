package models

import "time"

// Interview types as stored on the document.
const (
	InterviewTypeBehavioral = "behavioral"
	InterviewTypeTechnical  = "technical"
	InterviewTypeMixed      = "mixed"
)

// Interview is a generated question set. Documents are written once by the
// generation endpoints and never mutated afterwards.
type Interview struct {
	ID             string    `json:"id" bson:"_id"`
	Role           string    `json:"role" bson:"role"`
	Type           string    `json:"type" bson:"type"`
	Level          string    `json:"level" bson:"level"`
	Techstack      []string  `json:"techstack,omitempty" bson:"techstack,omitempty"`
	Resume         string    `json:"resume,omitempty" bson:"resume,omitempty"`
	JobDescription string    `json:"jobDescription,omitempty" bson:"jobDescription,omitempty"`
	IsCustom       bool      `json:"isCustom" bson:"isCustom"`
	Questions      []string  `json:"questions" bson:"questions"`
	UserID         string    `json:"userId" bson:"userId"`
	Finalized      bool      `json:"finalized" bson:"finalized"`
	CoverImage     string    `json:"coverImage" bson:"coverImage"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}
