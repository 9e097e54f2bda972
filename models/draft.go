package models

// ResumeData holds the source texts a custom interview was generated from.
type ResumeData struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"jobDescription"`
}

type DraftMetadata struct {
	InterviewID string `json:"interviewId"`
	Role        string `json:"role"`
	Level       string `json:"level"`
	Type        string `json:"type"`
}

// InterviewDraft is the last generated question set for a user, cached so the
// interview page can start without refetching.
type InterviewDraft struct {
	Questions  []string      `json:"questions"`
	ResumeData ResumeData    `json:"resumeData"`
	Metadata   DraftMetadata `json:"metadata"`
}
