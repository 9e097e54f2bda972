package voice

import (
	"errors"
	"strings"
)

type Mode string

const (
	ModeGenerate  Mode = "generate"  // hosted workflow collects role details
	ModeInterview Mode = "interview" // stored question list
	ModeCustom    Mode = "custom"    // question list plus resume context
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGenerate, ModeInterview, ModeCustom:
		return Mode(s), nil
	}
	return "", errors.New("call type must be one of generate, interview, custom")
}

var ErrWorkflowNotConfigured = errors.New("VAPI workflow ID is not configured")

// SessionConfig describes what a call is about. Questions, Resume and
// JobDescription are unused in generate mode.
type SessionConfig struct {
	Mode           Mode
	UserName       string
	UserID         string
	InterviewID    string
	FeedbackID     string
	Questions      []string
	Resume         string
	JobDescription string
}

// StartRequest is what the browser passes to the voice SDK's start call:
// either a hosted workflow id or an inline assistant, plus template values.
type StartRequest struct {
	WorkflowID     string            `json:"workflowId,omitempty"`
	Assistant      *Assistant        `json:"assistant,omitempty"`
	VariableValues map[string]string `json:"variableValues"`
}

// BuildStartRequest seeds a call. Generate mode needs workflowID; the other
// modes run the interviewer assistant over the question list.
func BuildStartRequest(cfg SessionConfig, workflowID string) (*StartRequest, error) {
	if cfg.Mode == ModeGenerate {
		if workflowID == "" {
			return nil, ErrWorkflowNotConfigured
		}
		return &StartRequest{
			WorkflowID: workflowID,
			VariableValues: map[string]string{
				"username": cfg.UserName,
				"userid":   cfg.UserID,
			},
		}, nil
	}

	interviewCtx := ""
	if cfg.Mode == ModeCustom && cfg.Resume != "" && cfg.JobDescription != "" {
		interviewCtx = InterviewContext(cfg.Resume, cfg.JobDescription)
	}
	return &StartRequest{
		Assistant: Interviewer(),
		VariableValues: map[string]string{
			"questions": FormatQuestions(cfg.Questions),
			"context":   interviewCtx,
		},
	}, nil
}

// FormatQuestions renders questions as a dash bulleted block.
func FormatQuestions(questions []string) string {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		lines = append(lines, "- "+q)
	}
	return strings.Join(lines, "\n")
}

// InterviewContext is the resume and job description preamble for custom calls.
func InterviewContext(resume, jobDescription string) string {
	var sb strings.Builder
	sb.WriteString("\nThis is a tailored interview based on the candidate's resume and the job description.\n\n")
	sb.WriteString("Resume:\n")
	sb.WriteString(resume)
	sb.WriteString("\n\nJob Description:\n")
	sb.WriteString(jobDescription)
	sb.WriteString("\n\nPlease conduct an interview tailored to assess this candidate's fit for the role.\n")
	return sb.String()
}
