package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStartRequestGenerate(t *testing.T) {
	cfg := SessionConfig{Mode: ModeGenerate, UserName: "Ada", UserID: "u1"}

	_, err := BuildStartRequest(cfg, "")
	assert.ErrorIs(t, err, ErrWorkflowNotConfigured)

	req, err := BuildStartRequest(cfg, "wf-123")
	require.NoError(t, err)
	assert.Equal(t, "wf-123", req.WorkflowID)
	assert.Nil(t, req.Assistant)
	assert.Equal(t, map[string]string{"username": "Ada", "userid": "u1"}, req.VariableValues)
}

func TestBuildStartRequestInterviewIgnoresWorkflow(t *testing.T) {
	req, err := BuildStartRequest(SessionConfig{
		Mode:           ModeInterview,
		Questions:      []string{"What is Go?", "Why channels?"},
		Resume:         "ignored for this mode",
		JobDescription: "ignored",
	}, "")
	require.NoError(t, err)

	require.NotNil(t, req.Assistant)
	assert.Equal(t, "Interviewer", req.Assistant.Name)
	assert.Equal(t, "- What is Go?\n- Why channels?", req.VariableValues["questions"])
	assert.Equal(t, "", req.VariableValues["context"])
}

func TestBuildStartRequestCustomContext(t *testing.T) {
	req, err := BuildStartRequest(SessionConfig{
		Mode:           ModeCustom,
		Questions:      []string{"Q"},
		Resume:         "Resume text",
		JobDescription: "JD text",
	}, "")
	require.NoError(t, err)

	ctx := req.VariableValues["context"]
	assert.Contains(t, ctx, "tailored interview based on the candidate's resume")
	assert.Contains(t, ctx, "Resume:\nResume text\n\nJob Description:\nJD text")

	req, err = BuildStartRequest(SessionConfig{Mode: ModeCustom, Questions: []string{"Q"}, Resume: "only resume"}, "")
	require.NoError(t, err)
	assert.Empty(t, req.VariableValues["context"], "context needs both texts")
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("custom")
	require.NoError(t, err)
	assert.Equal(t, ModeCustom, m)

	_, err = ParseMode("phone")
	assert.Error(t, err)
}

func TestInterviewerPromptHasTemplateSlots(t *testing.T) {
	a := Interviewer()
	require.Len(t, a.Model.Messages, 1)
	assert.Contains(t, a.Model.Messages[0].Content, "{{questions}}")
	assert.Contains(t, a.Model.Messages[0].Content, "{{context}}")
}
