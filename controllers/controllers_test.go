package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prepwise/controllers"
	"prepwise/internal/cache"
	"prepwise/internal/llm/llmtest"
	"prepwise/internal/memstore"
	"prepwise/internal/ratelimit"
	"prepwise/models"
	"prepwise/routes"
	"prepwise/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	router     *gin.Engine
	gen        *llmtest.Fake
	interviews *memstore.Interviews
	feedback   *memstore.Feedback
}

func newHarness(t *testing.T, limiter ratelimit.Limiter) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{
		gen:        &llmtest.Fake{Text: `["What is Go?", "Explain channels."]`},
		interviews: memstore.NewInterviews(),
		feedback:   memstore.NewFeedback(),
	}
	interviewSvc := &services.InterviewService{
		Interviews: h.interviews,
		LLM:        h.gen,
		Drafts:     cache.NewMemoryDraftStore(time.Hour),
		Limiter:    limiter,
	}
	feedbackSvc := &services.FeedbackService{
		Feedback:   h.feedback,
		Interviews: h.interviews,
		LLM:        h.gen,
	}

	h.router = gin.New()
	api := h.router.Group("/api")
	routes.SetupInterviewRoutes(api, &controllers.InterviewController{Interviews: interviewSvc, Feedback: feedbackSvc})
	routes.SetupFeedbackRoutes(api, &controllers.FeedbackController{Feedback: feedbackSvc})
	routes.SetupResumeRoutes(api, &controllers.ResumeController{MaxUploadBytes: 1 << 20})
	h.router.GET("/health", controllers.Health)
	h.router.GET("/metrics", controllers.Metrics)
	return h
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func feedbackObject() map[string]any {
	scores := []map[string]any{}
	for _, name := range models.FeedbackCategories {
		scores = append(scores, map[string]any{"name": name, "score": 80, "comment": "good"})
	}
	return map[string]any{
		"totalScore":          80,
		"categoryScores":      scores,
		"strengths":           []string{"structure"},
		"areasForImprovement": []string{"depth"},
		"finalAssessment":     "Good.",
	}
}

func TestGenerateFromResume(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodPost, "/api/interviews/resume-job", gin.H{
		"resume":         "Go developer, 5 years",
		"jobDescription": "Backend engineer",
		"userId":         "user-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["interviewId"])
	assert.Len(t, body["questions"], 2)
	assert.Equal(t, 1, h.interviews.Len())

	draft := h.do(http.MethodGet, "/api/interviews/draft?userId=user-1", nil)
	require.Equal(t, http.StatusOK, draft.Code)
	assert.Equal(t, body["interviewId"], decode(t, draft)["metadata"].(map[string]any)["interviewId"])

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/interviews/draft?userId=user-2", nil).Code)
}

func TestGenerateFromResumeErrors(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		h := newHarness(t, nil)
		w := h.do(http.MethodPost, "/api/interviews/resume-job", gin.H{"resume": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
		assert.Zero(t, h.gen.Calls())
	})

	t.Run("unparseable output", func(t *testing.T) {
		h := newHarness(t, nil)
		h.gen.Text = "[]"
		w := h.do(http.MethodPost, "/api/interviews/resume-job", gin.H{
			"resume": "r", "jobDescription": "j", "userId": "u",
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
		assert.Zero(t, h.interviews.Len())
	})

	t.Run("rate limited", func(t *testing.T) {
		h := newHarness(t, ratelimit.NewLocalLimiter(1, time.Hour))
		req := gin.H{"resume": "r", "jobDescription": "j", "userId": "u"}
		require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/interviews/resume-job", req).Code)
		assert.Equal(t, http.StatusTooManyRequests, h.do(http.MethodPost, "/api/interviews/resume-job", req).Code)
		assert.Equal(t, 1, h.interviews.Len())
	})
}

func TestGenerateFromRole(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodPost, "/api/vapi/generate", gin.H{
		"type": "technical", "role": "Frontend Developer", "level": "junior",
		"techstack": "react,typescript", "amount": 2, "userid": "user-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	id := decode(t, w)["interviewId"].(string)

	got := h.do(http.MethodGet, "/api/interviews/"+id, nil)
	require.Equal(t, http.StatusOK, got.Code)
	interview := decode(t, got)
	assert.Equal(t, false, interview["isCustom"])
	assert.Equal(t, []any{"react", "typescript"}, interview["techstack"])

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/vapi/generate", gin.H{"role": "x"}).Code)
}

func TestInterviewReads(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, i := range []models.Interview{
		{ID: "a", UserID: "me", Finalized: true, IsCustom: true, CreatedAt: base},
		{ID: "b", UserID: "me", Finalized: true, CreatedAt: base.Add(time.Minute)},
		{ID: "c", UserID: "other", Finalized: true, CreatedAt: base.Add(2 * time.Minute)},
	} {
		i := i
		require.NoError(t, h.interviews.Insert(ctx, &i))
	}

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/interviews/missing", nil).Code)

	var latest []models.Interview
	w := h.do(http.MethodGet, "/api/interviews/latest?userId=me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	require.Len(t, latest, 1)
	assert.Equal(t, "c", latest[0].ID)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/interviews/latest?userId=me&limit=abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/interviews/latest", nil).Code)

	var mine []models.Interview
	w = h.do(http.MethodGet, "/api/users/me/interviews", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 2)
	assert.Equal(t, "b", mine[0].ID)

	w = h.do(http.MethodGet, "/api/users/me/interviews?custom=true", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].ID)
}

func TestFeedbackEndpoints(t *testing.T) {
	h := newHarness(t, nil)
	h.gen.Object = feedbackObject()
	require.NoError(t, h.interviews.Insert(context.Background(), &models.Interview{ID: "int-1", UserID: "u"}))

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/interviews/int-1/feedback?userId=u", nil).Code)

	w := h.do(http.MethodPost, "/api/feedback", gin.H{
		"interviewId": "int-1",
		"userId":      "u",
		"transcript":  []gin.H{{"role": "user", "content": "hello"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	created := decode(t, w)
	assert.Equal(t, true, created["success"])

	w = h.do(http.MethodGet, "/api/interviews/int-1/feedback?userId=u", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created["feedbackId"], decode(t, w)["id"])

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/interviews/int-1/feedback", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/interviews/nope/feedback?userId=u", nil).Code)
}

func TestCreateFeedbackFailures(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodPost, "/api/feedback", gin.H{"transcript": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/api/feedback", gin.H{
		"interviewId": "int-1",
		"userId":      "u",
		"transcript":  []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
	assert.Zero(t, h.gen.Calls())

	h.gen.ObjectErr = errors.New("model unavailable")
	w = h.do(http.MethodPost, "/api/feedback", gin.H{
		"interviewId": "int-1",
		"userId":      "u",
		"transcript":  []gin.H{{"role": "user", "content": "hello"}},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
	assert.Zero(t, h.feedback.Len())
}

func uploadResume(h *harness, filename, content string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, _ := mw.CreateFormFile("file", filename)
		_, _ = part.Write([]byte(content))
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/resume/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestExtractResume(t *testing.T) {
	h := newHarness(t, nil)

	w := uploadResume(h, "resume.txt", "Jane Doe\r\n\r\n\r\n\r\nGo engineer  ")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jane Doe\n\nGo engineer", decode(t, w)["text"])

	assert.Equal(t, http.StatusUnsupportedMediaType, uploadResume(h, "resume.exe", "MZ").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, uploadResume(h, "resume.txt", "   ").Code)
	assert.Equal(t, http.StatusBadRequest, uploadResume(h, "", "").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/health", nil).Code)

	w := h.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "interviews_created")
}
