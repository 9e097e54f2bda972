package websocket

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"prepwise/internal/voice"
	"prepwise/models"
	"prepwise/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	maxFrameBytes   = 64 << 10
	feedbackTimeout = 90 * time.Second
)

type InterviewFinder interface {
	GetInterviewByID(ctx context.Context, id string) (*models.Interview, error)
}

type FeedbackCreator interface {
	CreateFeedback(ctx context.Context, p services.CreateFeedbackParams) services.CreateFeedbackResult
}

// ClientFrame is a message from the browser: either a user action ("start",
// "stop") or a voice SDK event it relays.
type ClientFrame struct {
	voice.VendorEvent
}

// CallHandler relays one browser voice call per websocket connection and runs
// the call status machine on the server.
type CallHandler struct {
	Interviews     InterviewFinder
	Feedback       FeedbackCreator
	WorkflowID     string
	AllowedOrigins []string // empty allows any origin
}

func (h *CallHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (h *CallHandler) Serve(c *gin.Context) {
	mode, err := voice.ParseMode(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId parameter"})
		return
	}

	cfg := voice.SessionConfig{
		Mode:        mode,
		UserName:    c.Query("userName"),
		UserID:      userID,
		InterviewID: c.Query("interviewId"),
		FeedbackID:  c.Query("feedbackId"),
	}

	if mode != voice.ModeGenerate {
		if cfg.InterviewID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing interviewId parameter"})
			return
		}
		interview, err := h.Interviews.GetInterviewByID(c.Request.Context(), cfg.InterviewID)
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Interview not found"})
			return
		} else if err != nil {
			log.Printf("Failed to load interview %s for call: %v", cfg.InterviewID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load interview"})
			return
		}
		cfg.Questions = interview.Questions
		cfg.Resume = interview.Resume
		cfg.JobDescription = interview.JobDescription
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)

	callID := uuid.NewString()
	log.Printf("Call %s opened: mode=%s user=%s interview=%s", callID, mode, userID, cfg.InterviewID)

	session := voice.NewSession(cfg, h.WorkflowID, h.feedbackFunc(cfg))
	h.run(c.Request.Context(), callID, conn, session)
}

func (h *CallHandler) feedbackFunc(cfg voice.SessionConfig) voice.FeedbackFunc {
	return func(ctx context.Context, transcript []models.SavedMessage) (string, bool) {
		// Scoring must survive the browser navigating away mid-request.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), feedbackTimeout)
		defer cancel()

		res := h.Feedback.CreateFeedback(ctx, services.CreateFeedbackParams{
			InterviewID: cfg.InterviewID,
			UserID:      cfg.UserID,
			Transcript:  transcript,
			FeedbackID:  cfg.FeedbackID,
		})
		return res.FeedbackID, res.Success
	}
}

func (h *CallHandler) run(ctx context.Context, callID string, conn *websocket.Conn, session *voice.Session) {
	if err := conn.WriteJSON(voice.Outbound{Type: voice.OutStatus, Status: session.Status()}); err != nil {
		log.Printf("Call %s: failed to send initial status: %v", callID, err)
		return
	}

	for {
		var frame ClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Call %s: read error: %v", callID, err)
			}
			log.Printf("Call %s closed in state %s with %d transcript messages", callID, session.Status(), len(session.Transcript()))
			return
		}

		out, err := dispatch(ctx, session, frame)
		if err != nil {
			log.Printf("Call %s: %s rejected: %v", callID, frame.Type, err)
			out = []voice.Outbound{{Type: voice.OutNotice, Level: "error", Message: err.Error()}}
		}
		for _, msg := range out {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("Call %s: write error: %v", callID, err)
				return
			}
		}
	}
}

func dispatch(ctx context.Context, session *voice.Session, frame ClientFrame) ([]voice.Outbound, error) {
	switch frame.Type {
	case "start":
		return session.Start()
	case "stop":
		return session.Stop(ctx)
	default:
		return session.Handle(ctx, frame.VendorEvent)
	}
}
