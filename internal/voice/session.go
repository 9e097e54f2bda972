package voice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"prepwise/internal/metrics"
	"prepwise/models"
)

// Outbound frame types sent back to the browser.
const (
	OutStatus      = "status"
	OutLastMessage = "lastMessage"
	OutSpeaking    = "speaking"
	OutStartCall   = "startCall"
	OutStopCall    = "stopCall"
	OutNotice      = "notice"
	OutNavigate    = "navigate"
)

// Outbound is one instruction for the browser: a state change to render, a
// vendor SDK call to make, a toast, or a page to go to.
type Outbound struct {
	Type       string        `json:"type"`
	Status     Status        `json:"status,omitempty"`
	Content    string        `json:"content,omitempty"`
	IsSpeaking *bool         `json:"isSpeaking,omitempty"`
	Start      *StartRequest `json:"start,omitempty"`
	Level      string        `json:"level,omitempty"` // success or error
	Message    string        `json:"message,omitempty"`
	Path       string        `json:"path,omitempty"`
}

// VendorEvent is a voice SDK event relayed by the browser.
type VendorEvent struct {
	Type           string `json:"type"`
	MessageType    string `json:"messageType,omitempty"`
	TranscriptType string `json:"transcriptType,omitempty"`
	Role           string `json:"role,omitempty"`
	Transcript     string `json:"transcript,omitempty"`
	Error          string `json:"error,omitempty"`
}

var ErrUnknownEvent = errors.New("unknown vendor event")

// FeedbackFunc scores a finished call's transcript. It reports whether a
// feedback document was written.
type FeedbackFunc func(ctx context.Context, transcript []models.SavedMessage) (feedbackID string, ok bool)

// Session is the server side of one browser call. Every method is safe for
// concurrent use; the feedback hand-off runs without holding the lock.
type Session struct {
	mu         sync.Mutex
	cfg        SessionConfig
	workflowID string
	feedback   FeedbackFunc

	status    Status
	messages  []models.SavedMessage
	speaking  bool
	handedOff bool
}

func NewSession(cfg SessionConfig, workflowID string, feedback FeedbackFunc) *Session {
	return &Session{
		cfg:        cfg,
		workflowID: workflowID,
		feedback:   feedback,
		status:     StatusInactive,
	}
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Transcript returns a copy of the final transcript so far.
func (s *Session) Transcript() []models.SavedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SavedMessage(nil), s.messages...)
}

// LastMessage is the only transcript line surfaced to the UI.
func (s *Session) LastMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1].Content
}

// Start begins a new call and tells the browser how to seed the vendor SDK.
// When the call cannot be seeded the session falls back to INACTIVE.
func (s *Session) Start() ([]Outbound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Transition(s.status, EventStart)
	if err != nil {
		return nil, err
	}

	req, err := BuildStartRequest(s.cfg, s.workflowID)
	if err != nil {
		metrics.IncCallError()
		s.status = StatusInactive
		return []Outbound{
			{Type: OutStatus, Status: s.status},
			{Type: OutNotice, Level: "error", Message: fmt.Sprintf("Failed to start call: %v", err)},
		}, nil
	}

	s.status = next
	s.messages = nil
	s.speaking = false
	s.handedOff = false
	metrics.IncCallStarted()

	return []Outbound{
		{Type: OutStatus, Status: s.status},
		{Type: OutStartCall, Start: req},
	}, nil
}

// Stop ends the call from the user's side, cutting off any speech in progress.
func (s *Session) Stop(ctx context.Context) ([]Outbound, error) {
	s.mu.Lock()
	prev := s.status
	next, err := Transition(prev, EventStop)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.status = next
	s.speaking = false
	s.mu.Unlock()

	out := []Outbound{{Type: OutStopCall}}
	if next != prev {
		out = append(out, Outbound{Type: OutStatus, Status: next})
		out = append(out, s.finish(ctx)...)
	}
	return out, nil
}

// Handle applies a vendor event.
func (s *Session) Handle(ctx context.Context, ev VendorEvent) ([]Outbound, error) {
	switch ev.Type {
	case "call-start":
		return s.apply(ctx, EventCallStart)
	case "call-end":
		return s.apply(ctx, EventCallEnd)
	case "error", "start-error":
		return s.abort(ev)
	case "message":
		return s.message(ev), nil
	case "speech-start", "speech-end":
		return s.speech(ev.Type == "speech-start"), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
}

func (s *Session) apply(ctx context.Context, ev Event) ([]Outbound, error) {
	s.mu.Lock()
	prev := s.status
	next, err := Transition(prev, ev)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.status = next
	s.mu.Unlock()

	if next == prev {
		return nil, nil
	}
	out := []Outbound{{Type: OutStatus, Status: next}}
	if next == StatusFinished {
		out = append(out, s.finish(ctx)...)
	}
	return out, nil
}

func (s *Session) abort(ev VendorEvent) ([]Outbound, error) {
	s.mu.Lock()
	next, _ := Transition(s.status, EventError)
	s.status = next
	s.speaking = false
	s.mu.Unlock()

	metrics.IncCallError()
	prefix := "Call error"
	if ev.Type == "start-error" {
		prefix = "Failed to start call"
	}
	log.Printf("Voice session error for user %s: %s", s.cfg.UserID, ev.Error)
	return []Outbound{
		{Type: OutStatus, Status: next},
		{Type: OutNotice, Level: "error", Message: fmt.Sprintf("%s: %s", prefix, ev.Error)},
	}, nil
}

func (s *Session) message(ev VendorEvent) []Outbound {
	if ev.MessageType != "transcript" || ev.TranscriptType != "final" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive && s.status != StatusConnecting {
		return nil
	}
	s.messages = append(s.messages, models.SavedMessage{Role: ev.Role, Content: ev.Transcript})
	return []Outbound{{Type: OutLastMessage, Content: ev.Transcript}}
}

func (s *Session) speech(speaking bool) []Outbound {
	s.mu.Lock()
	s.speaking = speaking
	s.mu.Unlock()
	return []Outbound{{Type: OutSpeaking, IsSpeaking: &speaking}}
}

// finish runs the post-call hand-off. It fires at most once per call.
func (s *Session) finish(ctx context.Context) []Outbound {
	s.mu.Lock()
	if s.handedOff {
		s.mu.Unlock()
		return nil
	}
	s.handedOff = true
	transcript := append([]models.SavedMessage(nil), s.messages...)
	s.mu.Unlock()

	metrics.IncCallFinished()

	if s.cfg.Mode == ModeGenerate {
		return []Outbound{
			{Type: OutNotice, Level: "success", Message: "Interview questions generated!"},
			{Type: OutNavigate, Path: "/"},
		}
	}

	if len(transcript) == 0 {
		return []Outbound{
			{Type: OutNotice, Level: "error", Message: "No interview transcript to generate feedback from"},
			{Type: OutNavigate, Path: "/"},
		}
	}

	if s.feedback != nil {
		if id, ok := s.feedback(ctx, transcript); ok && id != "" {
			return []Outbound{
				{Type: OutNotice, Level: "success", Message: "Feedback generated successfully!"},
				{Type: OutNavigate, Path: fmt.Sprintf("/interview/%s/feedback", s.cfg.InterviewID)},
			}
		}
	}
	return []Outbound{
		{Type: OutNotice, Level: "error", Message: "Failed to generate feedback"},
		{Type: OutNavigate, Path: "/"},
	}
}
