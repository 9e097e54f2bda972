// Package events publishes domain events for downstream consumers such as
// notification or analytics workers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TypeInterviewCreated = "interview.created"
	TypeFeedbackCreated  = "feedback.created"
)

// Event is the envelope written to every backend.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

type InterviewCreatedPayload struct {
	InterviewID string `json:"interviewId"`
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	IsCustom    bool   `json:"isCustom"`
	Questions   int    `json:"questions"`
}

type FeedbackCreatedPayload struct {
	FeedbackID  string  `json:"feedbackId"`
	InterviewID string  `json:"interviewId"`
	UserID      string  `json:"userId"`
	TotalScore  float64 `json:"totalScore"`
}

// NewEvent creates a new event with an id and timestamp
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payloadBytes,
		Timestamp: time.Now().Unix(),
	}, nil
}

// MarshalEvent marshals an event to a JSON string
func MarshalEvent(event *Event) (string, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalEvent unmarshals a JSON string to an Event
func UnmarshalEvent(data string) (*Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(ctx context.Context, event *Event) error { return nil }
func (Nop) Close() error { return nil }
