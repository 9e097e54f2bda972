package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"prepwise/models"
)

type memoryInterviews struct {
	mu        sync.Mutex
	docs      map[string]models.Interview
	insertErr error
}

func newMemoryInterviews() *memoryInterviews {
	return &memoryInterviews{docs: make(map[string]models.Interview)}
}

func (m *memoryInterviews) Insert(ctx context.Context, interview *models.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.docs[interview.ID] = *interview
	return nil
}

func (m *memoryInterviews) FindByID(ctx context.Context, id string) (*models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (m *memoryInterviews) FindLatest(ctx context.Context, excludeUserID string, limit int) ([]models.Interview, error) {
	return m.filter(limit, func(i models.Interview) bool {
		return i.Finalized && i.UserID != excludeUserID
	}), nil
}

func (m *memoryInterviews) FindByUser(ctx context.Context, userID string, customOnly bool) ([]models.Interview, error) {
	return m.filter(0, func(i models.Interview) bool {
		return i.UserID == userID && (!customOnly || i.IsCustom)
	}), nil
}

func (m *memoryInterviews) filter(limit int, keep func(models.Interview) bool) []models.Interview {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Interview{}
	for _, doc := range m.docs {
		if keep(doc) {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *memoryInterviews) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

type memoryFeedback struct {
	mu      sync.Mutex
	docs    map[string]models.Feedback
	saves   int
	saveErr error
}

func newMemoryFeedback() *memoryFeedback {
	return &memoryFeedback{docs: make(map[string]models.Feedback)}
}

func (m *memoryFeedback) Save(ctx context.Context, feedback *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.docs[feedback.ID] = *feedback
	return nil
}

func (m *memoryFeedback) FindByInterview(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *models.Feedback
	for _, doc := range m.docs {
		if doc.InterviewID == interviewID && doc.UserID == userID {
			if found == nil || doc.CreatedAt.After(found.CreatedAt) {
				d := doc
				found = &d
			}
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, key string) (bool, error) { return false, nil }

type brokenLimiter struct{}

func (brokenLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return false, errors.New("redis down")
}
