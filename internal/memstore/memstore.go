// Package memstore holds in-memory interview and feedback stores with the
// same query semantics as the Mongo repositories. Tests use them, and the
// server falls back to them when database.uri is "memory".
package memstore

import (
	"context"
	"sort"
	"sync"

	"prepwise/db"
	"prepwise/models"
)

type Interviews struct {
	mu   sync.Mutex
	docs map[string]models.Interview

	InsertErr error
}

func NewInterviews() *Interviews {
	return &Interviews{docs: make(map[string]models.Interview)}
}

func (m *Interviews) Insert(ctx context.Context, interview *models.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.docs[interview.ID] = *interview
	return nil
}

func (m *Interviews) FindByID(ctx context.Context, id string) (*models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &doc, nil
}

// FindLatest drops the resume and job description, like the Mongo projection.
func (m *Interviews) FindLatest(ctx context.Context, excludeUserID string, limit int) ([]models.Interview, error) {
	out := m.filter(limit, func(i models.Interview) bool {
		return i.Finalized && i.UserID != excludeUserID
	})
	for i := range out {
		out[i].Resume = ""
		out[i].JobDescription = ""
	}
	return out, nil
}

func (m *Interviews) FindByUser(ctx context.Context, userID string, customOnly bool) ([]models.Interview, error) {
	return m.filter(0, func(i models.Interview) bool {
		return i.UserID == userID && (!customOnly || i.IsCustom)
	}), nil
}

func (m *Interviews) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func (m *Interviews) filter(limit int, keep func(models.Interview) bool) []models.Interview {
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

type Feedback struct {
	mu   sync.Mutex
	docs map[string]models.Feedback

	SaveErr error
}

func NewFeedback() *Feedback {
	return &Feedback{docs: make(map[string]models.Feedback)}
}

func (m *Feedback) Save(ctx context.Context, feedback *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.docs[feedback.ID] = *feedback
	return nil
}

func (m *Feedback) FindByInterview(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *models.Feedback
	for _, doc := range m.docs {
		if doc.InterviewID != interviewID || doc.UserID != userID {
			continue
		}
		if found == nil || doc.CreatedAt.After(found.CreatedAt) {
			d := doc
			found = &d
		}
	}
	if found == nil {
		return nil, db.ErrNotFound
	}
	return found, nil
}

// Get returns the document stored under id.
func (m *Feedback) Get(id string) (models.Feedback, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	return doc, ok
}

func (m *Feedback) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}
