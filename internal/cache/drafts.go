// Package cache keeps the most recently generated question set per user so
// the interview page can pick it up without regenerating.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"prepwise/models"

	"github.com/redis/go-redis/v9"
)

var ErrDraftNotFound = errors.New("no draft interview cached for user")

type DraftStore interface {
	Save(ctx context.Context, userID string, draft models.InterviewDraft) error
	Load(ctx context.Context, userID string) (*models.InterviewDraft, error)
}

func draftKey(userID string) string {
	return fmt.Sprintf("draft:%s", userID)
}

// RedisDraftStore stores drafts as JSON strings with a TTL.
type RedisDraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDraftStore(rdb *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{rdb: rdb, ttl: ttl}
}

func (s *RedisDraftStore) Save(ctx context.Context, userID string, draft models.InterviewDraft) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, draftKey(userID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Load(ctx context.Context, userID string) (*models.InterviewDraft, error) {
	data, err := s.rdb.Get(ctx, draftKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var draft models.InterviewDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

type draftEntry struct {
	draft    models.InterviewDraft
	storedAt time.Time
}

// MemoryDraftStore is the in-process DraftStore used when Redis is not configured.
type MemoryDraftStore struct {
	mu      sync.RWMutex
	entries map[string]draftEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryDraftStore(ttl time.Duration) *MemoryDraftStore {
	return &MemoryDraftStore{
		entries: make(map[string]draftEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryDraftStore) Save(ctx context.Context, userID string, draft models.InterviewDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = draftEntry{draft: draft, storedAt: s.now()}
	return nil
}

func (s *MemoryDraftStore) Load(ctx context.Context, userID string) (*models.InterviewDraft, error) {
	s.mu.RLock()
	entry, ok := s.entries[userID]
	s.mu.RUnlock()

	if !ok || s.now().Sub(entry.storedAt) > s.ttl {
		return nil, ErrDraftNotFound
	}
	draft := entry.draft
	return &draft, nil
}

// CleanExpired drops expired drafts.
func (s *MemoryDraftStore) CleanExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for userID, entry := range s.entries {
		if now.Sub(entry.storedAt) > s.ttl {
			delete(s.entries, userID)
		}
	}
}
