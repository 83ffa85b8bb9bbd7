package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore is an in-memory service.SessionStore
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]bool
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]bool)}
}

func (s *SessionStore) key(userID uuid.UUID, sessionID string) string {
	return userID.String() + ":" + sessionID
}

func (s *SessionStore) Save(ctx context.Context, userID uuid.UUID, sessionID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[s.key(userID, sessionID)] = true
	return nil
}

func (s *SessionStore) Exists(ctx context.Context, userID uuid.UUID, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[s.key(userID, sessionID)], nil
}

func (s *SessionStore) Delete(ctx context.Context, userID uuid.UUID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, s.key(userID, sessionID))
	return nil
}

// Len reports the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// NoticeStore is an in-memory service.NoticeStore
type NoticeStore struct {
	mu      sync.Mutex
	notices map[string][]string
}

func NewNoticeStore() *NoticeStore {
	return &NoticeStore{notices: make(map[string][]string)}
}

func (s *NoticeStore) Push(ctx context.Context, sessionID string, notice string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices[sessionID] = append(s.notices[sessionID], notice)
	return nil
}

func (s *NoticeStore) Pop(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notices := s.notices[sessionID]
	delete(s.notices, sessionID)
	return notices, nil
}
