// Package session owns all conversation state. No other component keeps a
// copy of a transcript beyond the lifetime of a single turn.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKovacik/Simulator2/internal/model/chat"
)

var (
	ErrSessionIDRequired = errors.New("session id is required")
	ErrSessionNotFound   = errors.New("session not found")
)

// record is the mutable per-session state guarded by the service mutex.
type record struct {
	persona      string
	messages     []chat.Message
	lastActivity time.Time
}

// Service is an in-memory session store keyed by opaque session id. It must
// tolerate concurrent access from independent session flows; single-writer
// discipline within one session id is the caller's responsibility.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*record
	now      func() time.Time
}

// NewService bootstraps the in-memory session store.
func NewService() *Service {
	return &Service{
		sessions: make(map[string]*record),
		now:      time.Now,
	}
}

// GetOrCreate returns a snapshot of the session, creating an empty one on
// first reference. The last-activity timestamp is refreshed either way.
func (s *Service) GetOrCreate(_ context.Context, sessionID string) (chat.Session, error) {
	if sessionID == "" {
		return chat.Session{}, ErrSessionIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		rec = &record{messages: make([]chat.Message, 0, 16)}
		s.sessions[sessionID] = rec
	}
	rec.lastActivity = s.now()

	return s.snapshotLocked(sessionID, rec), nil
}

// Touch refreshes the last-activity timestamp if the session exists.
func (s *Service) Touch(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.sessions[sessionID]; ok {
		rec.lastActivity = s.now()
	}
}

// SetPersona assigns the persona drawn for this session. The persona is
// immutable in spirit; the simulator sets it once at conversation start.
func (s *Service) SetPersona(_ context.Context, sessionID, personaName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	rec.persona = personaName
	rec.lastActivity = s.now()
	return nil
}

// Append adds a message to the session transcript. Append order is
// conversation order.
func (s *Service) Append(_ context.Context, sessionID string, msg chat.Message) error {
	if sessionID == "" {
		return ErrSessionIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	msg.ID = uuid.NewString()
	msg.SessionID = sessionID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.now().UTC()
	}

	rec.messages = append(rec.messages, msg)
	rec.lastActivity = s.now()
	return nil
}

// Transcript returns a copy of the stored messages for the session.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(rec.messages))
	copy(copied, rec.messages)
	return copied, nil
}

// Persona returns the persona name assigned to the session, if any.
func (s *Service) Persona(sessionID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.sessions[sessionID]; ok {
		return rec.persona
	}
	return ""
}

// EvictStale removes sessions idle longer than maxAge and reports how many
// were dropped. It is driven by an external ticker; nothing here coordinates
// with in-flight turns for the same session id.
func (s *Service) EvictStale(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	evicted := 0
	for id, rec := range s.sessions {
		if rec.lastActivity.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *Service) snapshotLocked(sessionID string, rec *record) chat.Session {
	messages := make([]chat.Message, len(rec.messages))
	copy(messages, rec.messages)
	return chat.Session{
		ID:           sessionID,
		Persona:      rec.persona,
		Messages:     messages,
		LastActivity: rec.lastActivity,
	}
}
