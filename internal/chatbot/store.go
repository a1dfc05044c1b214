package chatbot

import (
	"sync"
	"time"
)

// maxTurns bounds a conversation's history; the oldest turns are dropped
// first.
const maxTurns = 10

// ContextStore holds conversation state keyed by (userID, sessionID). The
// map is safe for concurrent access across distinct keys; concurrent
// messages for the same key must be serialized by the caller, as the engine
// mutates the conversation it returns.
type ContextStore struct {
	mu    sync.RWMutex
	convs map[string]*Conversation
}

// NewContextStore creates an empty store.
func NewContextStore() *ContextStore {
	return &ContextStore{convs: make(map[string]*Conversation)}
}

func key(userID, sessionID string) string {
	return userID + "\x00" + sessionID
}

// Get returns the conversation for the pair, creating it lazily on first
// use.
func (s *ContextStore) Get(userID, sessionID string) *Conversation {
	k := key(userID, sessionID)

	s.mu.RLock()
	conv, ok := s.convs[k]
	s.mu.RUnlock()
	if ok {
		return conv
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.convs[k]; ok {
		return conv
	}
	now := time.Now()
	conv = &Conversation{
		UserID:    userID,
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.convs[k] = conv
	return conv
}

// Peek returns the conversation without creating one.
func (s *ContextStore) Peek(userID, sessionID string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.convs[key(userID, sessionID)]
	return conv, ok
}

// Clear removes the conversation for the pair.
func (s *ContextStore) Clear(userID, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, key(userID, sessionID))
}

// Count returns the number of live conversations.
func (s *ContextStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.convs)
}

// AppendTurn appends a turn to the conversation, trimming the history to
// maxTurns FIFO.
func AppendTurn(conv *Conversation, role, message, intent string) {
	conv.Turns = append(conv.Turns, Turn{
		Role:      role,
		Message:   message,
		Intent:    intent,
		Timestamp: time.Now(),
	})
	if len(conv.Turns) > maxTurns {
		conv.Turns = conv.Turns[len(conv.Turns)-maxTurns:]
	}
	conv.UpdatedAt = time.Now()
}
