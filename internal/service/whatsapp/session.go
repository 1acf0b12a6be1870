package whatsapp

import (
	"sync"

	"github.com/mamadbah2/henhouse/pkg/clients/anthropic"
)

// maxHistory bounds the turns kept per sender for the translator.
const maxHistory = 8

// SessionManager keeps a short translation history per WhatsApp sender.
type SessionManager struct {
	sessions map[string][]anthropic.Message
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string][]anthropic.Message),
	}
}

// History returns a copy of the sender's recent turns.
func (sm *SessionManager) History(userID string) []anthropic.Message {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	turns := sm.sessions[userID]
	out := make([]anthropic.Message, len(turns))
	copy(out, turns)
	return out
}

// Record appends one user/assistant exchange, dropping the oldest turns past the limit.
func (sm *SessionManager) Record(userID, input, answer string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	turns := append(sm.sessions[userID],
		anthropic.Message{Role: "user", Content: input},
		anthropic.Message{Role: "assistant", Content: answer},
	)
	if len(turns) > maxHistory {
		turns = turns[len(turns)-maxHistory:]
	}
	sm.sessions[userID] = turns
}

// ClearSession removes a sender's history.
func (sm *SessionManager) ClearSession(userID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, userID)
}
