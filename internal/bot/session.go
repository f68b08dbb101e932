package bot

import (
	"sync"
)

// State is the position of a chat inside the task-creation dialogue.
type State int

const (
	StateIdle State = iota
	StateAwaitingName
	StateAwaitingDeadline
)

// String returns the string representation of the dialogue state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingName:
		return "awaiting_name"
	case StateAwaitingDeadline:
		return "awaiting_deadline"
	default:
		return "unknown"
	}
}

// Session holds the in-progress creation state for one chat.
type Session struct {
	State State
	Name  string
}

// SessionStore maps chat identity to dialogue state. It is owned by the
// bot only; one chat's pending dialogue is invisible to every other chat.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]Session),
	}
}

// Get returns the session for the chat, defaulting to Idle.
func (s *SessionStore) Get(chatID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions[chatID]
}

// Put stores the session for the chat.
func (s *SessionStore) Put(chatID int64, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[chatID] = session
}

// Clear resets the chat back to Idle and drops any collected input.
func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, chatID)
}
