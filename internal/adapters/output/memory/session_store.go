package memory

import (
	"sync"
	"time"

	"cardshop-bot/internal/domain"
	"cardshop-bot/internal/ports/output"
)

// Compile-time check to ensure SessionStore implements the output port
var _ output.SessionStore = (*SessionStore)(nil)

// SessionStore struct - Output adapter for in-memory admin workflow sessions.
// Uses sync.Map for thread-safe concurrent access keyed by admin user id.
// Sessions are never persisted; a restart resets them by design.
type SessionStore struct {
	sessions sync.Map
	timeout  time.Duration
}

// NewSessionStore creates an in-memory session store with the given idle
// timeout for new sessions
func NewSessionStore(timeout time.Duration) *SessionStore {
	return &SessionStore{timeout: timeout}
}

// Timeout returns the configured session idle timeout.
// This value is used when creating new workflow sessions.
func (m *SessionStore) Timeout() time.Duration {
	return m.timeout
}

// GetSession retrieves the workflow session for an admin user.
// Returns nil if no session exists. A session past its idle timeout is
// discarded on access (lazy cleanup) and reported via
// domain.ErrSessionExpired; its draft data is gone for good. Unlike a put,
// a get does not refresh the session - only accepted workflow transitions
// extend its life.
func (m *SessionStore) GetSession(userID int64) (*domain.AdminSession, error) {
	value, exists := m.sessions.Load(userID)
	if !exists {
		return nil, nil
	}

	session, ok := value.(*domain.AdminSession)
	if !ok {
		m.sessions.Delete(userID)
		return nil, nil
	}

	if session.IsExpired() {
		m.sessions.Delete(userID)
		return nil, domain.ErrSessionExpired
	}

	return session, nil
}

// PutSession creates or overwrites the session for its user and stamps it
// as active now. An admin has at most one live session; starting a new
// workflow replaces the old one without queuing.
func (m *SessionStore) PutSession(session *domain.AdminSession) error {
	session.Touch()
	m.sessions.Store(session.UserID, session)
	return nil
}

// DeleteSession removes the session for a user.
// This operation is idempotent - deleting a non-existent session does not
// return an error.
func (m *SessionStore) DeleteSession(userID int64) error {
	m.sessions.Delete(userID)
	return nil
}
