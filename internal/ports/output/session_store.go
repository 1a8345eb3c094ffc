package output

import "cardshop-bot/internal/domain"

// SessionStore interface - Output port
// Defines what the application needs for managing admin workflow sessions.
// Sessions are process-local and lost on restart by design.
// Implementations must be thread-safe for concurrent access.
type SessionStore interface {
	// GetSession retrieves the workflow session for an admin user.
	// Returns nil if no session exists. A session past its idle timeout is
	// discarded on access (lazy cleanup) and reported via
	// domain.ErrSessionExpired. GetSession never extends the session's
	// life - only accepted workflow transitions do, via PutSession.
	GetSession(userID int64) (*domain.AdminSession, error)

	// PutSession creates or overwrites the session for its user and stamps
	// it as active now. An admin has at most one session.
	PutSession(session *domain.AdminSession) error

	// DeleteSession discards the session for a user. Idempotent.
	DeleteSession(userID int64) error
}
