package input

import "cardshop-bot/internal/domain"

// AdminWorkflowService interface - Input port (use case)
// Multi-step guided create/edit workflows for administrators
type AdminWorkflowService interface {
	// Start opens a workflow session for the admin, overwriting any active
	// one. cardID is the edit target and must be 0 for WorkflowCreate.
	Start(userID int64, kind domain.WorkflowKind, cardID int) (*domain.WorkflowResult, error)

	// Advance feeds one input into the active session. Invalid input
	// re-prompts without changing state; an idle session past its timeout
	// is discarded and reported via domain.ErrSessionExpired.
	Advance(userID int64, msg *domain.IncomingMessage) (*domain.WorkflowResult, error)

	// Cancel discards the active session and all accumulated draft data
	Cancel(userID int64) error

	// Peek returns the current state without touching the session,
	// or nil when no live session exists
	Peek(userID int64) (*domain.WorkflowState, error)

	// DeleteCard removes a card and its reviews on behalf of an admin
	DeleteCard(adminID int64, cardID int) error
}
