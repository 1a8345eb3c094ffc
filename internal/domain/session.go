package domain

import "time"

// WorkflowState type - member of the admin workflow state machine
type WorkflowState string

const (
	// StateAwaitingCategory - create flow: waiting for a category choice
	StateAwaitingCategory WorkflowState = "awaiting_category"
	// StateAwaitingTitle - create flow: waiting for the card title
	StateAwaitingTitle WorkflowState = "awaiting_title"
	// StateAwaitingDescription - create flow: waiting for the description
	StateAwaitingDescription WorkflowState = "awaiting_description"
	// StateAwaitingMedia - waiting for the demo video reference
	StateAwaitingMedia WorkflowState = "awaiting_media"
	// StateAwaitingText - edit flow: waiting for replacement title/description
	StateAwaitingText WorkflowState = "awaiting_text"
	// StateConfirming - create flow: waiting for confirm/cancel
	StateConfirming WorkflowState = "confirming"
)

// WorkflowKind type - which guided workflow the session is driving
type WorkflowKind string

const (
	// WorkflowCreate - full card creation flow
	WorkflowCreate WorkflowKind = "create"
	// WorkflowEditVideo - replace the video of an existing card
	WorkflowEditVideo WorkflowKind = "edit_video"
	// WorkflowEditTitle - replace the title of an existing card
	WorkflowEditTitle WorkflowKind = "edit_title"
	// WorkflowEditDescription - replace the description of an existing card
	WorkflowEditDescription WorkflowKind = "edit_description"
)

// CardDraft struct - Partial card accumulated across workflow steps
type CardDraft struct {
	Category    Category
	Title       string
	Description string
	VideoID     string
}

// AdminSession struct - Bounded-lifetime state of one admin's workflow.
// At most one session exists per admin; starting a new workflow overwrites it.
type AdminSession struct {
	UserID       int64
	Workflow     WorkflowKind
	State        WorkflowState
	CardID       int // target card for edit workflows, 0 for create
	Draft        CardDraft
	LastActivity time.Time
	timeout      time.Duration
}

// NewAdminSession creates a session positioned at the first state of the
// given workflow with a fresh activity stamp
func NewAdminSession(userID int64, kind WorkflowKind, cardID int, timeout time.Duration) *AdminSession {
	return &AdminSession{
		UserID:       userID,
		Workflow:     kind,
		State:        initialState(kind),
		CardID:       cardID,
		LastActivity: time.Now(),
		timeout:      timeout,
	}
}

func initialState(kind WorkflowKind) WorkflowState {
	switch kind {
	case WorkflowEditVideo:
		return StateAwaitingMedia
	case WorkflowEditTitle, WorkflowEditDescription:
		return StateAwaitingText
	default:
		return StateAwaitingCategory
	}
}

// IsExpired checks if the session has exceeded the configured idle timeout
func (s *AdminSession) IsExpired() bool {
	return time.Since(s.LastActivity) > s.timeout
}

// Touch stamps the session as active now. Only accepted transitions touch
// the session; rejected input leaves the expiry clock running.
func (s *AdminSession) Touch() {
	s.LastActivity = time.Now()
}
