package application

import (
	"strings"
	"time"

	"cardshop-bot/internal/domain"
	"cardshop-bot/internal/ports/output"
	"cardshop-bot/pkg/sanitize"

	"github.com/sirupsen/logrus"
)

// AdminWorkflowService struct - Application service driving the multi-step
// admin create/edit workflows over the session store. Each Advance call
// validates the just-received input before moving the state machine;
// rejected input re-prompts without advancing and without refreshing the
// idle-timeout clock.
type AdminWorkflowService struct {
	sessions output.SessionStore
	repo     output.CardRepository
	audit    output.AuditLogger
	timeout  time.Duration
}

// NewAdminWorkflowService func - Creates new admin workflow service
func NewAdminWorkflowService(sessions output.SessionStore, repo output.CardRepository, audit output.AuditLogger, timeout time.Duration) *AdminWorkflowService {
	return &AdminWorkflowService{
		sessions: sessions,
		repo:     repo,
		audit:    audit,
		timeout:  timeout,
	}
}

// Start opens a workflow session, overwriting any active one (no queuing).
// Edit workflows verify the target card up front.
func (s *AdminWorkflowService) Start(userID int64, kind domain.WorkflowKind, cardID int) (*domain.WorkflowResult, error) {
	if kind != domain.WorkflowCreate {
		if _, err := s.repo.GetCard(cardID); err != nil {
			return nil, err
		}
	}

	session := domain.NewAdminSession(userID, kind, cardID, s.timeout)
	if err := s.sessions.PutSession(session); err != nil {
		return nil, err
	}

	logrus.Infof("Workflow %s started for admin %d", kind, userID)
	return &domain.WorkflowResult{State: session.State, Prompt: promptFor(session)}, nil
}

// Advance feeds one admin input into the active session
func (s *AdminWorkflowService) Advance(userID int64, msg *domain.IncomingMessage) (*domain.WorkflowResult, error) {
	session, err := s.sessions.GetSession(userID)
	if err != nil {
		// Expiry discards the session and its draft; the caller re-prompts
		logrus.Infof("Workflow session expired for admin %d", userID)
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoActiveSession
	}

	switch session.State {
	case domain.StateAwaitingCategory:
		return s.advanceCategory(session, msg)
	case domain.StateAwaitingTitle:
		return s.advanceTitle(session, msg)
	case domain.StateAwaitingDescription:
		return s.advanceDescription(session, msg)
	case domain.StateAwaitingMedia:
		return s.advanceMedia(session, msg)
	case domain.StateAwaitingText:
		return s.advanceEditText(session, msg)
	case domain.StateConfirming:
		return s.advanceConfirm(session, msg)
	default:
		return nil, domain.ErrNoActiveSession
	}
}

func (s *AdminWorkflowService) advanceCategory(session *domain.AdminSession, msg *domain.IncomingMessage) (*domain.WorkflowResult, error) {
	category := domain.Category(strings.ToLower(strings.TrimSpace(msg.Text)))
	if !category.IsValid() {
		return reprompt(session, domain.PromptInvalidCategory), nil
	}

	session.Draft.Category = category
	session.State = domain.StateAwaitingTitle
	if err := s.sessions.PutSession(session); err != nil {
		return nil, err
	}
	return &domain.WorkflowResult{State: session.State, Prompt: domain.PromptEnterTitle}, nil
}

func (s *AdminWorkflowService) advanceTitle(session *domain.AdminSession, msg *domain.IncomingMessage) (*domain.WorkflowResult, error) {
	title := sanitize.Title(msg.Text, domain.MaxTitleLength)
	if title == "" {
		return reprompt(session, domain.PromptInvalidInput), nil
	}

	session.Draft.Title = title
	session.State = domain.StateAwaitingDescription
	if err := s.sessions.PutSession(session); err != nil {
		return nil, err
	}
	return &domain.WorkflowResult{State: session.State, Prompt: domain.PromptEnterDescription}, nil
}

func (s *AdminWorkflowService) advanceDescription(session *domain.AdminSession, msg *domain.IncomingMessage) (*domain.WorkflowResult, error) {
	description := sanitize.Description(msg.Text, domain.MaxDescriptionLength)
	if description == "" {
		return reprompt(session, domain.PromptInvalidInput), nil
	}

	session.Draft.Description = description
	session.State = domain.StateAwaitingMedia
	if err := s.sessions.PutSession(session); err != nil {
		return nil, err
	}
	return &domain.WorkflowResult{State: session.State, Prompt: domain.PromptSendVideo}, nil
}

func (s *AdminWorkflowService) advanceMedia(session *domain.AdminSession, msg *domain.IncomingMessage) (*domain.WorkflowResult, error) {
	if msg.Video == nil || msg.Video.FileID == "" || !sanitize.ValidVideoFilename(msg.Video.FileName) {
		return reprompt(session, domain.PromptInvalidInput), nil
	}

	if session.Workflow == domain.WorkflowEditVideo {
		card, err := s.repo.GetCard(session.CardID)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdateCardVideo(session.CardID, msg.Video.FileID); err != nil {
			return nil, err
		}
		s.audit.VideoUpdated(session.UserID, session.CardID, card.Title)
		s.sessions.DeleteSession(session.UserID)
		return &domain.WorkflowResult{Prompt: domain.PromptSaved, CardID: session.CardID}, nil
	}

	session.Draft.VideoID = msg.Video.FileID
	session.State = domain.StateConfirming
	if err := s.sessions.PutSession(session); err != nil {
		return nil, err
	}
	return &domain.WorkflowResult{State: session.State, Prompt: domain.PromptConfirm}, nil
}

func (s *AdminWorkflowService) advanceEditText(session *domain.AdminSession, msg *domain.IncomingMessage) (*domain.WorkflowResult, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return reprompt(session, domain.PromptInvalidInput), nil
	}

	card, err := s.repo.GetCard(session.CardID)
	if err != nil {
		return nil, err
	}

	switch session.Workflow {
	case domain.WorkflowEditTitle:
		if err := s.repo.UpdateCardTitle(session.CardID, msg.Text); err != nil {
			return nil, err
		}
		updated, err := s.repo.GetCard(session.CardID)
		if err != nil {
			return nil, err
		}
		s.audit.TitleUpdated(session.UserID, session.CardID, card.Title, updated.Title)

	case domain.WorkflowEditDescription:
		if err := s.repo.UpdateCardDescription(session.CardID, msg.Text); err != nil {
			return nil, err
		}
		s.audit.DescriptionUpdated(session.UserID, session.CardID, card.Title)

	default:
		return nil, domain.ErrNoActiveSession
	}

	s.sessions.DeleteSession(session.UserID)
	return &domain.WorkflowResult{Prompt: domain.PromptSaved, CardID: session.CardID}, nil
}

func (s *AdminWorkflowService) advanceConfirm(session *domain.AdminSession, msg *domain.IncomingMessage) (*domain.WorkflowResult, error) {
	switch strings.ToLower(strings.TrimSpace(msg.Text)) {
	case "confirm":
		id, err := s.repo.CreateCard(session.Draft.Category, session.Draft.Title, session.Draft.Description, session.Draft.VideoID)
		if err != nil {
			// Session stays at Confirming so the admin can retry
			return nil, err
		}
		card, _ := s.repo.GetCard(id)
		title := session.Draft.Title
		if card != nil {
			title = card.Title
		}
		s.audit.CardAdded(session.UserID, id, title, string(session.Draft.Category))
		s.sessions.DeleteSession(session.UserID)
		return &domain.WorkflowResult{Prompt: domain.PromptSaved, CardID: id}, nil

	case "cancel":
		s.sessions.DeleteSession(session.UserID)
		return &domain.WorkflowResult{Prompt: domain.PromptCancelled}, nil

	default:
		return reprompt(session, domain.PromptInvalidInput), nil
	}
}

// Cancel discards the active session and every accumulated draft field.
// Identical in observable effect to a timeout-based discard.
func (s *AdminWorkflowService) Cancel(userID int64) error {
	return s.sessions.DeleteSession(userID)
}

// Peek returns the current workflow state without touching the session,
// or nil when no live session exists
func (s *AdminWorkflowService) Peek(userID int64) (*domain.WorkflowState, error) {
	session, err := s.sessions.GetSession(userID)
	if err != nil || session == nil {
		return nil, nil
	}
	state := session.State
	return &state, nil
}

// DeleteCard removes a card (and its reviews) on behalf of an admin
func (s *AdminWorkflowService) DeleteCard(adminID int64, cardID int) error {
	card, err := s.repo.GetCard(cardID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCard(cardID); err != nil {
		return err
	}
	s.audit.CardDeleted(adminID, cardID, card.Title)
	return nil
}

// reprompt reports the current state again. The session is deliberately not
// put back, so rejected input does not refresh the idle-timeout clock.
func reprompt(session *domain.AdminSession, prompt domain.Prompt) *domain.WorkflowResult {
	return &domain.WorkflowResult{State: session.State, Prompt: prompt}
}

func promptFor(session *domain.AdminSession) domain.Prompt {
	switch session.State {
	case domain.StateAwaitingCategory:
		return domain.PromptChooseCategory
	case domain.StateAwaitingTitle:
		return domain.PromptEnterTitle
	case domain.StateAwaitingDescription:
		return domain.PromptEnterDescription
	case domain.StateAwaitingMedia:
		return domain.PromptSendVideo
	case domain.StateAwaitingText:
		if session.Workflow == domain.WorkflowEditTitle {
			return domain.PromptEnterTitle
		}
		return domain.PromptEnterDescription
	default:
		return domain.PromptConfirm
	}
}
