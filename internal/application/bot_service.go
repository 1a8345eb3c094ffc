package application

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cardshop-bot/internal/domain"
	"cardshop-bot/internal/ports/input"
	"cardshop-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// BotService struct - Application service routing inbound updates to the
// catalog and workflow use cases. Non-admin traffic passes the generic
// rate-limit gate first; user mistakes become replies, never errors.
type BotService struct {
	catalog        input.CatalogService
	workflow       input.AdminWorkflowService
	generalLimiter output.RateLimiter
	audit          output.AuditLogger
	client         output.BotClient
	admins         map[int64]bool
}

// NewBotService func - Creates new bot service
func NewBotService(
	catalog input.CatalogService,
	workflow input.AdminWorkflowService,
	generalLimiter output.RateLimiter,
	audit output.AuditLogger,
	client output.BotClient,
	adminIDs []int64,
) *BotService {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &BotService{
		catalog:        catalog,
		workflow:       workflow,
		generalLimiter: generalLimiter,
		audit:          audit,
		client:         client,
		admins:         admins,
	}
}

// HandleUpdate func - Use case: Route one inbound webhook update
func (s *BotService) HandleUpdate(update domain.Update) error {
	if update.Message == nil {
		return nil
	}
	msg := update.Message
	isAdmin := s.admins[msg.From.ID]

	logrus.Infof("Received update: user=%d admin=%t text=%q video=%t",
		msg.From.ID, isAdmin, msg.Text, msg.Video != nil)

	// Admins bypass the generic gate; everyone else is counted per message
	if !isAdmin {
		if allowed, retry := s.generalLimiter.Allow(msg.From.ID); !allowed {
			s.audit.RateLimitBlocked(msg.From.ID, fmt.Sprintf("message blocked, retry_in=%s", retry))
			return nil
		}
	}

	text := strings.TrimSpace(msg.Text)
	if strings.HasPrefix(text, "/") {
		return s.reply(msg.ChatID, s.handleCommand(msg, text, isAdmin))
	}

	// Free-form input only means something inside an admin workflow
	if isAdmin {
		return s.reply(msg.ChatID, s.advanceWorkflow(msg))
	}

	return s.reply(msg.ChatID, "Please use the catalog commands. Type /help to see them.")
}

// handleCommand - Command routing
func (s *BotService) handleCommand(msg *domain.IncomingMessage, text string, isAdmin bool) string {
	parts := strings.Fields(text)
	command := strings.ToLower(parts[0])

	switch command {
	case "/start", "/help":
		return s.helpText(isAdmin)

	case "/cards":
		if len(parts) < 2 {
			return "Usage: /cards <" + categoryList() + ">"
		}
		return s.listCards(domain.Category(strings.ToLower(parts[1])))

	case "/card":
		id, ok := parseID(parts)
		if !ok {
			return "Usage: /card <id>"
		}
		return s.showCard(id)

	case "/review":
		if len(parts) < 3 {
			return "Usage: /review <id> <rating 1-5> [comment]"
		}
		return s.leaveReview(msg.From.ID, parts)

	case "/additem":
		if !isAdmin {
			return "This command is for administrators."
		}
		return s.startWorkflow(msg.From.ID, domain.WorkflowCreate, 0)

	case "/editvideo", "/edittitle", "/editdesc":
		if !isAdmin {
			return "This command is for administrators."
		}
		id, ok := parseID(parts)
		if !ok {
			return "Usage: " + command + " <id>"
		}
		return s.startWorkflow(msg.From.ID, editKind(command), id)

	case "/delitem":
		if !isAdmin {
			return "This command is for administrators."
		}
		id, ok := parseID(parts)
		if !ok {
			return "Usage: /delitem <id>"
		}
		if err := s.workflow.DeleteCard(msg.From.ID, id); err != nil {
			return userFacingError(err)
		}
		return fmt.Sprintf("Card %d deleted.", id)

	case "/cancel":
		if !isAdmin {
			return "This command is for administrators."
		}
		if err := s.workflow.Cancel(msg.From.ID); err != nil {
			return userFacingError(err)
		}
		return "Workflow cancelled."

	default:
		return fmt.Sprintf("Unknown command: %s\nType /help for available commands", command)
	}
}

func (s *BotService) listCards(category domain.Category) string {
	summaries, err := s.catalog.ListCards(category)
	if err != nil {
		return userFacingError(err)
	}
	if len(summaries) == 0 {
		return "No cards in this category yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cards in %s:\n", category)
	for _, sum := range summaries {
		fmt.Fprintf(&b, "%d. %s\n", sum.ID, sum.Title)
	}
	b.WriteString("Use /card <id> to view one.")
	return b.String()
}

func (s *BotService) showCard(id int) string {
	card, err := s.catalog.GetCard(id)
	if err != nil {
		return userFacingError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", card.Title, card.Description)
	if len(card.Reviews) > 0 {
		fmt.Fprintf(&b, "Rating: %.1f/5 (%d reviews)\n", card.AverageRating(), len(card.Reviews))
	}
	b.WriteString("Leave a review with /review " + strconv.Itoa(id) + " <rating 1-5> [comment]")
	return b.String()
}

func (s *BotService) leaveReview(userID int64, parts []string) string {
	cardID, err := strconv.Atoi(parts[1])
	if err != nil {
		return "Usage: /review <id> <rating 1-5> [comment]"
	}
	rating, err := strconv.Atoi(parts[2])
	if err != nil {
		return "Rating must be a number between 1 and 5."
	}
	comment := strings.Join(parts[3:], " ")

	if err := s.catalog.LeaveReview(cardID, userID, rating, comment); err != nil {
		return userFacingError(err)
	}
	return "Thanks, your review has been saved!"
}

func (s *BotService) startWorkflow(userID int64, kind domain.WorkflowKind, cardID int) string {
	result, err := s.workflow.Start(userID, kind, cardID)
	if err != nil {
		return userFacingError(err)
	}
	return promptText(result)
}

func (s *BotService) advanceWorkflow(msg *domain.IncomingMessage) string {
	result, err := s.workflow.Advance(msg.From.ID, msg)
	if err != nil {
		return userFacingError(err)
	}
	return promptText(result)
}

func (s *BotService) helpText(isAdmin bool) string {
	help := "Available commands:\n" +
		"/cards <" + categoryList() + "> - Browse a category\n" +
		"/card <id> - View a card\n" +
		"/review <id> <rating 1-5> [comment] - Leave a review\n" +
		"/help - Show this message"
	if isAdmin {
		help += "\n\nAdmin commands:\n" +
			"/additem - Add a new card\n" +
			"/editvideo <id> - Replace a card's video\n" +
			"/edittitle <id> - Replace a card's title\n" +
			"/editdesc <id> - Replace a card's description\n" +
			"/delitem <id> - Delete a card\n" +
			"/cancel - Abort the current workflow"
	}
	return help
}

// reply sends the text back through the bot client. Delivery problems are
// logged; they must not bubble into the webhook response.
func (s *BotService) reply(chatID int64, text string) error {
	if text == "" {
		return nil
	}
	if err := s.client.SendMessage(domain.Reply{ChatID: chatID, Text: text}); err != nil {
		logrus.Errorf("Failed to send reply to chat %d: %v", chatID, err)
	}
	return nil
}

// userFacingError maps the error taxonomy onto reply text
func userFacingError(err error) string {
	var rateErr *domain.RateLimitError
	switch {
	case errors.As(err, &rateErr):
		return fmt.Sprintf("You are doing that too often. Try again in %d seconds.", int(rateErr.RetryAfter.Seconds())+1)
	case errors.Is(err, domain.ErrDuplicateReview):
		return "You have already reviewed this card."
	case errors.Is(err, domain.ErrInvalidRating):
		return "Rating must be between 1 and 5."
	case errors.Is(err, domain.ErrInvalidCategory):
		return "Unknown category. Choose one of: " + categoryList()
	case errors.Is(err, domain.ErrCardNotFound):
		return "This card is no longer available."
	case errors.Is(err, domain.ErrSessionExpired):
		return "Your session expired. Start over with /additem or an edit command."
	case errors.Is(err, domain.ErrNoActiveSession):
		return "No workflow in progress. Type /help for available commands."
	default:
		logrus.Errorf("Unhandled service error: %v", err)
		return "An error occurred. Please try again."
	}
}

func promptText(result *domain.WorkflowResult) string {
	switch result.Prompt {
	case domain.PromptChooseCategory:
		return "Choose a category: " + categoryList()
	case domain.PromptEnterTitle:
		return "Send the card title."
	case domain.PromptEnterDescription:
		return "Send the card description."
	case domain.PromptSendVideo:
		return "Send the demo video."
	case domain.PromptConfirm:
		return "Reply 'confirm' to save the card or 'cancel' to discard it."
	case domain.PromptInvalidCategory:
		return "Unknown category. Choose one of: " + categoryList()
	case domain.PromptInvalidInput:
		return "That input is not valid for this step, please try again."
	case domain.PromptSaved:
		return fmt.Sprintf("Saved. Card id: %d", result.CardID)
	case domain.PromptCancelled:
		return "Workflow cancelled."
	case domain.PromptExpired:
		return "Your session expired. Start over with /additem or an edit command."
	default:
		return ""
	}
}

func editKind(command string) domain.WorkflowKind {
	switch command {
	case "/edittitle":
		return domain.WorkflowEditTitle
	case "/editdesc":
		return domain.WorkflowEditDescription
	default:
		return domain.WorkflowEditVideo
	}
}

func parseID(parts []string) (int, bool) {
	if len(parts) < 2 {
		return 0, false
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func categoryList() string {
	categories := domain.ValidCategories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, "|")
}
