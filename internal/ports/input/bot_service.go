package input

import "cardshop-bot/internal/domain"

// BotService interface - Input port (use case)
// Defines what the application does with inbound webhook updates
type BotService interface {
	// HandleUpdate routes one inbound update: rate-limit gate, command
	// dispatch, workflow input forwarding. Transport failures aside, it
	// never returns user mistakes as errors - those become replies.
	HandleUpdate(update domain.Update) error
}
