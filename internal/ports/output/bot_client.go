package output

import "cardshop-bot/internal/domain"

// BotClient interface - Output port
// Defines what the application needs to talk back through the chat platform
type BotClient interface {
	// SendMessage delivers a plain-text reply to a chat
	SendMessage(reply domain.Reply) error
}
