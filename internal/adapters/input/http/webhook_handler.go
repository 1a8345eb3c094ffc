package http

import (
	"cardshop-bot/internal/domain"
	"cardshop-bot/internal/ports/input"
	"cardshop-bot/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// WebhookHandler struct - Primary/Driving adapter for the bot webhook
type WebhookHandler struct {
	service   input.BotService
	validator validator.Validator
}

// NewWebhookHandler func - Creates new webhook handler
func NewWebhookHandler(service input.BotService) *WebhookHandler {
	return &WebhookHandler{
		service:   service,
		validator: validator.New(),
	}
}

// HandleWebhook func - Handles one inbound update from the chat platform.
// This is the single error boundary between the transport and the core:
// user-level mistakes never surface here, and a failing update is
// acknowledged anyway so the platform does not retry it forever.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	var request UpdateRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := h.validator.ValidateStruct(request); err != nil {
		msg := ResponseBody{
			Status: BadRequest,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	if err := h.service.HandleUpdate(h.toDomain(request)); err != nil {
		logrus.Errorf("Failed to handle update %d: %v", request.UpdateID, err)
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// toDomain - Converts the webhook DTO into transport-neutral domain values
func (h *WebhookHandler) toDomain(request UpdateRequest) domain.Update {
	update := domain.Update{UpdateID: request.UpdateID}
	if request.Message == nil {
		return update
	}

	msg := &domain.IncomingMessage{
		MessageID: request.Message.MessageID,
		From: domain.UserRef{
			ID:       request.Message.From.ID,
			Username: request.Message.From.Username,
		},
		ChatID: request.Message.Chat.ID,
		Text:   request.Message.Text,
	}
	if request.Message.Video != nil {
		msg.Video = &domain.VideoRef{
			FileID:   request.Message.Video.FileID,
			FileName: request.Message.Video.FileName,
		}
	}
	update.Message = msg
	return update
}
