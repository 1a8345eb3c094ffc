package http

import (
	"cardshop-bot/internal/ports/output"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for operational endpoints
type HTTPHandler struct {
	repo output.CardRepository
}

// New func - Creates new HTTP handler
func New(repo output.CardRepository) *HTTPHandler {
	return &HTTPHandler{repo: repo}
}

// HealthCheck func - Verifies the catalog store is readable
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	cards, err := hdl.repo.GetAllCards()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: fiber.Map{"cards": len(cards)}})
}
