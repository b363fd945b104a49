package handlers

import (
	"github.com/gofiber/fiber/v2"

	"careerpath/careerpath-api/internal/models"
	"careerpath/careerpath-api/internal/services"
)

type ChatHandler struct {
	chat services.ChatService
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{
		chat: chat,
	}
}

// HandleChat handles POST /chat.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	response := h.chat.Respond(c.UserContext(), &req)

	return c.JSON(response)
}
