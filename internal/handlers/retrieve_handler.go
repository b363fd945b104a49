package handlers

import (
	"github.com/gofiber/fiber/v2"

	"careerpath/careerpath-api/internal/models"
	"careerpath/careerpath-api/internal/services"
)

type RetrieveHandler struct {
	knowledge services.KnowledgeService
}

func NewRetrieveHandler(knowledge services.KnowledgeService) *RetrieveHandler {
	return &RetrieveHandler{
		knowledge: knowledge,
	}
}

// HandleRetrieve handles POST /retrieve: knowledge-base search by explicit
// query or by a query derived from the supplied profile.
func (h *RetrieveHandler) HandleRetrieve(c *fiber.Ctx) error {
	var req models.RetrieveRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Query == "" && req.UserProfile == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Provide either query or user_profile",
		})
	}

	if h.knowledge == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Knowledge base is not configured",
		})
	}

	result, err := h.knowledge.Retrieve(c.UserContext(), req.Query, req.UserProfile, req.TopK)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve from knowledge base",
		})
	}

	return c.JSON(result)
}
