package handlers

import (
	"github.com/gofiber/fiber/v2"

	"careerpath/careerpath-api/internal/models"
	"careerpath/careerpath-api/internal/services"
)

type ParseHandler struct {
	extractor services.ExtractorService
}

func NewParseHandler(extractor services.ExtractorService) *ParseHandler {
	return &ParseHandler{
		extractor: extractor,
	}
}

// HandleParseResume handles POST /parse-resume. Well-formed input never
// gets an error response: model failures degrade to the local extractor
// and only the mode field reports which path ran.
func (h *ParseHandler) HandleParseResume(c *fiber.Ctx) error {
	var req models.ParseResumeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ResumeText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_text is required",
		})
	}

	profile, mode := h.extractor.Parse(c.UserContext(), req.ResumeText)

	return c.JSON(models.ParseResumeResponse{
		ResumeText:   req.ResumeText,
		ParsedResume: profile,
		Mode:         mode,
	})
}
