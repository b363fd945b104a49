package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"careerpath/careerpath-api/internal/models"
	"careerpath/careerpath-api/internal/repositories"
)

type ResumeHandler struct {
	resumeRepo repositories.ResumeRepository
}

func NewResumeHandler(resumeRepo repositories.ResumeRepository) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo: resumeRepo,
	}
}

// HandleListResumes handles GET /resumes: the most recent parses, newest
// first. Raw text and stored profiles are omitted from the listing.
func (h *ResumeHandler) HandleListResumes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	resumes, err := h.resumeRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list resumes",
		})
	}

	items := make([]fiber.Map, 0, len(resumes))
	for _, resume := range resumes {
		items = append(items, fiber.Map{
			"id":         resume.ID.String(),
			"file_name":  resume.OriginalFileName,
			"mode":       resume.Mode,
			"created_at": resume.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"total":   len(items),
		"resumes": items,
	})
}

// HandleGetResume handles GET /resumes/:id.
func (h *ResumeHandler) HandleGetResume(c *fiber.Ctx) error {
	idParam := c.Params("id")
	resumeID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	resume, err := h.resumeRepo.FindByID(resumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load resume",
		})
	}

	var profile models.ResumeProfile
	if err := json.Unmarshal([]byte(resume.ProfileJSON), &profile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to decode stored profile",
		})
	}
	profile.Normalize()

	return c.JSON(models.ResumeResponse{
		ID:           resume.ID.String(),
		FileName:     resume.OriginalFileName,
		ParsedResume: &profile,
		Mode:         models.ParseMode(resume.Mode),
		CreatedAt:    resume.CreatedAt.Format(time.RFC3339),
	})
}
