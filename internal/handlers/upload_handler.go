package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"careerpath/careerpath-api/internal/models"
	"careerpath/careerpath-api/internal/repositories"
	"careerpath/careerpath-api/internal/services"
)

type UploadHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	textExtractor  services.TextExtractor
	extractor      services.ExtractorService
	worker         services.IndexWorker
	maxFileSize    int64
}

func NewUploadHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	textExtractor services.TextExtractor,
	extractor services.ExtractorService,
	worker services.IndexWorker,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		textExtractor:  textExtractor,
		extractor:      extractor,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload: save the file, extract its text,
// parse a profile, persist the result and queue it for indexing.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file uploaded. Send the file in the 'resume' form field.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	resumeText, err := h.textExtractor.ExtractFile(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract text from resume: %v", err),
		})
	}

	profile, mode := h.extractor.Parse(c.UserContext(), resumeText)

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to encode parsed profile",
		})
	}

	resume := models.Resume{
		ID:               uuid.New(),
		FileName:         filename,
		OriginalFileName: file.Filename,
		RawText:          resumeText,
		ProfileJSON:      string(profileJSON),
		Mode:             string(mode),
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.resumeRepo.Create(&resume); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume record: %v", err),
		})
	}

	if h.worker != nil {
		h.worker.EnqueueProfile(resume.ID.String(), profile)
	}

	return c.Status(fiber.StatusCreated).JSON(models.ParseResumeResponse{
		ID:           resume.ID.String(),
		ResumeText:   resumeText,
		ParsedResume: profile,
		Mode:         mode,
	})
}
