package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"careerpath/careerpath-api/internal/models"
)

// ExtractorService parses raw resume text into a profile. The model path
// is attempted first when a client is configured; any failure there -
// transport error, malformed JSON, implausible output - silently degrades
// to the deterministic extractor. A caller never sees a parse error, only
// the mode field telling which path produced the result.
type ExtractorService interface {
	Parse(ctx context.Context, rawText string) (*models.ResumeProfile, models.ParseMode)
}

type extractorService struct {
	model         ModelClient
	fieldExt      *FieldExtractor
	promptBuilder *PromptBuilder
	timeout       time.Duration
}

func NewExtractorService(model ModelClient, timeout time.Duration) ExtractorService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &extractorService{
		model:         model,
		fieldExt:      NewFieldExtractor(),
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
	}
}

// Parse implements ExtractorService.
func (e *extractorService) Parse(ctx context.Context, rawText string) (*models.ResumeProfile, models.ParseMode) {
	if e.model != nil {
		profile, err := e.extractWithModel(ctx, rawText)
		if err == nil {
			return profile, models.ModeModel
		}
		log.Printf("⚠️  Model extraction failed, falling back to local extractor: %v\n", err)
	}

	return e.fieldExt.Extract(rawText), models.ModeLocal
}

func (e *extractorService) extractWithModel(ctx context.Context, rawText string) (*models.ResumeProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := e.promptBuilder.BuildResumeParsePrompt(rawText)

	response, err := e.model.GenerateText(ctx, prompt, GenerateOptions{
		Temperature: 0.1,
		TopP:        0.9,
		MaxTokens:   4096,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate extraction: %w", err)
	}

	var profile models.ResumeProfile
	if err := parseJSONResponse(response, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	if err := validatePlausibility(&profile); err != nil {
		return nil, fmt.Errorf("implausible model output: %w", err)
	}

	profile.Normalize()
	return &profile, nil
}

// placeholderTokens mark model output that echoed the prompt template
// instead of filling it in.
var placeholderTokens = []string{
	"full name",
	"extract",
	"placeholder",
	"example",
	"your name",
	"candidate name",
	"john doe",
	"jane doe",
	"<",
	">",
	"[",
	"]",
	"n/a",
}

func containsPlaceholder(s string) bool {
	lower := strings.ToLower(s)
	for _, token := range placeholderTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// validatePlausibility treats the model as an untrusted collaborator:
// output that looks like an unfilled template is rejected so it never
// reaches the caller. Pure predicate, no I/O.
func validatePlausibility(profile *models.ResumeProfile) error {
	if containsPlaceholder(profile.PersonalInfo.Name) {
		return fmt.Errorf("name %q looks like placeholder text", profile.PersonalInfo.Name)
	}

	if len(profile.Skills.Technical) > 0 {
		first := profile.Skills.Technical[0]
		if len(first) > 50 {
			return fmt.Errorf("first technical skill looks like a description, not a skill name")
		}
		if containsPlaceholder(first) {
			return fmt.Errorf("first technical skill %q looks like placeholder text", first)
		}
	}

	if math.IsNaN(profile.TotalExperienceYears) || math.IsInf(profile.TotalExperienceYears, 0) {
		return fmt.Errorf("totalExperienceYears is not a finite number")
	}

	return nil
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown
// or other formatting around the payload.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
