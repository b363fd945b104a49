package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"careerpath/careerpath-api/internal/models"
)

// Intent is the detected purpose of a chat message.
type Intent string

const (
	IntentRoadmap       Intent = "roadmap"
	IntentJobMatch      Intent = "job_match"
	IntentSkillGap      Intent = "skill_gap"
	IntentCertification Intent = "certification"
	IntentResume        Intent = "resume"
	IntentInterview     Intent = "interview"
	IntentGeneral       Intent = "general"
)

// intentRules is an ordered keyword cascade, first match wins.
var intentRules = []struct {
	Keywords []string
	Intent   Intent
}{
	{[]string{"roadmap", "plan", "path"}, IntentRoadmap},
	{[]string{"job", "match"}, IntentJobMatch},
	{[]string{"skill", "learn", "gap"}, IntentSkillGap},
	{[]string{"certif"}, IntentCertification},
	{[]string{"resume", "profile", "improve"}, IntentResume},
	{[]string{"interview", "prepare"}, IntentInterview},
}

// DetectIntent classifies a user message by keyword match.
func DetectIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, rule := range intentRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Intent
			}
		}
	}
	return IntentGeneral
}

// ChatService generates career-mentor responses. The model path is used
// when a client is configured; any failure degrades to canned markdown
// templates interpolating the user's profile, never to an error.
type ChatService interface {
	Respond(ctx context.Context, req *models.ChatRequest) *models.ChatResponse
}

type chatService struct {
	model         ModelClient
	knowledge     KnowledgeService
	promptBuilder *PromptBuilder
	timeout       time.Duration
	maxRetries    int
}

func NewChatService(model ModelClient, knowledge KnowledgeService, timeout time.Duration, maxRetries int) ChatService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}
	return &chatService{
		model:         model,
		knowledge:     knowledge,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
		maxRetries:    maxRetries,
	}
}

// Respond implements ChatService.
func (c *chatService) Respond(ctx context.Context, req *models.ChatRequest) *models.ChatResponse {
	intent := DetectIntent(req.Message)

	// Retrieval failures are non-fatal: the chat still answers, just
	// without cited sources.
	var retrieved []models.RetrievedDoc
	if c.knowledge != nil && c.model != nil {
		result, err := c.knowledge.Retrieve(ctx, req.Message, req.UserProfile, 3)
		if err != nil {
			log.Printf("⚠️  Knowledge retrieval failed: %v\n", err)
		} else {
			retrieved = result.Results
		}
	}

	if c.model != nil {
		if response, err := c.respondWithModel(ctx, req, intent, retrieved); err == nil {
			response.Sources = buildSources(retrieved)
			return response
		} else {
			log.Printf("⚠️  Model chat failed, falling back to template response: %v\n", err)
		}
	}

	return &models.ChatResponse{
		Response: templateResponse(intent, req.UserProfile),
		Mode:     models.ModeLocal,
	}
}

func (c *chatService) respondWithModel(ctx context.Context, req *models.ChatRequest, intent Intent, retrieved []models.RetrievedDoc) (*models.ChatResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contextText := FormatRetrievedContext(retrieved)

	var prompt string
	var opts GenerateOptions
	if intent == IntentRoadmap {
		prompt = c.promptBuilder.BuildRoadmapPrompt(req.Message, req.UserProfile, contextText)
		opts = GenerateOptions{Temperature: 0.5, TopP: 0.9, MaxTokens: 4096}
	} else {
		prompt = c.promptBuilder.BuildMentorPrompt(req.Message, req.UserProfile, req.ConversationHistory, contextText)
		opts = GenerateOptions{Temperature: 0.7, TopP: 0.9, MaxTokens: 2048}
	}

	text, err := c.model.GenerateTextWithRetry(ctx, prompt, opts, c.maxRetries)
	if err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Response: strings.TrimSpace(text),
		Mode:     models.ModeModel,
	}, nil
}

func buildSources(retrieved []models.RetrievedDoc) []models.ChatSource {
	if len(retrieved) == 0 {
		return nil
	}

	sources := make([]models.ChatSource, 0, len(retrieved))
	for _, doc := range retrieved {
		content := firstNRunes(doc.Content, 200)
		sources = append(sources, models.ChatSource{
			Content: content,
			Source:  doc.Source,
		})
	}
	return sources
}

// templateResponse is the local fallback: fixed markdown prose with the
// user's extracted skills, level and domain interpolated.
func templateResponse(intent Intent, profile *models.ResumeProfile) string {
	level := "Entry"
	domain := "Software Engineering"
	years := 0.0
	skills := "your current skills"
	if profile != nil {
		level = string(profile.CareerLevel)
		domain = profile.PrimaryDomain
		years = profile.TotalExperienceYears
		if len(profile.Skills.Technical) > 0 {
			top := profile.Skills.Technical
			if len(top) > 5 {
				top = top[:5]
			}
			skills = strings.Join(top, ", ")
		}
	}

	switch intent {
	case IntentRoadmap:
		return fmt.Sprintf(`## Your 12-Week Career Roadmap

Based on your **%s-level** background in **%s**, here is a starting plan:

- **Weeks 1-2:** Audit your strengths (%s) and pick one target role.
- **Weeks 3-6:** Close your highest-priority skill gap with a structured course.
- **Weeks 7-10:** Build a portfolio project that showcases the new skill.
- **Weeks 11-12:** Update your resume and start targeted applications.

Would you like me to break down any of these phases in more detail?`, level, domain, skills)

	case IntentJobMatch:
		return fmt.Sprintf(`## Job Matches For Your Profile

With %.1f years of experience and skills in %s, roles in **%s** are your strongest match right now.

- Look for **%s-level** openings that list at least half of your skills.
- Prioritize teams using the tools you already know.
- Set up alerts for 2-3 target titles and apply within 48 hours of posting.

Want tips on tailoring your applications?`, years, skills, domain, level)

	case IntentSkillGap:
		return fmt.Sprintf(`## Skill Gap Analysis

Your current strengths: **%s**.

For growth in **%s** at the %s level, focus on:

- One adjacent technical skill that appears in most job postings you target
- Deepening an existing strength to expert level
- A soft skill that unlocks the next level (mentoring, system design communication)

Which of these would you like resources for?`, skills, domain, level)

	case IntentCertification:
		return fmt.Sprintf(`## Certification Suggestions

For a **%s** professional in **%s**, certifications worth considering:

- A cloud provider certification (AWS, Azure, or Google Cloud)
- A domain-specific credential aligned with %s
- A project management or agile certification if you lead teams

Certifications work best paired with a project that applies them. Want project ideas?`, level, domain, skills)

	case IntentResume:
		return fmt.Sprintf(`## Resume Improvement Tips

Your profile shows **%s** experience in **%s**. To strengthen it:

- Lead each role with a measurable achievement, not a duty
- Surface your top skills (%s) in the first third of the page
- Keep it to one page per decade of experience
- Mirror the wording of the job posting you target

Shall I look at a specific section?`, level, domain, skills)

	case IntentInterview:
		return fmt.Sprintf(`## Interview Preparation

For **%s-level %s** interviews:

- Prepare two stories per skill (%s) using the STAR format
- Practice explaining your biggest project end to end
- Research each company's product and recent news
- Prepare thoughtful questions for your interviewer

Would you like a mock interview question to practice?`, level, domain, skills)

	default:
		return fmt.Sprintf(`Hi! I'm your career mentor. I can see you're a **%s-level** professional in **%s**.

I can help you with:

- **Career roadmaps** - a 12-week plan to your next role
- **Skill gaps** - what to learn next
- **Job matching** - roles that fit your profile
- **Resume feedback** and **interview prep**

What would you like to explore?`, level, domain)
	}
}
