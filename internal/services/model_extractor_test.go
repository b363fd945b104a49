package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerpath/careerpath-api/internal/models"
)

// fakeModelClient replaces the hosted model in tests.
type fakeModelClient struct {
	reply     string
	err       error
	embedding []float32
	embedErr  error
	calls     int
}

func (f *fakeModelClient) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeModelClient) GenerateTextWithRetry(ctx context.Context, prompt string, opts GenerateOptions, maxRetries int) (string, error) {
	return f.GenerateText(ctx, prompt, opts)
}

func (f *fakeModelClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.embedding, nil
}

const validModelReply = "```json\n" + `{
  "personalInfo": {"name": "Jane Smith", "email": "jane@example.com", "phone": null, "location": "Austin", "linkedin": null},
  "summary": "Backend engineer with a focus on distributed systems.",
  "skills": {"technical": ["Python", "Django"], "soft": ["Leadership"], "tools": ["Git"], "languages": ["English"]},
  "experience": [{"title": "Backend Engineer", "company": "Acme", "location": "Austin", "startDate": "2019-03", "endDate": "Present", "durationMonths": 60, "responsibilities": ["Own the billing service"], "achievements": []}],
  "education": [],
  "certifications": [],
  "totalExperienceYears": 5.0,
  "careerLevel": "Senior",
  "primaryDomain": "Backend Development",
  "atsScore": {"overall": 82, "breakdown": {"keywords": 80, "formatting": 85, "experience": 84, "skills": 78, "education": 83}, "suggestions": ["Add measurable outcomes"]}
}` + "\n```"

func TestParseUsesModelWhenReplyValid(t *testing.T) {
	model := &fakeModelClient{reply: validModelReply}
	extractor := NewExtractorService(model, time.Second)

	profile, mode := extractor.Parse(context.Background(), "Jane Smith\nBackend engineer")

	assert.Equal(t, models.ModeModel, mode)
	assert.Equal(t, "Jane Smith", profile.PersonalInfo.Name)
	assert.Equal(t, models.LevelSenior, profile.CareerLevel)
	require.NotNil(t, profile.ATSScore)
	assert.InDelta(t, 82, profile.ATSScore.Overall, 0.001)
	// Model output still passes through invariant normalization.
	assert.NotNil(t, profile.Education)
	assert.NotNil(t, profile.Certifications)
}

func TestParseFallsBackWhenModelErrors(t *testing.T) {
	model := &fakeModelClient{err: fmt.Errorf("model unavailable")}
	extractor := NewExtractorService(model, time.Second)

	profile, mode := extractor.Parse(context.Background(), "Jane Smith\nPython developer")

	assert.Equal(t, models.ModeLocal, mode)
	assert.Equal(t, "Jane Smith", profile.PersonalInfo.Name)
	assert.Nil(t, profile.ATSScore)
}

func TestParseFallsBackOnMalformedJSON(t *testing.T) {
	model := &fakeModelClient{reply: "Sure! Here is the profile you asked for."}
	extractor := NewExtractorService(model, time.Second)

	profile, mode := extractor.Parse(context.Background(), "Jane Smith\nPython developer")

	assert.Equal(t, models.ModeLocal, mode)
	assert.Equal(t, "Jane Smith", profile.PersonalInfo.Name)
}

func TestParseFallsBackOnPlaceholderName(t *testing.T) {
	// A templated reply must be discarded in favor of the deterministic
	// extractor's profile.
	reply := `{"personalInfo": {"name": "<actual name>", "email": null, "phone": null, "location": null, "linkedin": null},
		"summary": "", "skills": {"technical": [], "soft": [], "tools": [], "languages": []},
		"experience": [], "education": [], "certifications": [],
		"totalExperienceYears": 2, "careerLevel": "Mid", "primaryDomain": "Software Engineering"}`
	model := &fakeModelClient{reply: reply}
	extractor := NewExtractorService(model, time.Second)

	profile, mode := extractor.Parse(context.Background(), "Jane Smith\nPython developer")

	assert.Equal(t, models.ModeLocal, mode)
	assert.Equal(t, "Jane Smith", profile.PersonalInfo.Name)
}

func TestParseWithoutModelClient(t *testing.T) {
	extractor := NewExtractorService(nil, time.Second)

	profile, mode := extractor.Parse(context.Background(), "Jane Smith\nPython developer")

	assert.Equal(t, models.ModeLocal, mode)
	assert.Equal(t, "Jane Smith", profile.PersonalInfo.Name)
}

func TestValidatePlausibility(t *testing.T) {
	base := func() *models.ResumeProfile {
		return &models.ResumeProfile{
			PersonalInfo:         models.PersonalInfo{Name: "Jane Smith"},
			Skills:               models.SkillSet{Technical: []string{"Python"}},
			TotalExperienceYears: 3,
		}
	}

	t.Run("accepts plausible profile", func(t *testing.T) {
		assert.NoError(t, validatePlausibility(base()))
	})

	t.Run("rejects placeholder names", func(t *testing.T) {
		for _, name := range []string{"Full Name", "<extracted>", "your name here", "Example Person"} {
			profile := base()
			profile.PersonalInfo.Name = name
			assert.Error(t, validatePlausibility(profile), "name=%q", name)
		}
	})

	t.Run("rejects descriptive first skill", func(t *testing.T) {
		profile := base()
		profile.Skills.Technical = []string{"A list of all the technical skills found in the resume text"}
		assert.Error(t, validatePlausibility(profile))
	})

	t.Run("rejects placeholder first skill", func(t *testing.T) {
		profile := base()
		profile.Skills.Technical = []string{"<skill>"}
		assert.Error(t, validatePlausibility(profile))
	})
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"fenced", "```json\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"surrounded by prose", "Here you go: {\"a\": 1} hope that helps", "{\"a\": 1}"},
		{"array", "[1, 2, 3]", "[1, 2, 3]"},
		{"plain object", "{\"a\": 1}", "{\"a\": 1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSON(tt.input))
		})
	}
}
