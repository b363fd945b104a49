package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerpath/careerpath-api/internal/models"
)

type fakeKnowledgeService struct {
	resp *models.RetrieveResponse
	err  error
}

func (f *fakeKnowledgeService) Retrieve(ctx context.Context, query string, profile *models.ResumeProfile, topK int) (*models.RetrieveResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func seniorBackendProfile() *models.ResumeProfile {
	return &models.ResumeProfile{
		PersonalInfo:         models.PersonalInfo{Name: "Jane Smith"},
		Skills:               models.SkillSet{Technical: []string{"Python", "Django", "PostgreSQL"}},
		TotalExperienceYears: 6,
		CareerLevel:          models.LevelSenior,
		PrimaryDomain:        "Backend Development",
	}
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message  string
		expected Intent
	}{
		{"build me a career roadmap", IntentRoadmap},
		{"which jobs match my background", IntentJobMatch},
		{"what should I learn next", IntentSkillGap},
		{"is a certification worth it", IntentCertification},
		{"how can I improve my resume", IntentResume},
		{"help me prepare for interviews", IntentInterview},
		{"hello there", IntentGeneral},
		// First rule wins even when later keywords also appear.
		{"plan what to learn", IntentRoadmap},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectIntent(tt.message))
		})
	}
}

func TestRespondLocalWithoutModel(t *testing.T) {
	chat := NewChatService(nil, nil, 0, 0)

	resp := chat.Respond(context.Background(), &models.ChatRequest{
		Message:     "give me a roadmap",
		UserProfile: seniorBackendProfile(),
	})

	assert.Equal(t, models.ModeLocal, resp.Mode)
	assert.Contains(t, resp.Response, "12-Week")
	assert.Contains(t, resp.Response, "Senior")
	assert.Contains(t, resp.Response, "Backend Development")
	assert.Contains(t, resp.Response, "Python")
	assert.Empty(t, resp.Sources)
}

func TestRespondLocalWithoutProfile(t *testing.T) {
	chat := NewChatService(nil, nil, 0, 0)

	resp := chat.Respond(context.Background(), &models.ChatRequest{Message: "hello"})

	assert.Equal(t, models.ModeLocal, resp.Mode)
	assert.Contains(t, resp.Response, "Entry")
	assert.Contains(t, resp.Response, "Software Engineering")
}

func TestRespondUsesModel(t *testing.T) {
	model := &fakeModelClient{reply: "  Here is tailored advice for your next role.  "}
	chat := NewChatService(model, nil, 0, 0)

	resp := chat.Respond(context.Background(), &models.ChatRequest{
		Message:     "how do I grow",
		UserProfile: seniorBackendProfile(),
	})

	assert.Equal(t, models.ModeModel, resp.Mode)
	assert.Equal(t, "Here is tailored advice for your next role.", resp.Response)
}

func TestRespondFallsBackWhenModelErrors(t *testing.T) {
	model := &fakeModelClient{err: fmt.Errorf("model unavailable")}
	chat := NewChatService(model, nil, 0, 0)

	resp := chat.Respond(context.Background(), &models.ChatRequest{
		Message:     "which jobs match me",
		UserProfile: seniorBackendProfile(),
	})

	assert.Equal(t, models.ModeLocal, resp.Mode)
	assert.Contains(t, resp.Response, "Job Matches")
}

func TestRespondAttachesSources(t *testing.T) {
	model := &fakeModelClient{reply: "Consider the senior backend opening at Initech."}
	knowledge := &fakeKnowledgeService{
		resp: &models.RetrieveResponse{
			Results: []models.RetrievedDoc{
				{Content: "Senior Backend Engineer at Initech, 5+ years of Python.", DocType: "job_posting", Source: "initech.txt"},
			},
		},
	}
	chat := NewChatService(model, knowledge, 0, 0)

	resp := chat.Respond(context.Background(), &models.ChatRequest{
		Message:     "which jobs match me",
		UserProfile: seniorBackendProfile(),
	})

	assert.Equal(t, models.ModeModel, resp.Mode)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "initech.txt", resp.Sources[0].Source)
}

func TestBuildSourcesTruncatesOnRuneBoundary(t *testing.T) {
	sources := buildSources([]models.RetrievedDoc{
		{Content: strings.Repeat("é", 300), Source: "doc.txt"},
		{Content: "short", Source: "other.txt"},
	})

	require.Len(t, sources, 2)
	assert.True(t, utf8.ValidString(sources[0].Content))
	assert.Equal(t, 200, utf8.RuneCountInString(sources[0].Content))
	assert.Equal(t, "short", sources[1].Content)
}

func TestRespondSurvivesRetrievalFailure(t *testing.T) {
	model := &fakeModelClient{reply: "Advice without citations."}
	knowledge := &fakeKnowledgeService{err: fmt.Errorf("qdrant unreachable")}
	chat := NewChatService(model, knowledge, 0, 0)

	resp := chat.Respond(context.Background(), &models.ChatRequest{Message: "hello"})

	assert.Equal(t, models.ModeModel, resp.Mode)
	assert.Equal(t, "Advice without citations.", resp.Response)
	assert.Empty(t, resp.Sources)
}
