package services

import (
	"context"
	"fmt"
	"strings"

	"careerpath/careerpath-api/internal/models"
)

// ProfileIndexer embeds parsed profiles into the knowledge base so later
// retrievals can match jobs and resources against them.
type ProfileIndexer interface {
	IndexProfile(ctx context.Context, resumeID string, profile *models.ResumeProfile) error
}

type profileIndexer struct {
	model ModelClient
	store VectorStore
}

func NewProfileIndexer(model ModelClient, store VectorStore) ProfileIndexer {
	return &profileIndexer{
		model: model,
		store: store,
	}
}

// IndexProfile implements ProfileIndexer.
func (p *profileIndexer) IndexProfile(ctx context.Context, resumeID string, profile *models.ResumeProfile) error {
	text := BuildProfileText(profile)

	embedding, err := p.model.GenerateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed profile: %w", err)
	}

	if err := p.store.UpsertDocument(ctx, resumeID, "profile", "resume:"+resumeID, text, embedding); err != nil {
		return fmt.Errorf("failed to store profile embedding: %w", err)
	}

	return nil
}

// BuildProfileText creates a searchable text representation of a profile:
// summary, skills, the top three experiences, certifications, level and
// domain.
func BuildProfileText(profile *models.ResumeProfile) string {
	var parts []string

	if profile.Summary != "" {
		parts = append(parts, "Summary: "+profile.Summary)
	}

	var allSkills []string
	allSkills = append(allSkills, profile.Skills.Technical...)
	allSkills = append(allSkills, profile.Skills.Soft...)
	allSkills = append(allSkills, profile.Skills.Tools...)
	allSkills = append(allSkills, profile.Skills.Languages...)
	if len(allSkills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(allSkills, ", "))
	}

	experiences := profile.Experience
	if len(experiences) > 3 {
		experiences = experiences[:3]
	}
	for _, exp := range experiences {
		line := fmt.Sprintf("%s at %s", exp.Title, exp.Company)
		if len(exp.Responsibilities) > 0 {
			responsibilities := exp.Responsibilities
			if len(responsibilities) > 3 {
				responsibilities = responsibilities[:3]
			}
			line += ": " + strings.Join(responsibilities, "; ")
		}
		parts = append(parts, line)
	}

	var certNames []string
	for _, cert := range profile.Certifications {
		if cert.Name != "" {
			certNames = append(certNames, cert.Name)
		}
	}
	if len(certNames) > 0 {
		parts = append(parts, "Certifications: "+strings.Join(certNames, ", "))
	}

	if profile.CareerLevel != "" {
		parts = append(parts, "Career Level: "+string(profile.CareerLevel))
	}
	if profile.PrimaryDomain != "" {
		parts = append(parts, "Domain: "+profile.PrimaryDomain)
	}

	return strings.Join(parts, "\n")
}
