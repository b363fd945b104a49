package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"careerpath/careerpath-api/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeParsePrompt creates the prompt for model-assisted resume
// extraction. The model must return only JSON matching the ResumeProfile
// schema; placeholder text is explicitly forbidden because the reply is
// run through the plausibility validator before it is trusted.
func (pb *PromptBuilder) BuildResumeParsePrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume analyzer. Extract structured information from the resume text provided.

<resume>
%s
</resume>

Extract and return a JSON object with exactly this structure:
{
    "personalInfo": {
        "name": "Full name exactly as written in the resume",
        "email": "Email address or null",
        "phone": "Phone number or null",
        "location": "City/State/Country or null",
        "linkedin": "LinkedIn URL or null"
    },
    "summary": "Professional summary or objective statement",
    "skills": {
        "technical": ["Technical skills"],
        "soft": ["Soft skills"],
        "tools": ["Tools and software"],
        "languages": ["Programming or spoken languages"]
    },
    "experience": [
        {
            "title": "Job title",
            "company": "Company name",
            "location": "Location",
            "startDate": "Start date",
            "endDate": "End date or 'Present'",
            "durationMonths": 0,
            "responsibilities": ["Key responsibilities"],
            "achievements": ["Key achievements with metrics if available"]
        }
    ],
    "education": [
        {
            "degree": "Degree name",
            "field": "Field of study",
            "institution": "School/University name",
            "graduationYear": "Year of graduation",
            "gpa": "GPA if mentioned"
        }
    ],
    "certifications": [
        {
            "name": "Certification name",
            "issuer": "Issuing organization",
            "date": "Date obtained",
            "expiry": "Expiration date or null"
        }
    ],
    "projects": [
        {
            "name": "Project name",
            "description": "Brief description",
            "technologies": ["Technologies used"],
            "url": "Project URL if available"
        }
    ],
    "totalExperienceYears": 0.0,
    "careerLevel": "Entry|Mid|Senior|Staff/Principal",
    "primaryDomain": "Primary career domain",
    "atsScore": {
        "overall": 0,
        "breakdown": {
            "keywords": 0,
            "formatting": 0,
            "experience": 0,
            "skills": 0,
            "education": 0
        },
        "suggestions": ["Concrete suggestions to improve the resume"]
    }
}

Important:
- Be thorough and extract ALL relevant information from the resume
- Estimate durations and experience levels from the available information
- If information is not available, use null (empty lists for list fields)
- Never output placeholder text such as "Full name" or "<name>" - use the real values from the resume
- Return ONLY valid JSON, no additional text`, resumeText)
}

// BuildMentorPrompt creates the conversational career-mentor prompt.
func (pb *PromptBuilder) BuildMentorPrompt(userQuery string, profile *models.ResumeProfile, history []models.ChatMessage, retrievedContext string) string {
	historyText := "No previous messages."
	if len(history) > 0 {
		// Only the last 5 turns are carried.
		if len(history) > 5 {
			history = history[len(history)-5:]
		}
		var lines []string
		for _, msg := range history {
			lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
		}
		historyText = strings.Join(lines, "\n")
	}

	if retrievedContext == "" {
		retrievedContext = "No specific context available."
	}

	return fmt.Sprintf(`You are CareerPath AI, a friendly and knowledgeable career mentor.
Respond to the user's question in a conversational but informative manner.

User Profile Summary:
%s

User's Question:
%s

Relevant Context:
%s

Previous Conversation:
%s

Instructions:
- Be encouraging and supportive
- Provide specific, actionable advice
- Reference the user's actual skills and experience
- If recommending resources, cite sources
- Keep responses concise but comprehensive
- Use bullet points for lists
- End with a follow-up question or call-to-action

Respond naturally as a career mentor would.`,
		pb.ProfileSummary(profile), userQuery, retrievedContext, historyText)
}

// BuildRoadmapPrompt creates the 12-week roadmap planner prompt.
func (pb *PromptBuilder) BuildRoadmapPrompt(userQuery string, profile *models.ResumeProfile, retrievedContext string) string {
	profileJSON := "No profile provided."
	if profile != nil {
		if data, err := json.MarshalIndent(profile, "", "  "); err == nil {
			profileJSON = string(data)
		}
	}

	if retrievedContext == "" {
		retrievedContext = "No specific context retrieved."
	}

	return fmt.Sprintf(`You are an expert career mentor AI. Based on the user's profile and the retrieved context, create a comprehensive, personalized career roadmap.

## User Profile
%s

## User's Question/Goal
%s

## Retrieved Context
%s

## Instructions
Create a detailed career roadmap in markdown that includes:

1. **Current Position Analysis** - the user's skills, career level and domain
2. **Career Goal Recommendations** - 2-3 realistic paths ranked by alignment with existing skills
3. **Skill Gap Analysis** - valuable existing skills, missing critical skills, prioritized
4. **Week-by-Week Roadmap** (12 weeks) - specific actionable steps with time estimates
5. **Recommended Resources** - courses, certifications, projects, communities
6. **Reasoning** - quote the retrieved passages that informed each major recommendation

Be specific, actionable, and always cite your sources.`,
		profileJSON, userQuery, retrievedContext)
}

// ProfileSummary renders a compact textual view of a profile for prompt
// embedding.
func (pb *PromptBuilder) ProfileSummary(profile *models.ResumeProfile) string {
	if profile == nil {
		return "No profile provided."
	}

	skills := profile.Skills.Technical
	if len(skills) > 10 {
		skills = skills[:10]
	}

	return fmt.Sprintf(
		"Career Level: %s\nDomain: %s\nExperience: %.1f years\nKey Skills: %s",
		profile.CareerLevel,
		profile.PrimaryDomain,
		profile.TotalExperienceYears,
		strings.Join(skills, ", "),
	)
}

// BuildRetrievalQuery formats a knowledge-base query from a profile when
// the caller did not supply an explicit one.
func (pb *PromptBuilder) BuildRetrievalQuery(profile *models.ResumeProfile) string {
	if profile == nil {
		return "career guidance for software professionals"
	}

	var allSkills []string
	allSkills = append(allSkills, profile.Skills.Technical...)
	allSkills = append(allSkills, profile.Skills.Tools...)
	if len(allSkills) > 20 {
		allSkills = allSkills[:20]
	}

	return fmt.Sprintf(`Given the following user profile, find the most relevant:
1. Job postings that match their skills and experience level
2. Skills they should develop
3. Learning resources and certifications

User Profile:
%s

Current Skills: %s
Experience Level: %s`,
		profile.Summary, strings.Join(allSkills, ", "), profile.CareerLevel)
}

// FormatRetrievedContext renders retrieval hits for prompt embedding.
func FormatRetrievedContext(results []models.RetrievedDoc) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Content)))
	}

	return strings.Join(parts, "\n\n")
}
