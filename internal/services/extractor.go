package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"careerpath/careerpath-api/internal/models"
)

// FieldExtractor is the deterministic extraction path. It never fails:
// every sub-field that cannot be matched gets a documented default, so the
// same input text always yields the same profile.
type FieldExtractor struct{}

func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{}
}

var (
	nameRe     = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)
	emailRe    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRe    = regexp.MustCompile(`\+?[\d\s()\-]{10,}`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/[\w\-]+`)
	summaryRe  = regexp.MustCompile(`(?is)(?:professional summary|summary|about)[:\s]+(.{50,300})`)
	digitRe    = regexp.MustCompile(`\d`)
)

const fallbackName = "Anonymous User"

// Extract turns raw resume text into a ResumeProfile using regex and
// keyword matching only. Pure function of its input.
func (e *FieldExtractor) Extract(rawText string) *models.ResumeProfile {
	profile := &models.ResumeProfile{
		PersonalInfo: models.PersonalInfo{
			Name:     extractName(rawText),
			Email:    firstMatch(emailRe, rawText),
			Phone:    extractPhone(rawText),
			Location: extractLocation(rawText),
			LinkedIn: extractLinkedIn(rawText),
		},
		Skills: models.SkillSet{
			Technical: matchVocabulary(rawText, technicalVocabulary),
			Soft:      matchVocabulary(rawText, softVocabulary),
			Tools:     matchVocabulary(rawText, toolsVocabulary),
			Languages: []string{"English"},
		},
		Experience:     extractExperience(rawText),
		Education:      extractEducation(rawText),
		Certifications: extractCertifications(rawText),
	}

	totalMonths := 0
	for _, exp := range profile.Experience {
		totalMonths += exp.DurationMonths
	}
	profile.TotalExperienceYears = math.Round(float64(totalMonths)/12*10) / 10
	profile.CareerLevel = models.CareerLevelForYears(profile.TotalExperienceYears)
	profile.PrimaryDomain = classifyDomain(profile.Skills.Technical)
	profile.Summary = extractSummary(rawText, profile)

	profile.Normalize()
	return profile
}

// extractName takes the first non-empty line, accepting it only when it is
// 2-50 letters/spaces with at most 4 tokens.
func extractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if nameRe.MatchString(line) && len(strings.Fields(line)) <= 4 {
			return line
		}
		return fallbackName
	}
	return fallbackName
}

func firstMatch(re *regexp.Regexp, text string) *string {
	if m := re.FindString(text); m != "" {
		return &m
	}
	return nil
}

func extractPhone(text string) *string {
	for _, m := range phoneRe.FindAllString(text, -1) {
		// A phone-shaped token still needs enough actual digits, otherwise
		// date ranges like "2018 - 2022" match.
		if len(digitRe.FindAllString(m, -1)) >= 10 {
			m = strings.TrimSpace(m)
			return &m
		}
	}
	return nil
}

func extractLinkedIn(text string) *string {
	if m := linkedinRe.FindString(text); m != "" {
		url := "https://" + m
		return &url
	}
	return nil
}

// locationRules is an ordered first-match-wins cascade.
var locationRules = []func(text string) (string, bool){
	func(text string) (string, bool) {
		re := regexp.MustCompile(`(?i)(?:located in|based in|from)\s+([A-Za-z][A-Za-z ]{1,30}(?:,\s*[A-Za-z ]{2,20})?)`)
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
		return "", false
	},
	func(text string) (string, bool) {
		re := regexp.MustCompile(`([A-Z][a-z]+(?: [A-Z][a-z]+)*),\s*([A-Z]{2})\b`)
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1] + ", " + m[2], true
		}
		return "", false
	},
	func(text string) (string, bool) {
		lower := strings.ToLower(text)
		for _, city := range knownCities {
			if strings.Contains(lower, strings.ToLower(city)) {
				return city, true
			}
		}
		return "", false
	},
}

var knownCities = []string{
	"San Francisco", "New York", "Seattle", "Austin", "Boston",
	"Chicago", "London", "Berlin", "Toronto", "Bangalore", "Singapore",
	"Remote",
}

func extractLocation(text string) *string {
	for _, rule := range locationRules {
		if loc, ok := rule(text); ok {
			return &loc
		}
	}
	return nil
}

// matchVocabulary substring-tests each vocabulary entry case-insensitively
// against the whole document; hits keep the vocabulary's canonical casing.
func matchVocabulary(text string, vocab []string) []string {
	lower := strings.ToLower(text)
	matched := []string{}
	for _, entry := range vocab {
		if strings.Contains(lower, strings.ToLower(entry)) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// roleTitles maps role keywords to the synthetic record's title,
// first match wins.
var roleTitles = []struct {
	Keyword string
	Title   string
}{
	{"engineer", "Software Engineer"},
	{"developer", "Software Developer"},
	{"manager", "Engineering Manager"},
	{"lead", "Technical Lead"},
	{"architect", "Solutions Architect"},
}

// extractExperience is a presence test, not a real parse: any role keyword
// anywhere in the text produces a single synthetic 36-month record.
// TODO: replace with a section-based parser once product confirms the
// placeholder record is not load-bearing for the dashboard charts.
func extractExperience(text string) []models.Experience {
	lower := strings.ToLower(text)
	for _, role := range roleTitles {
		if strings.Contains(lower, role.Keyword) {
			return []models.Experience{{
				Title:            role.Title,
				Company:          "Previous Company",
				Location:         "Not specified",
				StartDate:        "2021-01",
				EndDate:          "Present",
				DurationMonths:   36,
				Responsibilities: []string{"See resume for details"},
				Achievements:     []string{},
			}}
		}
	}
	return []models.Experience{}
}

var degreeNames = []struct {
	Keyword string
	Degree  string
}{
	{"ph.d", "Ph.D."},
	{"phd", "Ph.D."},
	{"doctorate", "Ph.D."},
	{"mba", "MBA"},
	{"master", "Master's Degree"},
	{"m.s", "Master's Degree"},
	{"m.sc", "Master's Degree"},
	{"m.tech", "Master's Degree"},
	{"bachelor", "Bachelor's Degree"},
	{"b.s", "Bachelor's Degree"},
	{"b.sc", "Bachelor's Degree"},
	{"b.tech", "Bachelor's Degree"},
	{"degree", "Bachelor's Degree"},
}

var fieldsOfStudy = []string{
	"Computer Science",
	"Information Technology",
	"Software Engineering",
	"Electrical Engineering",
	"Data Science",
	"Mathematics",
	"Business Administration",
}

func extractEducation(text string) []models.Education {
	lower := strings.ToLower(text)
	for _, deg := range degreeNames {
		if !strings.Contains(lower, deg.Keyword) {
			continue
		}

		field := "Computer Science"
		for _, candidate := range fieldsOfStudy {
			if strings.Contains(lower, strings.ToLower(candidate)) {
				field = candidate
				break
			}
		}

		return []models.Education{{
			Degree:      deg.Degree,
			Field:       field,
			Institution: "Not specified",
		}}
	}
	return []models.Education{}
}

// knownCertifications is the fixed lookup table; every substring hit
// becomes a record with a constant date.
var knownCertifications = []struct {
	Name   string
	Issuer string
}{
	{"AWS Certified Solutions Architect", "Amazon Web Services"},
	{"AWS Certified Developer", "Amazon Web Services"},
	{"Google Cloud Professional", "Google"},
	{"Certified Kubernetes Administrator", "CNCF"},
	{"Azure Fundamentals", "Microsoft"},
	{"PMP", "Project Management Institute"},
	{"Certified Scrum Master", "Scrum Alliance"},
	{"CISSP", "ISC2"},
}

func extractCertifications(text string) []models.Certification {
	lower := strings.ToLower(text)
	certs := []models.Certification{}
	for _, known := range knownCertifications {
		if strings.Contains(lower, strings.ToLower(known.Name)) {
			certs = append(certs, models.Certification{
				Name:   known.Name,
				Issuer: known.Issuer,
				Date:   "2023",
				Expiry: nil,
			})
		}
	}
	return certs
}

func extractSummary(text string, profile *models.ResumeProfile) string {
	if m := summaryRe.FindStringSubmatch(text); m != nil {
		return strings.Join(strings.Fields(m[1]), " ")
	}
	return fmt.Sprintf(
		"%s-level %s professional with %.1f years of experience.",
		profile.CareerLevel, profile.PrimaryDomain, profile.TotalExperienceYears,
	)
}

// Skill groups feeding the domain cascade.
var (
	mlSkills       = []string{"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "NLP", "Computer Vision", "Data Science"}
	frontendSkills = []string{"React", "Angular", "Vue.js", "HTML", "CSS"}
	backendSkills  = []string{"Node.js", "Express", "Django", "Flask", "Spring Boot", ".NET", "PHP"}
	cloudSkills    = []string{"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Terraform", "CI/CD"}
)

// domainRules is evaluated in order, first match wins.
var domainRules = []struct {
	Match  func(has func(...string) bool) bool
	Domain string
}{
	{func(has func(...string) bool) bool { return has(mlSkills...) }, "Machine Learning / AI"},
	{func(has func(...string) bool) bool { return has(frontendSkills...) && has(backendSkills...) }, "Full Stack Development"},
	{func(has func(...string) bool) bool { return has(cloudSkills...) }, "Cloud / DevOps"},
	{func(has func(...string) bool) bool { return has(frontendSkills...) }, "Frontend Development"},
	{func(has func(...string) bool) bool { return has(backendSkills...) }, "Backend Development"},
}

func classifyDomain(technical []string) string {
	present := make(map[string]bool, len(technical))
	for _, skill := range technical {
		present[skill] = true
	}
	has := func(skills ...string) bool {
		for _, s := range skills {
			if present[s] {
				return true
			}
		}
		return false
	}

	for _, rule := range domainRules {
		if rule.Match(has) {
			return rule.Domain
		}
	}
	return "Software Engineering"
}
