package models

import "math"

type CareerLevel string

const (
	LevelEntry  CareerLevel = "Entry"
	LevelMid    CareerLevel = "Mid"
	LevelSenior CareerLevel = "Senior"
	LevelStaff  CareerLevel = "Staff/Principal"
)

// ParseMode reports which extraction path produced a profile.
type ParseMode string

const (
	ModeModel ParseMode = "model"
	ModeLocal ParseMode = "local"
)

// ResumeProfile is the structured record derived from raw resume text.
// It is recomputed on every parse and never mutated in place.
type ResumeProfile struct {
	PersonalInfo         PersonalInfo    `json:"personalInfo"`
	Summary              string          `json:"summary"`
	Skills               SkillSet        `json:"skills"`
	Experience           []Experience    `json:"experience"`
	Education            []Education     `json:"education"`
	Certifications       []Certification `json:"certifications"`
	Projects             []Project       `json:"projects,omitempty"`
	TotalExperienceYears float64         `json:"totalExperienceYears"`
	CareerLevel          CareerLevel     `json:"careerLevel"`
	PrimaryDomain        string          `json:"primaryDomain"`
	ATSScore             *ATSScore       `json:"atsScore,omitempty"`
}

type PersonalInfo struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	LinkedIn *string `json:"linkedin"`
}

type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Tools     []string `json:"tools"`
	Languages []string `json:"languages"`
}

type Experience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	DurationMonths   int      `json:"durationMonths"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

type Education struct {
	Degree         string  `json:"degree"`
	Field          string  `json:"field"`
	Institution    string  `json:"institution"`
	GraduationYear string  `json:"graduationYear"`
	GPA            *string `json:"gpa,omitempty"`
}

type Certification struct {
	Name   string  `json:"name"`
	Issuer string  `json:"issuer"`
	Date   string  `json:"date"`
	Expiry *string `json:"expiry"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
}

// ATSScore is only populated on the model-assisted path.
type ATSScore struct {
	Overall     float64           `json:"overall"`
	Breakdown   ATSScoreBreakdown `json:"breakdown"`
	Suggestions []string          `json:"suggestions"`
}

type ATSScoreBreakdown struct {
	Keywords   float64 `json:"keywords"`
	Formatting float64 `json:"formatting"`
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
	Education  float64 `json:"education"`
}

// Normalize enforces the profile invariants: list fields are never nil,
// careerLevel is always one of the four known values and numeric fields
// are never NaN or infinite. Model output goes through this before it is
// returned to a caller.
func (p *ResumeProfile) Normalize() {
	if p.Skills.Technical == nil {
		p.Skills.Technical = []string{}
	}
	if p.Skills.Soft == nil {
		p.Skills.Soft = []string{}
	}
	if p.Skills.Tools == nil {
		p.Skills.Tools = []string{}
	}
	if p.Skills.Languages == nil {
		p.Skills.Languages = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Certifications == nil {
		p.Certifications = []Certification{}
	}
	for i := range p.Experience {
		if p.Experience[i].Responsibilities == nil {
			p.Experience[i].Responsibilities = []string{}
		}
		if p.Experience[i].Achievements == nil {
			p.Experience[i].Achievements = []string{}
		}
	}
	if math.IsNaN(p.TotalExperienceYears) || math.IsInf(p.TotalExperienceYears, 0) {
		p.TotalExperienceYears = 0
	}
	switch p.CareerLevel {
	case LevelEntry, LevelMid, LevelSenior, LevelStaff:
	default:
		p.CareerLevel = CareerLevelForYears(p.TotalExperienceYears)
	}
	if p.ATSScore != nil && p.ATSScore.Suggestions == nil {
		p.ATSScore.Suggestions = []string{}
	}
}

// CareerLevelForYears thresholds total experience at 2/5/8 years.
func CareerLevelForYears(years float64) CareerLevel {
	switch {
	case years < 2:
		return LevelEntry
	case years < 5:
		return LevelMid
	case years < 8:
		return LevelSenior
	default:
		return LevelStaff
	}
}
