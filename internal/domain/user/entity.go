package user

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "completed"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectOnHold     ProjectStatus = "on-hold"
)

type SkillCategory string

const (
	CategoryTechnical SkillCategory = "technical"
	CategorySoft      SkillCategory = "soft"
	CategoryLanguage  SkillCategory = "language"
	CategoryFramework SkillCategory = "framework"
	CategoryTool      SkillCategory = "tool"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// User is the root document. The four lists are owned by the user and are
// stored, replaced and deleted together with it.
type User struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name" validate:"required,min=2,max=50"`
	Email        string       `json:"email" validate:"required,profile_email"`
	Age          *int         `json:"age,omitempty" validate:"omitnil,gte=1,lte=120"`
	Phone        *string      `json:"phone,omitempty" validate:"omitnil,phone"`
	Experiences  []Experience `json:"experiences"`
	Projects     []Project    `json:"projects"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
	LinkedInURL  string       `json:"linkedInUrl" validate:"omitempty,web_url"`
	GithubURL    string       `json:"githubUrl" validate:"omitempty,web_url"`
	PortfolioURL string       `json:"portfolioUrl" validate:"omitempty,web_url"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type Experience struct {
	ID           uuid.UUID  `json:"id"`
	Company      string     `json:"company" validate:"required,max=100"`
	Position     string     `json:"position" validate:"required,max=100"`
	StartDate    time.Time  `json:"startDate" validate:"required"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Description  string     `json:"description,omitempty" validate:"max=1000"`
	Technologies []string   `json:"technologies"`
	IsCurrentJob bool       `json:"isCurrentJob"`
}

type Project struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title" validate:"required,max=100"`
	Description  string        `json:"description" validate:"required,max=1000"`
	Technologies []string      `json:"technologies" validate:"min=1"`
	GithubURL    string        `json:"githubUrl,omitempty" validate:"omitempty,github_url"`
	LiveURL      string        `json:"liveUrl,omitempty" validate:"omitempty,web_url"`
	StartDate    time.Time     `json:"startDate" validate:"required"`
	EndDate      *time.Time    `json:"endDate,omitempty"`
	Status       ProjectStatus `json:"status" validate:"oneof=completed in-progress on-hold"`
}

type Education struct {
	ID                  uuid.UUID  `json:"id"`
	Institution         string     `json:"institution" validate:"required,max=100"`
	Degree              string     `json:"degree" validate:"required,max=100"`
	FieldOfStudy        string     `json:"fieldOfStudy" validate:"required,max=100"`
	StartDate           time.Time  `json:"startDate" validate:"required"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	GPA                 *float64   `json:"gpa,omitempty" validate:"omitnil,gte=0,lte=4"`
	Description         string     `json:"description,omitempty" validate:"max=500"`
	IsCurrentlyStudying bool       `json:"isCurrentlyStudying"`
}

type Skill struct {
	ID                uuid.UUID     `json:"id"`
	Name              string        `json:"name" validate:"required,max=50"`
	Category          SkillCategory `json:"category" validate:"required,oneof=technical soft language framework tool"`
	Proficiency       Proficiency   `json:"proficiency" validate:"required,oneof=beginner intermediate advanced expert"`
	YearsOfExperience *float64      `json:"yearsOfExperience,omitempty" validate:"omitnil,gte=0,lte=50"`
}
