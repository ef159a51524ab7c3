package dto

import (
	"fmt"
	"math"
	"strings"
	"time"

	"profile-api/internal/domain/user"
	useruc "profile-api/internal/usecase/user"

	"github.com/google/uuid"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type CreateUserRequest struct {
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Age          *float64            `json:"age"`
	Phone        *string             `json:"phone"`
	LinkedInURL  string              `json:"linkedInUrl"`
	GithubURL    string              `json:"githubUrl"`
	PortfolioURL string              `json:"portfolioUrl"`
	Experiences  []ExperienceRequest `json:"experiences"`
	Projects     []ProjectRequest    `json:"projects"`
	Education    []EducationRequest  `json:"education"`
	Skills       []SkillRequest      `json:"skills"`
}

// UpdateUserRequest distinguishes absent fields (nil) from present ones. A
// present list replaces the stored list.
type UpdateUserRequest struct {
	Name         *string              `json:"name"`
	Email        *string              `json:"email"`
	Age          *float64             `json:"age"`
	Phone        *string              `json:"phone"`
	LinkedInURL  *string              `json:"linkedInUrl"`
	GithubURL    *string              `json:"githubUrl"`
	PortfolioURL *string              `json:"portfolioUrl"`
	Experiences  *[]ExperienceRequest `json:"experiences"`
	Projects     *[]ProjectRequest    `json:"projects"`
	Education    *[]EducationRequest  `json:"education"`
	Skills       *[]SkillRequest      `json:"skills"`
}

type ExperienceRequest struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    *string  `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	IsCurrentJob bool     `json:"isCurrentJob"`
}

type ProjectRequest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GithubURL    string   `json:"githubUrl"`
	LiveURL      string   `json:"liveUrl"`
	StartDate    *string  `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Status       string   `json:"status"`
}

type EducationRequest struct {
	ID                  string   `json:"id"`
	Institution         string   `json:"institution"`
	Degree              string   `json:"degree"`
	FieldOfStudy        string   `json:"fieldOfStudy"`
	StartDate           *string  `json:"startDate"`
	EndDate             *string  `json:"endDate"`
	GPA                 *float64 `json:"gpa"`
	Description         string   `json:"description"`
	IsCurrentlyStudying bool     `json:"isCurrentlyStudying"`
}

type SkillRequest struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Proficiency       string   `json:"proficiency"`
	YearsOfExperience *float64 `json:"yearsOfExperience"`
}

// ToDomain converts the body into a candidate user. Unparsable dates come
// back as a *user.ValidationError.
func (r CreateUserRequest) ToDomain() (user.User, error) {
	var d decoder
	u := user.User{
		Name:         r.Name,
		Email:        r.Email,
		Age:          d.age(r.Age),
		Phone:        r.Phone,
		LinkedInURL:  r.LinkedInURL,
		GithubURL:    r.GithubURL,
		PortfolioURL: r.PortfolioURL,
		Experiences:  d.experiences(r.Experiences),
		Projects:     d.projects(r.Projects),
		Education:    d.education(r.Education),
		Skills:       d.skills(r.Skills),
	}
	if err := user.NewValidationError(d.vs); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r UpdateUserRequest) ToPatch() (useruc.Patch, error) {
	var d decoder
	p := useruc.Patch{
		Name:         r.Name,
		Email:        r.Email,
		Age:          d.age(r.Age),
		Phone:        r.Phone,
		LinkedInURL:  r.LinkedInURL,
		GithubURL:    r.GithubURL,
		PortfolioURL: r.PortfolioURL,
	}
	if r.Experiences != nil {
		v := d.experiences(*r.Experiences)
		p.Experiences = &v
	}
	if r.Projects != nil {
		v := d.projects(*r.Projects)
		p.Projects = &v
	}
	if r.Education != nil {
		v := d.education(*r.Education)
		p.Education = &v
	}
	if r.Skills != nil {
		v := d.skills(*r.Skills)
		p.Skills = &v
	}
	if err := user.NewValidationError(d.vs); err != nil {
		return useruc.Patch{}, err
	}
	return p, nil
}

type decoder struct {
	vs []user.Violation
}

// age accepts any JSON number but only whole values reach the domain.
func (d *decoder) age(v *float64) *int {
	if v == nil {
		return nil
	}
	if *v != math.Trunc(*v) {
		d.vs = append(d.vs, user.Violation{Field: "age", Message: "Age must be a whole number"})
		return nil
	}
	n := math.Max(math.Min(*v, math.MaxInt32), math.MinInt32)
	a := int(n)
	return &a
}

func (d *decoder) experiences(in []ExperienceRequest) []user.Experience {
	out := make([]user.Experience, 0, len(in))
	for i, e := range in {
		prefix := fmt.Sprintf("experiences.%d.", i)
		out = append(out, user.Experience{
			ID:           itemID(e.ID),
			Company:      e.Company,
			Position:     e.Position,
			StartDate:    d.date(prefix+"startDate", "Start date", e.StartDate),
			EndDate:      d.optionalDate(prefix+"endDate", "End date", e.EndDate),
			Description:  e.Description,
			Technologies: e.Technologies,
			IsCurrentJob: e.IsCurrentJob,
		})
	}
	return out
}

func (d *decoder) projects(in []ProjectRequest) []user.Project {
	out := make([]user.Project, 0, len(in))
	for i, p := range in {
		prefix := fmt.Sprintf("projects.%d.", i)
		out = append(out, user.Project{
			ID:           itemID(p.ID),
			Title:        p.Title,
			Description:  p.Description,
			Technologies: p.Technologies,
			GithubURL:    p.GithubURL,
			LiveURL:      p.LiveURL,
			StartDate:    d.date(prefix+"startDate", "Start date", p.StartDate),
			EndDate:      d.optionalDate(prefix+"endDate", "End date", p.EndDate),
			Status:       user.ProjectStatus(p.Status),
		})
	}
	return out
}

func (d *decoder) education(in []EducationRequest) []user.Education {
	out := make([]user.Education, 0, len(in))
	for i, e := range in {
		prefix := fmt.Sprintf("education.%d.", i)
		out = append(out, user.Education{
			ID:                  itemID(e.ID),
			Institution:         e.Institution,
			Degree:              e.Degree,
			FieldOfStudy:        e.FieldOfStudy,
			StartDate:           d.date(prefix+"startDate", "Start date", e.StartDate),
			EndDate:             d.optionalDate(prefix+"endDate", "End date", e.EndDate),
			GPA:                 e.GPA,
			Description:         e.Description,
			IsCurrentlyStudying: e.IsCurrentlyStudying,
		})
	}
	return out
}

func (d *decoder) skills(in []SkillRequest) []user.Skill {
	out := make([]user.Skill, 0, len(in))
	for _, s := range in {
		out = append(out, user.Skill{
			ID:                itemID(s.ID),
			Name:              s.Name,
			Category:          user.SkillCategory(s.Category),
			Proficiency:       user.Proficiency(s.Proficiency),
			YearsOfExperience: s.YearsOfExperience,
		})
	}
	return out
}

// date returns the zero time for a missing value; the required check in
// the domain reports it.
func (d *decoder) date(field, label string, raw *string) time.Time {
	t := d.optionalDate(field, label, raw)
	if t == nil {
		return time.Time{}
	}
	return *t
}

func (d *decoder) optionalDate(field, label string, raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	d.vs = append(d.vs, user.Violation{Field: field, Message: label + " is not a valid date"})
	return nil
}

// itemID keeps a client-supplied id so the usecase can match it against
// the stored item; anything unparsable is treated as a new item.
func itemID(raw string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil
	}
	return id
}
