package user

import (
	"fmt"
	"strings"
	"time"
)

// Violation is a single field-level rule failure. Field uses dotted paths
// for nested items, e.g. "projects.1.endDate".
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, ", ")
}

// NewValidationError returns nil when there is nothing to report.
func NewValidationError(vs []Violation) error {
	if len(vs) == 0 {
		return nil
	}
	return &ValidationError{Violations: vs}
}

// Normalize trims strings, lower-cases the email and fills defaults. It
// never rejects anything; call Validate afterwards.
func Normalize(u *User) {
	if u == nil {
		return
	}
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Phone = trimOptional(u.Phone)
	u.LinkedInURL = strings.TrimSpace(u.LinkedInURL)
	u.GithubURL = strings.TrimSpace(u.GithubURL)
	u.PortfolioURL = strings.TrimSpace(u.PortfolioURL)

	if u.Experiences == nil {
		u.Experiences = []Experience{}
	}
	for i := range u.Experiences {
		e := &u.Experiences[i]
		e.Company = strings.TrimSpace(e.Company)
		e.Position = strings.TrimSpace(e.Position)
		e.Description = strings.TrimSpace(e.Description)
		e.Technologies = trimAll(e.Technologies)
	}

	if u.Projects == nil {
		u.Projects = []Project{}
	}
	for i := range u.Projects {
		p := &u.Projects[i]
		p.Title = strings.TrimSpace(p.Title)
		p.Description = strings.TrimSpace(p.Description)
		p.Technologies = trimAll(p.Technologies)
		p.GithubURL = strings.TrimSpace(p.GithubURL)
		p.LiveURL = strings.TrimSpace(p.LiveURL)
		if p.Status == "" {
			p.Status = ProjectInProgress
		}
	}

	if u.Education == nil {
		u.Education = []Education{}
	}
	for i := range u.Education {
		ed := &u.Education[i]
		ed.Institution = strings.TrimSpace(ed.Institution)
		ed.Degree = strings.TrimSpace(ed.Degree)
		ed.FieldOfStudy = strings.TrimSpace(ed.FieldOfStudy)
		ed.Description = strings.TrimSpace(ed.Description)
	}

	if u.Skills == nil {
		u.Skills = []Skill{}
	}
	for i := range u.Skills {
		s := &u.Skills[i]
		s.Name = strings.TrimSpace(s.Name)
		s.Category = SkillCategory(strings.TrimSpace(string(s.Category)))
		s.Proficiency = Proficiency(strings.TrimSpace(string(s.Proficiency)))
	}
}

// Validate checks a normalized user and every embedded item. The result is
// nil or a *ValidationError carrying all violations found.
func Validate(u User) error {
	vs := check(u, "", userMessages)
	for i, e := range u.Experiences {
		vs = append(vs, ValidateExperience(e, fmt.Sprintf("experiences.%d.", i))...)
	}
	for i, p := range u.Projects {
		vs = append(vs, ValidateProject(p, fmt.Sprintf("projects.%d.", i))...)
	}
	for i, ed := range u.Education {
		vs = append(vs, ValidateEducation(ed, fmt.Sprintf("education.%d.", i))...)
	}
	for i, s := range u.Skills {
		vs = append(vs, ValidateSkill(s, fmt.Sprintf("skills.%d.", i))...)
	}
	return NewValidationError(vs)
}

func ValidateExperience(e Experience, prefix string) []Violation {
	vs := check(e, prefix, experienceMessages)
	if e.EndDate != nil && (e.IsCurrentJob || !endsAfter(e.StartDate, *e.EndDate)) {
		vs = append(vs, Violation{
			Field:   prefix + "endDate",
			Message: "End date must be after start date and should not be set for current job",
		})
	}
	return vs
}

func ValidateProject(p Project, prefix string) []Violation {
	vs := check(p, prefix, projectMessages)
	if p.EndDate != nil && !endsAfter(p.StartDate, *p.EndDate) {
		vs = append(vs, Violation{Field: prefix + "endDate", Message: "End date must be after start date"})
	}
	return vs
}

func ValidateEducation(ed Education, prefix string) []Violation {
	vs := check(ed, prefix, educationMessages)
	if ed.EndDate != nil && (ed.IsCurrentlyStudying || !endsAfter(ed.StartDate, *ed.EndDate)) {
		vs = append(vs, Violation{
			Field:   prefix + "endDate",
			Message: "End date must be after start date and should not be set if currently studying",
		})
	}
	return vs
}

func ValidateSkill(s Skill, prefix string) []Violation {
	return check(s, prefix, skillMessages)
}

// endsAfter is only meaningful once startDate passed its own check; a
// missing start is reported there and not again here.
func endsAfter(start, end time.Time) bool {
	if start.IsZero() {
		return true
	}
	return end.After(start)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
