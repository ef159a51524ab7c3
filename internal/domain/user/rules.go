package user

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailRe     = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phoneRe     = regexp.MustCompile(`^\+?[\d\s()-]+$`)
	githubURLRe = regexp.MustCompile(`^https://github\.com/.+`)
	webURLRe    = regexp.MustCompile(`^https?://.+`)
)

// rules is safe for concurrent use and caches struct metadata after the
// first call per type.
var rules = newRules()

func newRules() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, re := range map[string]*regexp.Regexp{
		"profile_email": emailRe,
		"phone":         phoneRe,
		"github_url":    githubURLRe,
		"web_url":       webURLRe,
	} {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}
	return v
}

// messages maps "<json field>.<tag>" to the text shown to clients. A oneof
// message receives the rejected value as its only argument.
type messages map[string]string

var userMessages = messages{
	"name.required":        "Name is required",
	"name.min":             "Name must be at least 2 characters long",
	"name.max":             "Name cannot exceed 50 characters",
	"email.required":       "Email is required",
	"email.profile_email":  "Please enter a valid email",
	"age.gte":              "Age must be at least 1",
	"age.lte":              "Age cannot exceed 120",
	"phone.phone":          "Please enter a valid phone number",
	"linkedInUrl.web_url":  "Please enter a valid LinkedIn URL",
	"githubUrl.web_url":    "Please enter a valid GitHub URL",
	"portfolioUrl.web_url": "Please enter a valid portfolio URL",
}

var experienceMessages = messages{
	"company.required":   "Company name is required",
	"company.max":        "Company name cannot exceed 100 characters",
	"position.required":  "Position is required",
	"position.max":       "Position cannot exceed 100 characters",
	"startDate.required": "Start date is required",
	"description.max":    "Description cannot exceed 1000 characters",
}

var projectMessages = messages{
	"title.required":       "Project title is required",
	"title.max":            "Title cannot exceed 100 characters",
	"description.required": "Project description is required",
	"description.max":      "Description cannot exceed 1000 characters",
	"technologies.min":     "At least one technology is required",
	"githubUrl.github_url": "Please enter a valid GitHub URL",
	"liveUrl.web_url":      "Please enter a valid URL",
	"startDate.required":   "Start date is required",
	"status.oneof":         "`%v` is not a valid project status",
}

var educationMessages = messages{
	"institution.required":  "Institution name is required",
	"institution.max":       "Institution name cannot exceed 100 characters",
	"degree.required":       "Degree is required",
	"degree.max":            "Degree cannot exceed 100 characters",
	"fieldOfStudy.required": "Field of study is required",
	"fieldOfStudy.max":      "Field of study cannot exceed 100 characters",
	"startDate.required":    "Start date is required",
	"gpa.gte":               "GPA cannot be negative",
	"gpa.lte":               "GPA cannot exceed 4.0",
	"description.max":       "Description cannot exceed 500 characters",
}

var skillMessages = messages{
	"name.required":         "Skill name is required",
	"name.max":              "Skill name cannot exceed 50 characters",
	"category.required":     "Skill category is required",
	"category.oneof":        "`%v` is not a valid skill category",
	"proficiency.required":  "Proficiency level is required",
	"proficiency.oneof":     "`%v` is not a valid proficiency level",
	"yearsOfExperience.gte": "Years of experience cannot be negative",
	"yearsOfExperience.lte": "Years of experience seems unrealistic",
}

// check runs the struct tags of v and turns each failure into a Violation
// under prefix, in field declaration order.
func check(v any, prefix string, msgs messages) []Violation {
	err := rules.Struct(v)
	if err == nil {
		return nil
	}

	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return []Violation{{Field: strings.TrimSuffix(prefix, "."), Message: err.Error()}}
	}

	vs := make([]Violation, 0, len(fes))
	for _, fe := range fes {
		vs = append(vs, Violation{Field: prefix + fe.Field(), Message: msgs.text(fe)})
	}
	return vs
}

func (m messages) text(fe validator.FieldError) string {
	msg, ok := m[fe.Field()+"."+fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
	}
	if fe.Tag() == "oneof" {
		return fmt.Sprintf(msg, fe.Value())
	}
	return msg
}
