package user

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jan2020 = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan2021 = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T { return &v }

func validUser() User {
	return User{
		Name:  "Ann",
		Email: "ann@x.com",
		Age:   ptr(30),
	}
}

func violationFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestNormalize_TrimsAndLowercases(t *testing.T) {
	u := User{
		Name:  "  Ann  ",
		Email: " Ann@X.com ",
		Phone: ptr("   "),
		Projects: []Project{{
			Title:        " Site ",
			Technologies: []string{" go ", "", "sql"},
		}},
	}
	Normalize(&u)

	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "ann@x.com", u.Email)
	assert.Nil(t, u.Phone)
	assert.Equal(t, "Site", u.Projects[0].Title)
	assert.Equal(t, []string{"go", "sql"}, u.Projects[0].Technologies)
	assert.Equal(t, ProjectInProgress, u.Projects[0].Status)
	assert.NotNil(t, u.Experiences)
	assert.NotNil(t, u.Education)
	assert.NotNil(t, u.Skills)
}

func TestValidate_AcceptsMinimalUser(t *testing.T) {
	u := validUser()
	Normalize(&u)
	assert.NoError(t, Validate(u))
}

func TestValidate_UserFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *User)
		field  string
	}{
		{"missing name", func(u *User) { u.Name = "" }, "name"},
		{"short name", func(u *User) { u.Name = "A" }, "name"},
		{"long name", func(u *User) { u.Name = strings.Repeat("a", 51) }, "name"},
		{"missing email", func(u *User) { u.Email = "" }, "email"},
		{"bad email", func(u *User) { u.Email = "not-an-email" }, "email"},
		{"age zero", func(u *User) { u.Age = ptr(0) }, "age"},
		{"age too high", func(u *User) { u.Age = ptr(121) }, "age"},
		{"bad phone", func(u *User) { u.Phone = ptr("call me") }, "phone"},
		{"bad linkedin", func(u *User) { u.LinkedInURL = "linkedin.com/in/ann" }, "linkedInUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(&u)
			assert.Equal(t, []string{tt.field}, violationFields(t, Validate(u)))
		})
	}
}

func TestValidate_PhoneFormats(t *testing.T) {
	for _, p := range []string{"+1 (555) 123-4567", "5551234567", "+44 20 7946 0958"} {
		u := validUser()
		u.Phone = ptr(p)
		assert.NoError(t, Validate(u), p)
	}
}

func TestValidate_ExperienceCurrentJobRejectsEndDate(t *testing.T) {
	vs := ValidateExperience(Experience{
		Company:      "Acme",
		Position:     "Engineer",
		StartDate:    jan2020,
		EndDate:      ptr(jan2021),
		IsCurrentJob: true,
	}, "")
	require.Len(t, vs, 1)
	assert.Equal(t, "endDate", vs[0].Field)
}

func TestValidate_ExperienceEndDateOrdering(t *testing.T) {
	base := Experience{Company: "Acme", Position: "Engineer", StartDate: jan2021}

	before := base
	before.EndDate = ptr(jan2020)
	assert.Len(t, ValidateExperience(before, ""), 1)

	after := base
	after.EndDate = ptr(jan2021.AddDate(0, 6, 0))
	assert.Empty(t, ValidateExperience(after, ""))

	current := base
	current.IsCurrentJob = true
	assert.Empty(t, ValidateExperience(current, ""))
}

func TestValidate_ProjectEndDate(t *testing.T) {
	base := Project{
		Title:        "Site",
		Description:  "Portfolio",
		Technologies: []string{"go"},
		StartDate:    jan2020,
		Status:       ProjectCompleted,
	}

	tests := []struct {
		name string
		end  time.Time
		ok   bool
	}{
		{"equal", jan2020, false},
		{"before", jan2020.Add(-time.Hour), false},
		{"after", jan2020.Add(time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			p.EndDate = ptr(tt.end)
			vs := ValidateProject(p, "")
			if tt.ok {
				assert.Empty(t, vs)
			} else {
				require.Len(t, vs, 1)
				assert.Equal(t, "endDate", vs[0].Field)
			}
		})
	}
}

func TestValidate_ProjectFields(t *testing.T) {
	p := Project{
		Title:     "Site",
		GithubURL: "https://gitlab.com/ann/site",
		LiveURL:   "ftp://site",
		StartDate: jan2020,
		Status:    "archived",
	}
	vs := ValidateProject(p, "projects.0.")

	fields := make([]string, 0, len(vs))
	for _, v := range vs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{
		"projects.0.description",
		"projects.0.technologies",
		"projects.0.githubUrl",
		"projects.0.liveUrl",
		"projects.0.status",
	}, fields)
}

func TestValidate_EducationEndDate(t *testing.T) {
	base := Education{
		Institution:  "MIT",
		Degree:       "BSc",
		FieldOfStudy: "CS",
		StartDate:    jan2020,
	}

	equal := base
	equal.EndDate = ptr(jan2020)
	assert.Len(t, ValidateEducation(equal, ""), 1)

	later := base
	later.EndDate = ptr(jan2021)
	assert.Empty(t, ValidateEducation(later, ""))

	studying := later
	studying.IsCurrentlyStudying = true
	assert.Len(t, ValidateEducation(studying, ""), 1)
}

func TestValidate_EducationGPA(t *testing.T) {
	base := Education{Institution: "MIT", Degree: "BSc", FieldOfStudy: "CS", StartDate: jan2020}

	for _, gpa := range []float64{0, 3.5, 4.0} {
		ed := base
		ed.GPA = ptr(gpa)
		assert.Empty(t, ValidateEducation(ed, ""), "gpa %v", gpa)
	}
	for _, gpa := range []float64{-0.1, 4.01} {
		ed := base
		ed.GPA = ptr(gpa)
		assert.Len(t, ValidateEducation(ed, ""), 1, "gpa %v", gpa)
	}
}

func TestValidate_SkillYearsBoundaries(t *testing.T) {
	base := Skill{Name: "Go", Category: CategoryTechnical, Proficiency: ProficiencyExpert}

	for _, y := range []float64{0, 25, 50} {
		s := base
		s.YearsOfExperience = ptr(y)
		assert.Empty(t, ValidateSkill(s, ""), "years %v", y)
	}
	for _, y := range []float64{-1, 50.5, 51} {
		s := base
		s.YearsOfExperience = ptr(y)
		vs := ValidateSkill(s, "")
		require.Len(t, vs, 1, "years %v", y)
		assert.Equal(t, "yearsOfExperience", vs[0].Field)
	}
}

func TestValidate_SkillEnums(t *testing.T) {
	vs := ValidateSkill(Skill{Name: "Go", Category: "hobby"}, "skills.2.")
	require.Len(t, vs, 2)
	assert.Equal(t, "skills.2.category", vs[0].Field)
	assert.Equal(t, "skills.2.proficiency", vs[1].Field)
	assert.Equal(t, "Proficiency level is required", vs[1].Message)
}

func TestValidate_NestedPathsAndMessage(t *testing.T) {
	u := validUser()
	u.Experiences = []Experience{{Company: "Acme", StartDate: jan2020}}
	u.Skills = []Skill{{Name: "Go", Category: CategoryTool, Proficiency: ProficiencyBeginner}}
	Normalize(&u)

	err := Validate(u)
	assert.Equal(t, []string{"experiences.0.position"}, violationFields(t, err))
	assert.Equal(t, "Position is required", err.Error())
}

func TestNewValidationError_NilWhenEmpty(t *testing.T) {
	assert.NoError(t, NewValidationError(nil))
}

func TestValidate_RuleMessages(t *testing.T) {
	vs := ValidateProject(Project{
		Title:        strings.Repeat("t", 101),
		Description:  "Portfolio",
		Technologies: []string{"go"},
		StartDate:    jan2020,
		Status:       "archived",
	}, "projects.0.")
	require.Len(t, vs, 2)
	assert.Equal(t, Violation{Field: "projects.0.title", Message: "Title cannot exceed 100 characters"}, vs[0])
	assert.Equal(t, Violation{Field: "projects.0.status", Message: "`archived` is not a valid project status"}, vs[1])

	vs = ValidateSkill(Skill{Category: CategorySoft, Proficiency: "guru"}, "")
	require.Len(t, vs, 2)
	assert.Equal(t, "Skill name is required", vs[0].Message)
	assert.Equal(t, "`guru` is not a valid proficiency level", vs[1].Message)
}

func TestValidate_NameLengthCountsRunes(t *testing.T) {
	u := validUser()
	u.Name = "Žo"
	assert.NoError(t, Validate(u))

	u.Name = strings.Repeat("é", 51)
	err := Validate(u)
	assert.Equal(t, []string{"name"}, violationFields(t, err))
	assert.Equal(t, "Name cannot exceed 50 characters", err.Error())
}

func TestValidate_ProjectGithubURL(t *testing.T) {
	base := Project{Title: "Site", Description: "Portfolio", Technologies: []string{"go"}, StartDate: jan2020, Status: ProjectOnHold}

	ok := base
	ok.GithubURL = "https://github.com/ann/site"
	assert.Empty(t, ValidateProject(ok, ""))

	bare := base
	bare.GithubURL = "https://github.com/"
	vs := ValidateProject(bare, "")
	require.Len(t, vs, 1)
	assert.Equal(t, "Please enter a valid GitHub URL", vs[0].Message)
}
