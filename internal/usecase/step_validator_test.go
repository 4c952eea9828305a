package usecase_test

import (
	"strconv"
	"strings"
	"testing"

	"go-posting-workflow/internal/domain"
	"go-posting-workflow/internal/usecase"
	"go-posting-workflow/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func newStepValidator() *usecase.StepValidator {
	validate := validator.New()
	validation.RegisterValidators(validate)
	return usecase.NewStepValidator(validate)
}

func TestValidateBasics(t *testing.T) {
	v := newStepValidator()

	t.Run("Valid posting has no errors", func(t *testing.T) {
		assert.Empty(t, v.Validate(domain.StepBasics, validPosting()))
	})

	t.Run("Title out of bounds", func(t *testing.T) {
		p := validPosting()
		p.Title = "Dev"
		result := v.Validate(domain.StepBasics, p)
		assert.Equal(t, "Job title must be between 5 and 100 characters", result["title"])

		p.Title = strings.Repeat("x", 101)
		result = v.Validate(domain.StepBasics, p)
		assert.Equal(t, "Job title must be between 5 and 100 characters", result["title"])
	})

	t.Run("Title boundary must be alphanumeric", func(t *testing.T) {
		p := validPosting()
		p.Title = "!Senior Engineer"
		result := v.Validate(domain.StepBasics, p)
		assert.Equal(t, "Job title must start and end with a letter or number", result["title"])

		p.Title = "Senior Engineer."
		result = v.Validate(domain.StepBasics, p)
		assert.Equal(t, "Job title must start and end with a letter or number", result["title"])
	})

	t.Run("Length rule wins over format rule", func(t *testing.T) {
		p := validPosting()
		p.Title = "!ab"
		result := v.Validate(domain.StepBasics, p)
		assert.Equal(t, "Job title must be between 5 and 100 characters", result["title"])
	})

	t.Run("Required selections", func(t *testing.T) {
		p := validPosting()
		p.EmploymentType = ""
		p.Location = "   "
		p.RemoteType = ""
		result := v.Validate(domain.StepBasics, p)
		assert.Equal(t, "Employment type is required", result["employment_type"])
		assert.Equal(t, "Location is required", result["location"])
		assert.Equal(t, "Work arrangement is required", result["remote_type"])
	})
}

func TestValidateContent(t *testing.T) {
	v := newStepValidator()

	t.Run("Description length counts visible text not markup", func(t *testing.T) {
		p := validPosting()
		// 150 visible characters padded with markup past 200 raw bytes
		p.Description = "<p><strong>" + strings.Repeat("a", 150) + "</strong></p><ul><li></li><li></li><li></li></ul>"
		result := v.Validate(domain.StepDescription, p)
		assert.Equal(t, "Description must be between 200 and 10000 characters", result["description"])
	})

	t.Run("Plain text at the minimum passes", func(t *testing.T) {
		p := validPosting()
		p.Description = strings.Repeat("b", 200)
		assert.Empty(t, v.Validate(domain.StepDescription, p))
	})

	t.Run("Skills count", func(t *testing.T) {
		p := validPosting()
		p.Skills = []string{"Go", "SQL"}
		result := v.Validate(domain.StepDescription, p)
		assert.Equal(t, "Add between 3 and 20 skills", result["skills"])

		p.Skills = nil
		for i := 0; i < 21; i++ {
			p.Skills = append(p.Skills, "Skill "+strconv.Itoa(i))
		}
		result = v.Validate(domain.StepDescription, p)
		assert.Equal(t, "Add between 3 and 20 skills", result["skills"])
	})

	t.Run("Repeated skills count once", func(t *testing.T) {
		p := validPosting()
		p.Skills = []string{"Go", "Go", "Go"}
		result := v.Validate(domain.StepDescription, p)
		assert.Equal(t, "Add between 3 and 20 skills", result["skills"])
	})
}

func TestValidateCompensation(t *testing.T) {
	v := newStepValidator()

	t.Run("Both bounds optional", func(t *testing.T) {
		p := validPosting()
		p.SalaryMin, p.SalaryMax = "", ""
		assert.Empty(t, v.Validate(domain.StepCompensation, p))

		p.SalaryMin, p.SalaryMax = "50000", ""
		assert.Empty(t, v.Validate(domain.StepCompensation, p))
	})

	t.Run("Min must be strictly below max", func(t *testing.T) {
		p := validPosting()
		p.SalaryMin, p.SalaryMax = "90000", "90000"
		result := v.Validate(domain.StepCompensation, p)
		assert.Equal(t, "Minimum salary must be less than maximum salary", result["salary"])

		p.SalaryMin, p.SalaryMax = "120000", "90000"
		result = v.Validate(domain.StepCompensation, p)
		assert.Equal(t, "Minimum salary must be less than maximum salary", result["salary"])
	})

	t.Run("Unparseable amounts fail the ordering rule", func(t *testing.T) {
		p := validPosting()
		p.SalaryMin, p.SalaryMax = "abc", "90000"
		result := v.Validate(domain.StepCompensation, p)
		assert.Equal(t, "Minimum salary must be less than maximum salary", result["salary"])
	})
}

func TestValidateApplication(t *testing.T) {
	v := newStepValidator()

	t.Run("Method required", func(t *testing.T) {
		p := validPosting()
		p.ApplicationMethod = ""
		result := v.Validate(domain.StepApplication, p)
		assert.Equal(t, "Application method is required", result["application_method"])
	})

	t.Run("External link must be a URL", func(t *testing.T) {
		p := validPosting()
		p.ApplicationMethod = domain.ApplyExternal
		p.ExternalLink = "not a url"
		result := v.Validate(domain.StepApplication, p)
		assert.Equal(t, "A valid application link is required", result["external_link"])

		p.ExternalLink = "https://jobs.example.com/apply"
		assert.Empty(t, v.Validate(domain.StepApplication, p))
	})

	t.Run("Email method must carry a valid address", func(t *testing.T) {
		p := validPosting()
		p.ApplicationMethod = domain.ApplyEmail
		p.ApplicationEmail = "hiring@"
		result := v.Validate(domain.StepApplication, p)
		assert.Equal(t, "A valid application email is required", result["application_email"])

		p.ApplicationEmail = "hiring@example.com"
		assert.Empty(t, v.Validate(domain.StepApplication, p))
	})

	t.Run("Easy apply needs nothing else", func(t *testing.T) {
		p := validPosting()
		p.ApplicationMethod = domain.ApplyEasy
		p.ExternalLink, p.ApplicationEmail = "", ""
		assert.Empty(t, v.Validate(domain.StepApplication, p))
	})
}

func TestValidatePublishingAndUnknownSteps(t *testing.T) {
	v := newStepValidator()
	p := domain.Posting{} // empty record

	assert.Empty(t, v.Validate(domain.StepPublishing, p))
	assert.Empty(t, v.Validate(0, p))
	assert.Empty(t, v.Validate(99, p))
}
