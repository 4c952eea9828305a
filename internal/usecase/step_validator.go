package usecase

import (
	"strconv"
	"strings"

	"go-posting-workflow/internal/domain"
	"go-posting-workflow/pkg/htmltext"
	"go-posting-workflow/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// User-facing rule messages. These exact strings are surfaced in the editor,
// so tests assert them verbatim.
const (
	MsgTitleLength        = "Job title must be between 5 and 100 characters"
	MsgTitleFormat        = "Job title must start and end with a letter or number"
	MsgEmploymentRequired = "Employment type is required"
	MsgLocationRequired   = "Location is required"
	MsgRemoteRequired     = "Work arrangement is required"
	MsgDescriptionLength  = "Description must be between 200 and 10000 characters"
	MsgSkillsCount        = "Add between 3 and 20 skills"
	MsgSalaryOrder        = "Minimum salary must be less than maximum salary"
	MsgMethodRequired     = "Application method is required"
	MsgLinkInvalid        = "A valid application link is required"
	MsgEmailInvalid       = "A valid application email is required"
)

const (
	titleMinLen       = 5
	titleMaxLen       = 100
	descriptionMinLen = 200
	descriptionMaxLen = 10000
	skillsMin         = 3
	skillsMax         = 20
)

// StepValidator maps (step, posting) to a field error map. Stateless: it
// receives a snapshot and owns nothing.
type StepValidator struct {
	validate *validator.Validate
}

func NewStepValidator(validate *validator.Validate) *StepValidator {
	return &StepValidator{validate: validate}
}

// Validate runs the rule table for one step. A step with no rules (step 5,
// publishing options) is unconditionally valid.
func (v *StepValidator) Validate(step int, p domain.Posting) domain.ValidationResult {
	result := domain.ValidationResult{}
	switch step {
	case domain.StepBasics:
		v.validateBasics(p, result)
	case domain.StepDescription:
		v.validateContent(p, result)
	case domain.StepCompensation:
		v.validateCompensation(p, result)
	case domain.StepApplication:
		v.validateApplication(p, result)
	}
	return result
}

func (v *StepValidator) validateBasics(p domain.Posting, result domain.ValidationResult) {
	titleLen := len([]rune(p.Title))
	if titleLen < titleMinLen || titleLen > titleMaxLen {
		result["title"] = MsgTitleLength
	} else if !validation.BoundaryAlphanumeric(p.Title) {
		result["title"] = MsgTitleFormat
	}
	if p.EmploymentType == "" {
		result["employment_type"] = MsgEmploymentRequired
	}
	if strings.TrimSpace(p.Location) == "" {
		result["location"] = MsgLocationRequired
	}
	if p.RemoteType == "" {
		result["remote_type"] = MsgRemoteRequired
	}
}

func (v *StepValidator) validateContent(p domain.Posting, result domain.ValidationResult) {
	// Length rules apply to the visible text, not the markup
	stripped := htmltext.StrippedLen(p.Description)
	if stripped < descriptionMinLen || stripped > descriptionMaxLen {
		result["description"] = MsgDescriptionLength
	}
	// Skills count as a set; a repeated entry is still one skill
	distinct := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		distinct[s] = struct{}{}
	}
	if len(distinct) < skillsMin || len(distinct) > skillsMax {
		result["skills"] = MsgSkillsCount
	}
}

func (v *StepValidator) validateCompensation(p domain.Posting, result domain.ValidationResult) {
	// Both bounds optional; the ordering rule only fires when both are set
	if p.SalaryMin == "" || p.SalaryMax == "" {
		return
	}
	if v.validate.Var(p.SalaryMin, "numeric_amount") != nil ||
		v.validate.Var(p.SalaryMax, "numeric_amount") != nil {
		result["salary"] = MsgSalaryOrder
		return
	}
	min, errMin := strconv.ParseFloat(p.SalaryMin, 64)
	max, errMax := strconv.ParseFloat(p.SalaryMax, 64)
	if errMin != nil || errMax != nil || min >= max {
		result["salary"] = MsgSalaryOrder
	}
}

func (v *StepValidator) validateApplication(p domain.Posting, result domain.ValidationResult) {
	if p.ApplicationMethod == "" {
		result["application_method"] = MsgMethodRequired
		return
	}
	switch p.ApplicationMethod {
	case domain.ApplyExternal:
		if v.validate.Var(p.ExternalLink, "required,url") != nil {
			result["external_link"] = MsgLinkInvalid
		}
	case domain.ApplyEmail:
		if v.validate.Var(p.ApplicationEmail, "required,email") != nil {
			result["application_email"] = MsgEmailInvalid
		}
	}
}
