package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// ============================================================================
// Enums
// ============================================================================

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentTemporary  EmploymentType = "temporary"
)

func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship, EmploymentTemporary:
		return true
	}
	return false
}

type RemoteType string

const (
	RemoteFull   RemoteType = "remote"
	RemoteHybrid RemoteType = "hybrid"
	RemoteOnsite RemoteType = "onsite"
)

func (t RemoteType) IsValid() bool {
	switch t {
	case RemoteFull, RemoteHybrid, RemoteOnsite:
		return true
	}
	return false
}

type SeniorityLevel string

const (
	SeniorityEntry     SeniorityLevel = "entry"
	SeniorityMid       SeniorityLevel = "mid"
	SenioritySenior    SeniorityLevel = "senior"
	SeniorityLead      SeniorityLevel = "lead"
	SeniorityExecutive SeniorityLevel = "executive"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
)

type SalaryPeriod string

const (
	SalaryPerYear  SalaryPeriod = "year"
	SalaryPerMonth SalaryPeriod = "month"
	SalaryPerWeek  SalaryPeriod = "week"
	SalaryPerHour  SalaryPeriod = "hour"
)

type ApplicationMethod string

const (
	ApplyEasy     ApplicationMethod = "easy-apply"
	ApplyExternal ApplicationMethod = "external-link"
	ApplyEmail    ApplicationMethod = "email"
)

func (m ApplicationMethod) IsValid() bool {
	switch m {
	case ApplyEasy, ApplyExternal, ApplyEmail:
		return true
	}
	return false
}

type PostingStatus string

const (
	StatusDraft  PostingStatus = "draft"
	StatusActive PostingStatus = "active"
)

// ============================================================================
// Posting - the authored record
// ============================================================================

// CustomQuestion is an author-defined screening question attached to a posting.
type CustomQuestion struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// Posting is the full authored entity built across the workflow. Salary
// bounds travel as numeric strings: empty means "not provided".
type Posting struct {
	// Identity / basics
	Title          string         `json:"title"`
	EmploymentType EmploymentType `json:"employment_type"`
	Location       string         `json:"location"`
	RemoteType     RemoteType     `json:"remote_type"`
	SeniorityLevel SeniorityLevel `json:"seniority_level,omitempty"`

	// Content. Description is rich text carried as an HTML string.
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Skills           []string `json:"skills"`

	// Compensation
	SalaryMin    string       `json:"salary_min"`
	SalaryMax    string       `json:"salary_max"`
	Currency     Currency     `json:"currency"`
	SalaryPeriod SalaryPeriod `json:"salary_period"`
	Benefits     []string     `json:"benefits"`

	// Application settings
	ApplicationMethod  ApplicationMethod `json:"application_method"`
	ExternalLink       string            `json:"external_link"`
	ApplicationEmail   string            `json:"application_email"`
	RequireCoverLetter bool              `json:"require_cover_letter"`
	RequirePortfolio   bool              `json:"require_portfolio"`
	CustomQuestions    []CustomQuestion  `json:"custom_questions"`

	// Publishing
	Status         PostingStatus `json:"status"`
	PublishDate    string        `json:"publish_date"`
	ExpirationDate string        `json:"expiration_date"`
	AutoExpire     bool          `json:"auto_expire"`
	PromoteJob     bool          `json:"promote_job"`
}

// Clone returns a deep copy; list fields never alias the receiver's.
func (p Posting) Clone() Posting {
	out := p
	out.Responsibilities = cloneStrings(p.Responsibilities)
	out.Requirements = cloneStrings(p.Requirements)
	out.Skills = cloneStrings(p.Skills)
	out.Benefits = cloneStrings(p.Benefits)
	if p.CustomQuestions != nil {
		out.CustomQuestions = make([]CustomQuestion, len(p.CustomQuestions))
		for i, q := range p.CustomQuestions {
			q.Options = cloneStrings(q.Options)
			out.CustomQuestions[i] = q
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// dedupeStrings drops repeated entries, keeping first-occurrence order.
func dedupeStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ============================================================================
// PostingPatch - shallow partial update
// ============================================================================

// PostingPatch is a partial Posting. A nil field is "not present" and leaves
// the current value untouched; a present list field replaces the current list
// wholesale (callers read-modify-write for add/remove mutations).
type PostingPatch struct {
	Title          *string         `json:"title,omitempty"`
	EmploymentType *EmploymentType `json:"employment_type,omitempty"`
	Location       *string         `json:"location,omitempty"`
	RemoteType     *RemoteType     `json:"remote_type,omitempty"`
	SeniorityLevel *SeniorityLevel `json:"seniority_level,omitempty"`

	Description      *string   `json:"description,omitempty"`
	Responsibilities *[]string `json:"responsibilities,omitempty"`
	Requirements     *[]string `json:"requirements,omitempty"`
	Skills           *[]string `json:"skills,omitempty"`

	SalaryMin    *string       `json:"salary_min,omitempty"`
	SalaryMax    *string       `json:"salary_max,omitempty"`
	Currency     *Currency     `json:"currency,omitempty"`
	SalaryPeriod *SalaryPeriod `json:"salary_period,omitempty"`
	Benefits     *[]string     `json:"benefits,omitempty"`

	ApplicationMethod  *ApplicationMethod `json:"application_method,omitempty"`
	ExternalLink       *string            `json:"external_link,omitempty"`
	ApplicationEmail   *string            `json:"application_email,omitempty"`
	RequireCoverLetter *bool              `json:"require_cover_letter,omitempty"`
	RequirePortfolio   *bool              `json:"require_portfolio,omitempty"`
	CustomQuestions    *[]CustomQuestion  `json:"custom_questions,omitempty"`

	Status         *PostingStatus `json:"status,omitempty"`
	PublishDate    *string        `json:"publish_date,omitempty"`
	ExpirationDate *string        `json:"expiration_date,omitempty"`
	AutoExpire     *bool          `json:"auto_expire,omitempty"`
	PromoteJob     *bool          `json:"promote_job,omitempty"`
}

// Apply merges the patch onto p and returns the result. Shallow per top-level
// field; present list fields replace, never concatenate.
func (patch PostingPatch) Apply(p Posting) Posting {
	out := p.Clone()
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.EmploymentType != nil {
		out.EmploymentType = *patch.EmploymentType
	}
	if patch.Location != nil {
		out.Location = *patch.Location
	}
	if patch.RemoteType != nil {
		out.RemoteType = *patch.RemoteType
	}
	if patch.SeniorityLevel != nil {
		out.SeniorityLevel = *patch.SeniorityLevel
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Responsibilities != nil {
		out.Responsibilities = cloneStrings(*patch.Responsibilities)
	}
	if patch.Requirements != nil {
		out.Requirements = cloneStrings(*patch.Requirements)
	}
	if patch.Skills != nil {
		// Skills are a set; repeated entries collapse to the first occurrence
		out.Skills = dedupeStrings(*patch.Skills)
	}
	if patch.SalaryMin != nil {
		out.SalaryMin = *patch.SalaryMin
	}
	if patch.SalaryMax != nil {
		out.SalaryMax = *patch.SalaryMax
	}
	if patch.Currency != nil {
		out.Currency = *patch.Currency
	}
	if patch.SalaryPeriod != nil {
		out.SalaryPeriod = *patch.SalaryPeriod
	}
	if patch.Benefits != nil {
		out.Benefits = cloneStrings(*patch.Benefits)
	}
	if patch.ApplicationMethod != nil {
		out.ApplicationMethod = *patch.ApplicationMethod
	}
	if patch.ExternalLink != nil {
		out.ExternalLink = *patch.ExternalLink
	}
	if patch.ApplicationEmail != nil {
		out.ApplicationEmail = *patch.ApplicationEmail
	}
	if patch.RequireCoverLetter != nil {
		out.RequireCoverLetter = *patch.RequireCoverLetter
	}
	if patch.RequirePortfolio != nil {
		out.RequirePortfolio = *patch.RequirePortfolio
	}
	if patch.CustomQuestions != nil {
		qs := make([]CustomQuestion, len(*patch.CustomQuestions))
		copy(qs, *patch.CustomQuestions)
		out.CustomQuestions = qs
	}
	if patch.Status != nil {
		out.Status = *patch.Status
	}
	if patch.PublishDate != nil {
		out.PublishDate = *patch.PublishDate
	}
	if patch.ExpirationDate != nil {
		out.ExpirationDate = *patch.ExpirationDate
	}
	if patch.AutoExpire != nil {
		out.AutoExpire = *patch.AutoExpire
	}
	if patch.PromoteJob != nil {
		out.PromoteJob = *patch.PromoteJob
	}
	return out
}

// ============================================================================
// Finalized posting and collaborator boundaries
// ============================================================================

// ValidationResult maps field name to a human-readable error message for one
// step. An empty map means the step is valid.
type ValidationResult map[string]string

// FinalizedPosting is a Posting that passed the submission gate, plus the
// generated metadata the external store expects.
type FinalizedPosting struct {
	ID string `json:"id"`
	Posting
	AuthorID       string    `json:"author_id"`
	ApplicantCount int       `json:"applicant_count"`
	ViewCount      int       `json:"view_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// PostingStore is the external job-store collaborator. The workflow never
// inspects its internals.
type PostingStore interface {
	Create(ctx context.Context, posting *FinalizedPosting) error
	FetchActive(ctx context.Context, limit, offset int) ([]FinalizedPosting, int64, error)
}

// CapacityChecker reports whether the author has remaining posting credit.
// Consulted only when publishing immediately (status == active).
type CapacityChecker interface {
	HasRemainingCredit(ctx context.Context, authorID string) (bool, error)
}
