package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go-posting-workflow/internal/domain"
	"go-posting-workflow/pkg/apperror"
	"go-posting-workflow/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultPosting returns the fresh baseline every new session and every
// template application starts from.
func DefaultPosting() domain.Posting {
	return domain.Posting{
		Currency:     domain.CurrencyUSD,
		SalaryPeriod: domain.SalaryPerYear,
		Status:       domain.StatusDraft,
	}
}

// ApplyTemplate merges a template onto a fresh default baseline - never onto
// an in-progress draft. Selecting a template discards unsaved custom edits.
func ApplyTemplate(tpl domain.Template) domain.Posting {
	return tpl.Data.Apply(DefaultPosting())
}

// GeneratedContent is an accepted AI-generation payload. Zero-valued fields
// are treated as absent.
type GeneratedContent struct {
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Skills           []string `json:"skills"`
}

// GeneratedPatch converts an accepted payload to a partial update: present
// fields replace, absent fields leave the record alone.
func GeneratedPatch(gen GeneratedContent) domain.PostingPatch {
	patch := domain.PostingPatch{}
	if gen.Description != "" {
		patch.Description = &gen.Description
	}
	if gen.Responsibilities != nil {
		patch.Responsibilities = &gen.Responsibilities
	}
	if gen.Requirements != nil {
		patch.Requirements = &gen.Requirements
	}
	if gen.Skills != nil {
		patch.Skills = &gen.Skills
	}
	return patch
}

// ApplyGeneratedContent performs the same shallow/replace merge as a
// template, but onto the existing record mid-session.
func ApplyGeneratedContent(p domain.Posting, gen GeneratedContent) domain.Posting {
	return GeneratedPatch(gen).Apply(p)
}

// TemplateUsecase serves the template collection: immutable pre-built seeds
// plus the author's persisted templates.
type TemplateUsecase struct {
	repo     domain.TemplateRepository
	validate *validator.Validate
}

func NewTemplateUsecase(repo domain.TemplateRepository, validate *validator.Validate) *TemplateUsecase {
	return &TemplateUsecase{repo: repo, validate: validate}
}

// List returns pre-built templates first, then the author's own.
func (u *TemplateUsecase) List(ctx context.Context, authorID string) ([]domain.Template, error) {
	own, err := u.repo.FetchByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to list templates: "+err.Error(), err)
	}
	out := make([]domain.Template, 0, len(preBuiltTemplates)+len(own))
	out = append(out, preBuiltTemplates...)
	out = append(out, own...)
	return out, nil
}

func (u *TemplateUsecase) Get(ctx context.Context, authorID, id string) (*domain.Template, error) {
	for i := range preBuiltTemplates {
		if preBuiltTemplates[i].ID == id {
			tpl := preBuiltTemplates[i]
			return &tpl, nil
		}
	}
	tpl, err := u.repo.GetByID(ctx, authorID, id)
	if err != nil {
		return nil, apperror.NotFound("Template not found")
	}
	return tpl, nil
}

type SaveTemplateInput struct {
	Name        string              `json:"name" validate:"required,min=2,max=80"`
	Category    string              `json:"category" validate:"required,max=40"`
	Description string              `json:"description" validate:"max=300"`
	Data        domain.PostingPatch `json:"data"`
}

// Save appends a user template to the persisted collection.
func (u *TemplateUsecase) Save(ctx context.Context, authorID string, in SaveTemplateInput) (*domain.Template, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	// A template seeding a broken title would fail step validation the
	// moment it is applied; reject it at save time instead.
	if in.Data.Title != nil {
		if err := u.validate.Var(*in.Data.Title, "posting_title"); err != nil {
			return nil, apperror.BadRequest("Template job title must be 5-100 characters and start and end with a letter or number")
		}
	}
	now := time.Now()
	tpl := &domain.Template{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		IsPreBuilt:  false,
		CreatedAt:   &now,
		Data:        in.Data,
	}
	if err := u.repo.Append(ctx, authorID, tpl); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to save template: "+err.Error(), err)
	}
	return tpl, nil
}

// Delete removes a user template. Pre-built seeds are read-only.
func (u *TemplateUsecase) Delete(ctx context.Context, authorID, id string) error {
	for i := range preBuiltTemplates {
		if preBuiltTemplates[i].ID == id {
			return apperror.Forbidden("Pre-built templates cannot be deleted")
		}
	}
	if err := u.repo.DeleteByID(ctx, authorID, id); err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Template not found")
		}
		return apperror.New(http.StatusInternalServerError, "Failed to delete template: "+err.Error(), err)
	}
	return nil
}
