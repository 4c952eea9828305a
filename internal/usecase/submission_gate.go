package usecase

import (
	"context"
	"fmt"
	"time"

	"go-posting-workflow/internal/domain"

	"github.com/google/uuid"
)

// StepValidationError reports the first failing step and only that step's
// error map. The step number is the "active step" the editor jumps back to.
type StepValidationError struct {
	Step   int
	Fields domain.ValidationResult
}

func (e *StepValidationError) Error() string {
	return fmt.Sprintf("step %d has %d invalid field(s)", e.Step, len(e.Fields))
}

// CapacityError blocks publishing until the author acquires posting credit.
// It never affects step navigation.
type CapacityError struct {
	AuthorID string
}

func (e *CapacityError) Error() string {
	return "no job posting credit remaining"
}

// SubmissionGate re-validates the whole record across all steps, then runs
// the external capacity check, before handing a finalized posting to the
// job-store collaborator.
type SubmissionGate struct {
	steps    *StepValidator
	capacity domain.CapacityChecker
	store    domain.PostingStore
}

func NewSubmissionGate(steps *StepValidator, capacity domain.CapacityChecker, store domain.PostingStore) *SubmissionGate {
	return &SubmissionGate{
		steps:    steps,
		capacity: capacity,
		store:    store,
	}
}

// Submit validates steps in ascending order and stops at the first failure;
// later steps are never validated while an earlier one is invalid. The
// capacity check runs last, and only when publishing immediately. This
// ordering is a contract: it decides which step the caller surfaces.
func (g *SubmissionGate) Submit(ctx context.Context, authorID string, p domain.Posting) (*domain.FinalizedPosting, error) {
	for step := 1; step <= domain.TotalSteps; step++ {
		if fields := g.steps.Validate(step, p); len(fields) > 0 {
			return nil, &StepValidationError{Step: step, Fields: fields}
		}
	}

	if p.Status == domain.StatusActive {
		ok, err := g.capacity.HasRemainingCredit(ctx, authorID)
		if err != nil {
			return nil, fmt.Errorf("capacity check failed: %w", err)
		}
		if !ok {
			return nil, &CapacityError{AuthorID: authorID}
		}
	}

	finalized := &domain.FinalizedPosting{
		ID:             uuid.NewString(),
		Posting:        p.Clone(),
		AuthorID:       authorID,
		ApplicantCount: 0,
		ViewCount:      0,
		CreatedAt:      time.Now(),
	}
	if err := g.store.Create(ctx, finalized); err != nil {
		return nil, err
	}
	return finalized, nil
}
