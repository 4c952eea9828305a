package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-posting-workflow/internal/domain"
	"go-posting-workflow/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newGate(capacity *MockCapacityChecker, store *MockPostingStore) *usecase.SubmissionGate {
	return usecase.NewSubmissionGate(newStepValidator(), capacity, store)
}

func TestSubmitFirstFailingStepWins(t *testing.T) {
	capacity := new(MockCapacityChecker)
	store := new(MockPostingStore)
	gate := newGate(capacity, store)

	p := validPosting()
	p.Title = "Dev"          // step 1 invalid
	p.Skills = nil           // step 2 invalid too
	p.ApplicationMethod = "" // step 4 invalid too

	_, err := gate.Submit(context.Background(), "author-1", p)

	var stepErr *usecase.StepValidationError
	assert.ErrorAs(t, err, &stepErr)
	assert.Equal(t, domain.StepBasics, stepErr.Step)
	assert.Contains(t, stepErr.Fields, "title")
	// Later steps were never reached
	assert.NotContains(t, stepErr.Fields, "skills")
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	capacity.AssertNotCalled(t, "HasRemainingCredit", mock.Anything, mock.Anything)
}

func TestSubmitDraftSkipsCapacityCheck(t *testing.T) {
	capacity := new(MockCapacityChecker)
	store := new(MockPostingStore)
	gate := newGate(capacity, store)

	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	p := validPosting()
	p.Status = domain.StatusDraft

	finalized, err := gate.Submit(context.Background(), "author-1", p)
	assert.NoError(t, err)
	assert.NotEmpty(t, finalized.ID)
	assert.Equal(t, "author-1", finalized.AuthorID)
	assert.Zero(t, finalized.ApplicantCount)
	assert.Zero(t, finalized.ViewCount)
	capacity.AssertNotCalled(t, "HasRemainingCredit", mock.Anything, mock.Anything)
}

func TestSubmitPublishConsultsCapacity(t *testing.T) {
	t.Run("Blocked without credit", func(t *testing.T) {
		capacity := new(MockCapacityChecker)
		store := new(MockPostingStore)
		gate := newGate(capacity, store)

		capacity.On("HasRemainingCredit", mock.Anything, "author-1").Return(false, nil)

		p := validPosting()
		p.Status = domain.StatusActive

		_, err := gate.Submit(context.Background(), "author-1", p)
		var capErr *usecase.CapacityError
		assert.ErrorAs(t, err, &capErr)
		assert.Equal(t, "author-1", capErr.AuthorID)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Published with credit", func(t *testing.T) {
		capacity := new(MockCapacityChecker)
		store := new(MockPostingStore)
		gate := newGate(capacity, store)

		capacity.On("HasRemainingCredit", mock.Anything, "author-1").Return(true, nil)
		store.On("Create", mock.Anything, mock.Anything).Return(nil)

		p := validPosting()
		p.Status = domain.StatusActive

		finalized, err := gate.Submit(context.Background(), "author-1", p)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusActive, finalized.Posting.Status)
		store.AssertExpectations(t)
	})

	t.Run("Capacity check failure is surfaced", func(t *testing.T) {
		capacity := new(MockCapacityChecker)
		store := new(MockPostingStore)
		gate := newGate(capacity, store)

		capacity.On("HasRemainingCredit", mock.Anything, "author-1").Return(false, errStorage)

		p := validPosting()
		p.Status = domain.StatusActive

		_, err := gate.Submit(context.Background(), "author-1", p)
		assert.ErrorIs(t, err, errStorage)
		assert.Contains(t, err.Error(), "capacity check failed")
	})
}

func TestSubmitValidationBeforeCapacity(t *testing.T) {
	capacity := new(MockCapacityChecker)
	store := new(MockPostingStore)
	gate := newGate(capacity, store)

	p := validPosting()
	p.Status = domain.StatusActive
	p.SalaryMin, p.SalaryMax = "200000", "100000" // step 3 invalid

	_, err := gate.Submit(context.Background(), "author-1", p)
	var stepErr *usecase.StepValidationError
	assert.ErrorAs(t, err, &stepErr)
	assert.Equal(t, domain.StepCompensation, stepErr.Step)
	capacity.AssertNotCalled(t, "HasRemainingCredit", mock.Anything, mock.Anything)
}

func TestSubmitStoreFailure(t *testing.T) {
	capacity := new(MockCapacityChecker)
	store := new(MockPostingStore)
	gate := newGate(capacity, store)

	store.On("Create", mock.Anything, mock.Anything).Return(errStorage)

	_, err := gate.Submit(context.Background(), "author-1", validPosting())
	assert.True(t, errors.Is(err, errStorage))
}

func TestSubmitFinalizedIsDetached(t *testing.T) {
	capacity := new(MockCapacityChecker)
	store := new(MockPostingStore)
	gate := newGate(capacity, store)

	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	p := validPosting()
	finalized, err := gate.Submit(context.Background(), "author-1", p)
	assert.NoError(t, err)

	p.Skills[0] = "mutated"
	assert.Equal(t, "Go", finalized.Posting.Skills[0])
}
