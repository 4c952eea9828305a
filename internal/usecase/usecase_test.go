package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"go-posting-workflow/internal/domain"
	"go-posting-workflow/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// Shared test fixtures and fakes for the workflow usecases.

func ptr[T any](v T) *T { return &v }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// validPosting passes every step's rule table with status draft.
func validPosting() domain.Posting {
	return domain.Posting{
		Title:             "Senior Go Engineer",
		EmploymentType:    domain.EmploymentFullTime,
		Location:          "Berlin, Germany",
		RemoteType:        domain.RemoteHybrid,
		Description:       "<p>" + strings.Repeat("We build distributed systems in Go. ", 8) + "</p>",
		Skills:            []string{"Go", "PostgreSQL", "Redis"},
		SalaryMin:         "80000",
		SalaryMax:         "110000",
		Currency:          domain.CurrencyEUR,
		SalaryPeriod:      domain.SalaryPerYear,
		ApplicationMethod: domain.ApplyEasy,
		Status:            domain.StatusDraft,
	}
}

// memDraftRepo is an in-memory DraftRepository.
type memDraftRepo struct {
	mu     sync.Mutex
	drafts map[string]domain.Draft
	fail   error
}

func newMemDraftRepo() *memDraftRepo {
	return &memDraftRepo{drafts: make(map[string]domain.Draft)}
}

func (r *memDraftRepo) Upsert(ctx context.Context, draft *domain.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	d := *draft
	d.FormData = draft.FormData.Clone()
	r.drafts[draft.ID] = d
	return nil
}

func (r *memDraftRepo) Latest(ctx context.Context, authorID string) (*domain.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var own []domain.Draft
	for _, d := range r.drafts {
		if d.AuthorID == authorID {
			own = append(own, d)
		}
	}
	if len(own) == 0 {
		return nil, domain.ErrNotFound
	}
	sort.Slice(own, func(i, j int) bool { return own[i].LastSaved.After(own[j].LastSaved) })
	d := own[0]
	return &d, nil
}

func (r *memDraftRepo) FetchByAuthor(ctx context.Context, authorID string) ([]domain.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var own []domain.Draft
	for _, d := range r.drafts {
		if d.AuthorID == authorID {
			own = append(own, d)
		}
	}
	return own, nil
}

func (r *memDraftRepo) DeleteAllByAuthor(ctx context.Context, authorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, d := range r.drafts {
		if d.AuthorID == authorID {
			delete(r.drafts, id)
		}
	}
	return nil
}

func (r *memDraftRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}

// memLegacyStore is an in-memory LegacyDraftStore.
type memLegacyStore struct {
	mu    sync.Mutex
	slots map[string]domain.Posting
}

func newMemLegacyStore() *memLegacyStore {
	return &memLegacyStore{slots: make(map[string]domain.Posting)}
}

func (s *memLegacyStore) Load(authorID string) (*domain.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.slots[authorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := p.Clone()
	return &out, nil
}

func (s *memLegacyStore) Save(authorID string, posting domain.Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[authorID] = posting.Clone()
	return nil
}

func (s *memLegacyStore) Clear(authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, authorID)
	return nil
}

func (s *memLegacyStore) has(authorID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.slots[authorID]
	return ok
}

// Mock collaborators for the submission gate.

type MockPostingStore struct {
	mock.Mock
}

func (m *MockPostingStore) Create(ctx context.Context, posting *domain.FinalizedPosting) error {
	return m.Called(ctx, posting).Error(0)
}

func (m *MockPostingStore) FetchActive(ctx context.Context, limit, offset int) ([]domain.FinalizedPosting, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.FinalizedPosting), args.Get(1).(int64), args.Error(2)
}

type MockCapacityChecker struct {
	mock.Mock
}

func (m *MockCapacityChecker) HasRemainingCredit(ctx context.Context, authorID string) (bool, error) {
	args := m.Called(ctx, authorID)
	return args.Bool(0), args.Error(1)
}

type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) FetchByAuthor(ctx context.Context, authorID string) ([]domain.Template, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Template), args.Error(1)
}

func (m *MockTemplateRepo) GetByID(ctx context.Context, authorID, id string) (*domain.Template, error) {
	args := m.Called(ctx, authorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Template), args.Error(1)
}

func (m *MockTemplateRepo) Append(ctx context.Context, authorID string, tpl *domain.Template) error {
	return m.Called(ctx, authorID, tpl).Error(0)
}

func (m *MockTemplateRepo) DeleteByID(ctx context.Context, authorID, id string) error {
	return m.Called(ctx, authorID, id).Error(0)
}

// accept and decline answer the resume prompt.
var (
	accept  = domain.DecisionFunc(func(string) bool { return true })
	decline = domain.DecisionFunc(func(string) bool { return false })
)

var errStorage = errors.New("storage offline")

func newDraftManager(repo domain.DraftRepository, legacy domain.LegacyDraftStore, authorID string) *usecase.DraftManager {
	return usecase.NewDraftManager(repo, legacy, authorID, 0, testLogger())
}
