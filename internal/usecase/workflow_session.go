package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go-posting-workflow/internal/domain"
)

// WorkflowSession wires one author's record store, draft manager and step
// pointer together. Single-author, single-session semantics: concurrent
// editors of one draft are out of scope.
type WorkflowSession struct {
	AuthorID string

	Records *RecordStore
	Drafts  *DraftManager

	mu      sync.Mutex
	step    int
	offer   *ResumeOffer
	running bool
	cancel  context.CancelFunc
}

// mount checks for saved drafts and surfaces the resume offer, if any. The
// autosave loop starts only once the offer is resolved (or when there was
// nothing to offer).
func (s *WorkflowSession) mount(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = domain.StepBasics
	s.offer = s.Drafts.PendingOffer(ctx)
	if s.offer == nil {
		s.startLocked()
	}
}

// PendingOffer returns the unresolved resume/discard prompt, nil otherwise.
func (s *WorkflowSession) PendingOffer() *ResumeOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offer
}

// ResolveResume answers the mount-time prompt. Accepting hydrates the record
// and restores the step pointer; declining wipes both draft generations.
// Either way the workflow becomes active and autosave starts.
func (s *WorkflowSession) ResolveResume(ctx context.Context, accept bool) *ResumeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offer == nil {
		return nil
	}
	state := s.Drafts.Reconcile(ctx, domain.DecisionFunc(func(string) bool { return accept }))
	if state != nil && state.Resumed {
		s.Records.Hydrate(state.Posting)
		s.step = state.Step
	}
	s.offer = nil
	s.startLocked()
	return state
}

func (s *WorkflowSession) startLocked() {
	if s.running {
		return
	}
	s.running = true
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	// snapVersion flows from the snapshot call to the saved callback of the
	// same tick; Run drives both from one goroutine.
	var snapVersion uint64
	go s.Drafts.Run(runCtx, func() (domain.Posting, int) {
		// Live read at fire time; never a snapshot captured at arm time
		p, v := s.Records.SnapshotVersioned()
		snapVersion = v
		return p, s.CurrentStep()
	}, func() {
		s.Records.MarkSavedVersion(snapVersion)
	})
}

// Active reports whether the workflow is editable (resume prompt resolved).
func (s *WorkflowSession) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *WorkflowSession) CurrentStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *WorkflowSession) SetStep(step int) {
	s.mu.Lock()
	s.step = clampStep(step)
	s.mu.Unlock()
}

// Reset returns the session to a fresh baseline after a publish or a
// template application.
func (s *WorkflowSession) Reset(p domain.Posting) {
	s.Records.Hydrate(p)
	s.Records.MarkSaved()
	s.SetStep(domain.StepBasics)
}

func (s *WorkflowSession) teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.running = false
}

// SessionManager hands out one workflow session per author, mounting it on
// first touch and tearing every autosave loop down on shutdown.
type SessionManager struct {
	drafts   domain.DraftRepository
	legacy   domain.LegacyDraftStore
	interval time.Duration
	log      *slog.Logger

	mu       sync.Mutex
	sessions map[string]*WorkflowSession
}

func NewSessionManager(drafts domain.DraftRepository, legacy domain.LegacyDraftStore, interval time.Duration, log *slog.Logger) *SessionManager {
	return &SessionManager{
		drafts:   drafts,
		legacy:   legacy,
		interval: interval,
		log:      log,
		sessions: make(map[string]*WorkflowSession),
	}
}

// Get returns the author's session, creating and mounting it on first use.
func (sm *SessionManager) Get(ctx context.Context, authorID string) *WorkflowSession {
	sm.mu.Lock()
	if s, ok := sm.sessions[authorID]; ok {
		sm.mu.Unlock()
		return s
	}
	s := &WorkflowSession{
		AuthorID: authorID,
		Records:  NewRecordStore(DefaultPosting()),
		Drafts:   NewDraftManager(sm.drafts, sm.legacy, authorID, sm.interval, sm.log),
	}
	sm.sessions[authorID] = s
	sm.mu.Unlock()

	s.mount(ctx)
	return s
}

// Drop tears one session down, e.g. after a successful publish.
func (sm *SessionManager) Drop(authorID string) {
	sm.mu.Lock()
	s, ok := sm.sessions[authorID]
	if ok {
		delete(sm.sessions, authorID)
	}
	sm.mu.Unlock()
	if ok {
		s.teardown()
	}
}

// Close stops every autosave loop. Called on server shutdown.
func (sm *SessionManager) Close() {
	sm.mu.Lock()
	sessions := make([]*WorkflowSession, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.sessions = make(map[string]*WorkflowSession)
	sm.mu.Unlock()

	for _, s := range sessions {
		s.teardown()
	}
}
