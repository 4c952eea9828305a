package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go-posting-workflow/internal/domain"

	"github.com/google/uuid"
)

// blurSaveFields are the inputs whose loss of focus triggers an immediate
// draft save.
var blurSaveFields = map[string]bool{
	"title":             true,
	"salary_min":        true,
	"salary_max":        true,
	"external_link":     true,
	"application_email": true,
}

// ResumeState is the outcome of mount-time reconciliation.
type ResumeState struct {
	Resumed bool
	Posting domain.Posting
	Step    int
	DraftID string
}

// ResumeOffer describes a saved draft the author can resume or discard.
type ResumeOffer struct {
	Generation string `json:"generation"` // "structured" or "legacy"
	Message    string `json:"message"`
}

// DraftManager owns every persisted draft copy for one authoring session.
// It is the only component that touches draft storage: the structured
// repository plus the legacy flat store it mirrors into. All writes are
// best-effort: failures are logged and swallowed, editing never blocks.
type DraftManager struct {
	repo     domain.DraftRepository
	legacy   domain.LegacyDraftStore
	authorID string
	interval time.Duration
	log      *slog.Logger

	// mu is the single-flight guard: no two draft writes are ever in
	// flight concurrently for this session.
	mu      sync.Mutex
	draftID string
}

func NewDraftManager(repo domain.DraftRepository, legacy domain.LegacyDraftStore, authorID string, interval time.Duration, log *slog.Logger) *DraftManager {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DraftManager{
		repo:     repo,
		legacy:   legacy,
		authorID: authorID,
		interval: interval,
		log:      log,
	}
}

// DraftID returns the id bound to this session, empty before the first save.
func (m *DraftManager) DraftID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draftID
}

// Save persists a draft snapshot. An empty draftID mints a new id and
// creates the draft; a non-empty one overwrites the same draft in place and
// advances last_saved. Every save is mirrored into the legacy flat store so
// the legacy slot always reflects the latest structured save. The returned
// id is bound to the session for subsequent saves.
func (m *DraftManager) Save(ctx context.Context, draftID string, posting domain.Posting, step int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(ctx, draftID, posting, step)
}

// SaveCurrent saves under the session's bound draft id, minting one on the
// first call.
func (m *DraftManager) SaveCurrent(ctx context.Context, posting domain.Posting, step int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(ctx, m.draftID, posting, step)
}

func (m *DraftManager) saveLocked(ctx context.Context, draftID string, posting domain.Posting, step int) string {
	if draftID == "" {
		draftID = uuid.NewString()
	}
	m.draftID = draftID

	draft := &domain.Draft{
		ID:        draftID,
		AuthorID:  m.authorID,
		FormData:  posting.Clone(),
		Step:      clampStep(step),
		LastSaved: time.Now(),
	}
	if err := m.repo.Upsert(ctx, draft); err != nil {
		m.log.Warn("draft autosave failed", "author", m.authorID, "draft", draftID, "error", err)
	}
	// Mirrored write for the previous storage generation
	if err := m.legacy.Save(m.authorID, posting); err != nil {
		m.log.Warn("legacy draft mirror failed", "author", m.authorID, "error", err)
	}
	return draftID
}

// OnRecordUpdated implements aggressive-mode autosave: once the session has
// produced a non-empty title, every record update is saved immediately.
// Reports whether a save was attempted.
func (m *DraftManager) OnRecordUpdated(ctx context.Context, posting domain.Posting, step int) bool {
	if strings.TrimSpace(posting.Title) == "" {
		return false
	}
	m.SaveCurrent(ctx, posting, step)
	return true
}

// OnFieldBlur saves immediately when one of the tracked fields loses focus.
// Reports whether a save was attempted.
func (m *DraftManager) OnFieldBlur(ctx context.Context, field string, posting domain.Posting, step int) bool {
	if !blurSaveFields[field] {
		return false
	}
	m.SaveCurrent(ctx, posting, step)
	return true
}

// Run drives the recurring autosave until ctx is torn down. The snapshot
// accessor is read at fire time so the saved record is always the current
// one, never a value captured when the timer was armed.
func (m *DraftManager) Run(ctx context.Context, snapshot func() (domain.Posting, int), saved func()) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			posting, step := snapshot()
			if strings.TrimSpace(posting.Title) == "" {
				continue
			}
			m.SaveCurrent(ctx, posting, step)
			if saved != nil {
				saved()
			}
		}
	}
}

// PendingOffer reports whether a saved draft exists to resume, preferring
// the structured generation. Read-only: it consumes nothing.
func (m *DraftManager) PendingOffer(ctx context.Context) *ResumeOffer {
	draft, err := m.repo.Latest(ctx, m.authorID)
	if err == nil {
		return &ResumeOffer{
			Generation: "structured",
			Message:    resumeMessage(draft.LastSaved),
		}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		m.log.Warn("draft lookup failed", "author", m.authorID, "error", err)
		return nil
	}

	if _, err := m.legacy.Load(m.authorID); err == nil {
		return &ResumeOffer{
			Generation: "legacy",
			Message:    "You have an unsaved job posting draft. Resume editing?",
		}
	}
	return nil
}

// Reconcile runs the mount-time resume/discard protocol. The newest
// structured draft wins; the legacy slot is consulted only when the
// structured collection is empty. Declining clears BOTH generations -
// partial clearing would leave an inconsistent migration state. Resuming a
// legacy draft restarts at step 1 (the legacy slot stores no step pointer).
// Returns nil when there was nothing to offer.
func (m *DraftManager) Reconcile(ctx context.Context, decide domain.DecisionProvider) *ResumeState {
	draft, err := m.repo.Latest(ctx, m.authorID)
	switch {
	case err == nil:
		if decide.Confirm(resumeMessage(draft.LastSaved)) {
			m.mu.Lock()
			m.draftID = draft.ID
			m.mu.Unlock()
			return &ResumeState{
				Resumed: true,
				Posting: draft.FormData.Clone(),
				Step:    clampStep(draft.Step),
				DraftID: draft.ID,
			}
		}
		m.discardAll(ctx)
		return &ResumeState{Resumed: false}

	case errors.Is(err, domain.ErrNotFound):
		// Fall through to the legacy generation
	default:
		m.log.Warn("draft lookup failed", "author", m.authorID, "error", err)
		return nil
	}

	posting, err := m.legacy.Load(m.authorID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.log.Warn("legacy draft lookup failed", "author", m.authorID, "error", err)
		}
		return nil
	}
	if decide.Confirm("You have an unsaved job posting draft. Resume editing?") {
		return &ResumeState{
			Resumed: true,
			Posting: posting.Clone(),
			Step:    domain.StepBasics,
		}
	}
	if err := m.legacy.Clear(m.authorID); err != nil {
		m.log.Warn("legacy draft clear failed", "author", m.authorID, "error", err)
	}
	return &ResumeState{Resumed: false}
}

// Discard removes every draft copy, both generations. Used after a decline
// and after a successful publish.
func (m *DraftManager) Discard(ctx context.Context) {
	m.discardAll(ctx)
	m.mu.Lock()
	m.draftID = ""
	m.mu.Unlock()
}

func (m *DraftManager) discardAll(ctx context.Context) {
	if err := m.repo.DeleteAllByAuthor(ctx, m.authorID); err != nil {
		m.log.Warn("draft discard failed", "author", m.authorID, "error", err)
	}
	if err := m.legacy.Clear(m.authorID); err != nil {
		m.log.Warn("legacy draft clear failed", "author", m.authorID, "error", err)
	}
}

func resumeMessage(lastSaved time.Time) string {
	return fmt.Sprintf("You have an unsaved job posting from %s. Resume editing?",
		lastSaved.Format("Jan 2, 2006 15:04"))
}

func clampStep(step int) int {
	if step < domain.StepBasics {
		return domain.StepBasics
	}
	if step > domain.TotalSteps {
		return domain.TotalSteps
	}
	return step
}
