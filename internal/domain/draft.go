package domain

import (
	"context"
	"time"
)

// Workflow steps. Step 5 has no validation rules of its own.
const (
	StepBasics       = 1
	StepDescription  = 2
	StepCompensation = 3
	StepApplication  = 4
	StepPublishing   = 5

	TotalSteps = 5
)

// Draft is the persistence envelope for an in-progress Posting. The id is
// minted on first save and never changes for the life of the session.
type Draft struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	FormData  Posting   `json:"form_data"`
	Step      int       `json:"step"`
	LastSaved time.Time `json:"last_saved"`
}

// DraftRepository is the structured (current-generation) draft store.
type DraftRepository interface {
	Upsert(ctx context.Context, draft *Draft) error
	// Latest returns the most-recently-saved draft for the author,
	// or ErrNotFound when the collection is empty.
	Latest(ctx context.Context, authorID string) (*Draft, error)
	FetchByAuthor(ctx context.Context, authorID string) ([]Draft, error)
	DeleteAllByAuthor(ctx context.Context, authorID string) error
}

// LegacyDraftStore is the previous storage generation: a single flat Posting
// snapshot with no id or step. It is consulted as a migration source only
// when the structured store is empty, and mirrored on every structured save
// for backward compatibility.
type LegacyDraftStore interface {
	// Load returns ErrNotFound when the slot is empty.
	Load(authorID string) (*Posting, error)
	Save(authorID string, posting Posting) error
	Clear(authorID string) error
}

// DecisionProvider is the human-in-the-loop boundary for the resume/discard
// choice surfaced once at session mount.
type DecisionProvider interface {
	Confirm(message string) bool
}

// DecisionFunc adapts a plain function to a DecisionProvider.
type DecisionFunc func(message string) bool

func (f DecisionFunc) Confirm(message string) bool { return f(message) }
