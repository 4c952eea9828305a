package domain

import (
	"context"
	"time"
)

// Template is a reusable partial Posting used to pre-populate a fresh
// workflow session. Pre-built templates are immutable seed data; user-saved
// templates live in a persisted collection. Templates are never mutated in
// place.
type Template struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	IsPreBuilt  bool         `json:"is_pre_built"`
	CreatedAt   *time.Time   `json:"created_at,omitempty"`
	Data        PostingPatch `json:"data"`
}

// TemplateRepository persists the user template collection. Pre-built seeds
// never pass through it.
type TemplateRepository interface {
	FetchByAuthor(ctx context.Context, authorID string) ([]Template, error)
	GetByID(ctx context.Context, authorID, id string) (*Template, error)
	Append(ctx context.Context, authorID string, tpl *Template) error
	DeleteByID(ctx context.Context, authorID, id string) error
}
