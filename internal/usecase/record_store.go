package usecase

import (
	"sync"

	"go-posting-workflow/internal/domain"
)

// RecordStore exclusively owns the live in-memory Posting for one authoring
// session. Update is a pure reducer: shallow merge, list fields replaced
// wholesale, no validation, no error conditions.
type RecordStore struct {
	mu      sync.RWMutex
	posting domain.Posting
	dirty   bool
	// version counts updates; savers use it to tell whether the record
	// changed again after the snapshot they persisted.
	version uint64
	// onDirty is the navigation-guard collaborator: it observes the
	// "has unsaved changes" flag, nothing else.
	onDirty func(bool)
}

func NewRecordStore(initial domain.Posting) *RecordStore {
	return &RecordStore{posting: initial.Clone()}
}

// SetDirtyListener registers the navigation-guard callback. Optional.
func (s *RecordStore) SetDirtyListener(fn func(unsaved bool)) {
	s.mu.Lock()
	s.onDirty = fn
	s.mu.Unlock()
}

// Update merges the patch onto the current Posting and returns the result.
// Fields absent from the patch are untouched; list fields present in the
// patch replace the current lists. Every update flips the unsaved flag.
func (s *RecordStore) Update(patch domain.PostingPatch) domain.Posting {
	s.mu.Lock()
	s.posting = patch.Apply(s.posting)
	s.dirty = true
	s.version++
	fn := s.onDirty
	out := s.posting.Clone()
	s.mu.Unlock()

	if fn != nil {
		fn(true)
	}
	return out
}

// Snapshot returns a deep copy of the current Posting.
func (s *RecordStore) Snapshot() domain.Posting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posting.Clone()
}

// SnapshotVersioned returns a deep copy together with the update counter it
// was taken at, for use with MarkSavedVersion.
func (s *RecordStore) SnapshotVersioned() (domain.Posting, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posting.Clone(), s.version
}

// Hydrate replaces the whole Posting, e.g. when resuming a draft or applying
// a template onto a fresh baseline. Does not flip the unsaved flag.
func (s *RecordStore) Hydrate(p domain.Posting) {
	s.mu.Lock()
	s.posting = p.Clone()
	s.mu.Unlock()
}

// HasUnsavedChanges reports the flag consumed by the navigation guard.
func (s *RecordStore) HasUnsavedChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// MarkSaved clears the unsaved flag immediately after a successful save.
func (s *RecordStore) MarkSaved() {
	s.mu.Lock()
	s.dirty = false
	fn := s.onDirty
	s.mu.Unlock()

	if fn != nil {
		fn(false)
	}
}

// MarkSavedVersion clears the unsaved flag only if no update landed since
// the given snapshot version. An edit made while the save was in flight
// keeps the flag set until it is persisted too.
func (s *RecordStore) MarkSavedVersion(version uint64) {
	s.mu.Lock()
	if s.version != version {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	fn := s.onDirty
	s.mu.Unlock()

	if fn != nil {
		fn(false)
	}
}
