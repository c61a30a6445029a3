// Package state holds the canonical in-memory document for the active
// session. Pages call the structured mutation operations below; every
// mutation bumps a version counter and publishes a snapshot, which is how
// the persistence coordinator observes changes. The store owns the live
// document exclusively; everything handed out is a deep copy.
package state

import (
	"sync"

	"github.com/lumina-journal/lumina/internal/client/models"
)

// Change is one published mutation: the full document snapshot and the
// version it corresponds to.
type Change struct {
	Doc     *models.UserDocument
	Version uint64
}

// Store is the application state container. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	doc     *models.UserDocument
	version uint64
	changes chan Change
}

// New returns a store holding a fresh default document.
func New() *Store {
	return &Store{
		doc: models.DefaultDocument(),
		// Capacity one, latest-wins: the coordinator only ever needs the
		// newest snapshot, intermediate ones are superseded.
		changes: make(chan Change, 1),
	}
}

// Changes returns the stream of document-changed events consumed by the
// persistence coordinator.
func (s *Store) Changes() <-chan Change { return s.changes }

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() *models.UserDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Version returns the current mutation counter.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// SetDocument publishes a freshly loaded document without emitting a change
// event; loading must not trigger an auto-save cycle.
func (s *Store) SetDocument(doc *models.UserDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
}

// Reset discards the session's document and reinstates defaults. Called on
// logout; no change event is emitted.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = models.DefaultDocument()
	s.version = 0
	// Drop any pending change so a disarmed coordinator never sees stale
	// data from the previous session.
	select {
	case <-s.changes:
	default:
	}
}

func (s *Store) mutate(fn func(doc *models.UserDocument)) {
	s.mu.Lock()
	fn(s.doc)
	s.version++
	c := Change{Doc: s.doc.Clone(), Version: s.version}
	select {
	case s.changes <- c:
	default:
		select {
		case <-s.changes:
		default:
		}
		s.changes <- c
	}
	s.mu.Unlock()
}

// UpdateLog replaces the day log for the given date.
func (s *Store) UpdateLog(date models.DateKey, log *models.DayLog) {
	s.mutate(func(doc *models.UserDocument) {
		l := log.Clone()
		l.Date = date
		if doc.Logs == nil {
			doc.Logs = map[models.DateKey]*models.DayLog{}
		}
		doc.Logs[date] = l
	})
}

// MutateLog applies fn to the day log for date, creating it if absent.
func (s *Store) MutateLog(date models.DateKey, fn func(l *models.DayLog)) {
	s.mutate(func(doc *models.UserDocument) {
		fn(doc.EnsureLog(date))
	})
}

// UpdateCategories replaces the activity category list.
func (s *Store) UpdateCategories(cats []models.Category) {
	s.mutate(func(doc *models.UserDocument) {
		doc.Categories = append([]models.Category(nil), cats...)
	})
}

// UpdateExpenditureCategories replaces the expenditure category list.
func (s *Store) UpdateExpenditureCategories(cats []models.Category) {
	s.mutate(func(doc *models.UserDocument) {
		doc.ExpenditureCategories = append([]models.Category(nil), cats...)
	})
}

// UpdateHighlightCategories replaces the highlight category list.
func (s *Store) UpdateHighlightCategories(cats []models.HighlightCategory) {
	s.mutate(func(doc *models.UserDocument) {
		doc.HighlightCategories = append([]models.HighlightCategory(nil), cats...)
	})
}

// AddHighlightCategory appends one highlight category.
func (s *Store) AddHighlightCategory(c models.HighlightCategory) {
	s.mutate(func(doc *models.UserDocument) {
		doc.HighlightCategories = append(doc.HighlightCategories, c)
	})
}

// UpdateMoods replaces the mood configuration list.
func (s *Store) UpdateMoods(moods []models.MoodConfig) {
	s.mutate(func(doc *models.UserDocument) {
		doc.Moods = append([]models.MoodConfig(nil), moods...)
	})
}

// UpdatePreferences replaces the preferences blob.
func (s *Store) UpdatePreferences(p *models.Preferences) {
	s.mutate(func(doc *models.UserDocument) {
		doc.Preferences = p.Clone()
	})
}

// AddHighlight prepends a highlight; newest entries display first.
func (s *Store) AddHighlight(h models.Highlight) {
	s.mutate(func(doc *models.UserDocument) {
		doc.Highlights = append([]models.Highlight{h}, doc.Highlights...)
	})
}

// RemoveHighlight deletes the highlight with the given id, if present.
func (s *Store) RemoveHighlight(id string) {
	s.mutate(func(doc *models.UserDocument) {
		kept := doc.Highlights[:0]
		for _, h := range doc.Highlights {
			if h.ID != id {
				kept = append(kept, h)
			}
		}
		doc.Highlights = kept
	})
}

// UpdateHighlight replaces the highlight with the same id.
func (s *Store) UpdateHighlight(h models.Highlight) {
	s.mutate(func(doc *models.UserDocument) {
		for i := range doc.Highlights {
			if doc.Highlights[i].ID == h.ID {
				doc.Highlights[i] = h
				return
			}
		}
	})
}

// SetDisplayName updates the cached user-facing name.
func (s *Store) SetDisplayName(name string) {
	s.mutate(func(doc *models.UserDocument) {
		doc.DisplayName = name
	})
}

// Import shallow-merges a backup file into the current document. Invalid
// payloads return common.ErrValidation and leave the state untouched.
func (s *Store) Import(raw []byte) error {
	s.mu.Lock()
	candidate := s.doc.Clone()
	s.mu.Unlock()

	if err := models.MergeImport(candidate, raw); err != nil {
		return err
	}

	s.mutate(func(doc *models.UserDocument) {
		*doc = *candidate
	})
	return nil
}
