package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-journal/lumina/internal/client/models"
	"github.com/lumina-journal/lumina/internal/common"
)

func drain(s *Store) *Change {
	select {
	case c := <-s.Changes():
		return &c
	default:
		return nil
	}
}

func TestNewStoreHoldsDefaults(t *testing.T) {
	s := New()
	doc := s.Snapshot()
	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.Categories)
	assert.NotEmpty(t, doc.Moods)
	assert.Equal(t, uint64(0), s.Version())
	assert.Nil(t, drain(s))
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New()
	s.MutateLog("2026-08-27", func(l *models.DayLog) {
		l.Tasks = append(l.Tasks, models.Task{ID: "t1", Title: "original"})
	})

	snap := s.Snapshot()
	snap.Log("2026-08-27").Tasks[0].Title = "tampered"
	snap.Categories[0].Label = "tampered"

	fresh := s.Snapshot()
	assert.Equal(t, "original", fresh.Log("2026-08-27").Tasks[0].Title)
	assert.NotEqual(t, "tampered", fresh.Categories[0].Label)
}

func TestMutationsBumpVersionAndPublish(t *testing.T) {
	s := New()

	s.SetDisplayName("Ada")
	assert.Equal(t, uint64(1), s.Version())

	ch := drain(s)
	require.NotNil(t, ch)
	assert.Equal(t, uint64(1), ch.Version)
	assert.Equal(t, "Ada", ch.Doc.DisplayName)

	// Published snapshots are copies, not the live document.
	ch.Doc.DisplayName = "tampered"
	assert.Equal(t, "Ada", s.Snapshot().DisplayName)
}

func TestChangeChannelKeepsLatestOnly(t *testing.T) {
	s := New()

	s.SetDisplayName("one")
	s.SetDisplayName("two")
	s.SetDisplayName("three")

	ch := drain(s)
	require.NotNil(t, ch)
	assert.Equal(t, uint64(3), ch.Version)
	assert.Equal(t, "three", ch.Doc.DisplayName)
	assert.Nil(t, drain(s), "superseded snapshots must be dropped")
}

func TestSetDocumentDoesNotPublish(t *testing.T) {
	s := New()
	loaded := models.DefaultDocument()
	loaded.DisplayName = "loaded"

	s.SetDocument(loaded)
	assert.Equal(t, "loaded", s.Snapshot().DisplayName)
	assert.Nil(t, drain(s), "loading must not trigger an auto-save cycle")

	// The store keeps its own copy of the loaded document.
	loaded.DisplayName = "tampered"
	assert.Equal(t, "loaded", s.Snapshot().DisplayName)
}

func TestResetReinstatesDefaults(t *testing.T) {
	s := New()
	s.SetDisplayName("Ada")
	s.MutateLog("2026-08-27", func(l *models.DayLog) { l.Weight = 70 })

	s.Reset()
	assert.Equal(t, uint64(0), s.Version())
	assert.Empty(t, s.Snapshot().DisplayName)
	assert.Nil(t, drain(s), "reset must drop pending changes")
	assert.Nil(t, s.Snapshot().Log("2026-08-27"))
}

func TestUpdateLogForcesDateKey(t *testing.T) {
	s := New()
	l := models.NewDayLog("2000-01-01")
	l.Weight = 68.5

	s.UpdateLog("2026-08-27", l)
	got := s.Snapshot().Log("2026-08-27")
	require.NotNil(t, got)
	assert.Equal(t, models.DateKey("2026-08-27"), got.Date)
	assert.Equal(t, 68.5, got.Weight)
}

func TestHighlightOps(t *testing.T) {
	s := New()
	s.AddHighlight(models.Highlight{ID: "h1", Title: "first"})
	s.AddHighlight(models.Highlight{ID: "h2", Title: "second"})

	doc := s.Snapshot()
	require.Len(t, doc.Highlights, 2)
	assert.Equal(t, "h2", doc.Highlights[0].ID, "newest highlight first")

	s.UpdateHighlight(models.Highlight{ID: "h1", Title: "renamed", Rating: 5})
	doc = s.Snapshot()
	assert.Equal(t, "renamed", doc.Highlights[1].Title)
	assert.Equal(t, 5, doc.Highlights[1].Rating)

	s.RemoveHighlight("h2")
	doc = s.Snapshot()
	require.Len(t, doc.Highlights, 1)
	assert.Equal(t, "h1", doc.Highlights[0].ID)
}

func TestImportRejectsPayloadWithoutLogs(t *testing.T) {
	s := New()
	s.SetDisplayName("keep")
	drain(s)

	err := s.Import([]byte(`{"highlights":[]}`))
	require.ErrorIs(t, err, common.ErrValidation)

	assert.Equal(t, "keep", s.Snapshot().DisplayName)
	assert.Nil(t, drain(s), "a rejected import must not publish a change")
}

func TestImportMergesPresentKeysOnly(t *testing.T) {
	s := New()
	before := s.Snapshot()

	payload := `{
		"logs": {"2026-08-20": {"date": "2026-08-20", "tasks": [{"id": "t1", "title": "imported", "time": "", "completed": false}]}},
		"displayName": "Imported"
	}`
	require.NoError(t, s.Import([]byte(payload)))

	doc := s.Snapshot()
	assert.Equal(t, "Imported", doc.DisplayName)
	require.NotNil(t, doc.Log("2026-08-20"))
	assert.Equal(t, "imported", doc.Log("2026-08-20").Tasks[0].Title)

	// Keys absent from the payload keep their current values.
	assert.Equal(t, before.Categories, doc.Categories)
	assert.Equal(t, before.Moods, doc.Moods)

	ch := drain(s)
	require.NotNil(t, ch)
	assert.Equal(t, uint64(1), ch.Version)
}
