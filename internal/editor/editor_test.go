package editor

import (
	"testing"

	"github.com/cristianoliveira/pokeview/internal/appstate"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/prefs"
	"github.com/stretchr/testify/assert"
)

var xpDesc = domain.SortKey{Field: domain.SortByBaseExperience, Direction: domain.Descending}

func newTestEditor(t *testing.T) (*Editor, *appstate.Store) {
	t.Helper()
	store := appstate.Load(prefs.New(prefs.NewMemoryBackend()))
	return New(store), store
}

func TestOpenCopiesCommittedState(t *testing.T) {
	e, store := newTestEditor(t)
	store.SetFilters(domain.FilterSelection{"fire"})

	e.Open()
	assert.True(t, e.IsOpen())
	assert.Equal(t, domain.FilterSelection{"fire"}, e.DraftFilters())
	assert.Equal(t, domain.DefaultSortKey, e.DraftSort())

	e.ToggleFilter("water")
	e.SetSort(xpDesc)
	assert.Equal(t, domain.FilterSelection{"fire"}, store.Filters(), "drafts never touch committed state")
	assert.Equal(t, domain.DefaultSortKey, store.Sort())
}

func TestApplyCommitsBothAndResetsPage(t *testing.T) {
	e, store := newTestEditor(t)
	store.SetPage(5)

	e.Open()
	e.ToggleFilter("water")
	e.ToggleFilter("grass")
	e.SetSort(xpDesc)
	e.Apply()

	assert.Equal(t, Closed, e.State())
	assert.Equal(t, domain.FilterSelection{"grass", "water"}, store.Filters())
	assert.Equal(t, xpDesc, store.Sort())
	assert.Equal(t, 1, store.Page())
}

func TestCancelLeavesStateUnchangedExceptPage(t *testing.T) {
	e, store := newTestEditor(t)
	store.SetFilters(domain.FilterSelection{"fire"})
	store.SetPage(3)
	before := store.Snapshot()

	e.Open()
	e.ToggleFilter("fire")
	e.SetSort(xpDesc)
	e.Cancel()

	after := store.Snapshot()
	assert.Equal(t, before.Filters, after.Filters)
	assert.Equal(t, before.Sort, after.Sort)
	assert.Equal(t, 1, after.Page)
	assert.Equal(t, Closed, e.State())
}

func TestResetRestoresDefaults(t *testing.T) {
	e, store := newTestEditor(t)
	store.SetFilters(domain.FilterSelection{"fire"})
	store.SetSort(xpDesc)
	store.SetPage(2)

	e.Open()
	e.ToggleFilter("water")
	e.Reset()

	assert.Equal(t, domain.FilterSelection{}, store.Filters())
	assert.Equal(t, domain.DefaultSortKey, store.Sort())
	assert.Equal(t, 1, store.Page())
}

func TestOperationsAreNoopsWhenClosed(t *testing.T) {
	e, store := newTestEditor(t)
	store.SetPage(4)

	e.ToggleFilter("fire")
	e.SetSort(xpDesc)
	e.Apply()
	e.Cancel()
	e.Reset()

	assert.Equal(t, domain.FilterSelection{}, store.Filters())
	assert.Equal(t, 4, store.Page())
}

func TestApplyNotifiesSubscribers(t *testing.T) {
	e, store := newTestEditor(t)
	var slots []appstate.Slot
	for _, slot := range []appstate.Slot{appstate.SlotFilters, appstate.SlotSort, appstate.SlotPage} {
		slot := slot
		store.Subscribe(slot, func(appstate.Snapshot) { slots = append(slots, slot) })
	}
	store.SetPage(2)
	slots = nil

	e.Open()
	e.ToggleFilter("bug")
	e.SetSort(xpDesc)
	e.Apply()

	assert.Equal(t, []appstate.Slot{appstate.SlotFilters, appstate.SlotSort, appstate.SlotPage}, slots)
}

func TestInvalidDraftSortIgnored(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Open()
	e.SetSort(domain.SortKey{Field: "height", Direction: domain.Ascending})
	assert.Equal(t, domain.DefaultSortKey, e.DraftSort())
}

func TestNewPanicsOnNilStore(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
