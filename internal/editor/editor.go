// Package editor implements the filter and sort modal: drafts are copied
// from the committed state on open and written back together on apply.
package editor

import (
	"slices"

	"github.com/cristianoliveira/pokeview/internal/appstate"
	"github.com/cristianoliveira/pokeview/internal/domain"
)

// State of the modal.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Editor holds the draft filters and sort key while the modal is open.
type Editor struct {
	store  *appstate.Store
	state  State
	filter domain.FilterSelection
	sort   domain.SortKey
}

// New creates a closed editor over store.
func New(store *appstate.Store) *Editor {
	if store == nil {
		panic("editor: store cannot be nil")
	}
	return &Editor{store: store, state: Closed}
}

// State returns whether the modal is open.
func (e *Editor) State() State { return e.state }

// IsOpen reports whether drafts are being edited.
func (e *Editor) IsOpen() bool { return e.state == Open }

// DraftFilters returns a copy of the draft selection.
func (e *Editor) DraftFilters() domain.FilterSelection { return slices.Clone(e.filter) }

// DraftSort returns the draft sort key.
func (e *Editor) DraftSort() domain.SortKey { return e.sort }

// Open copies the committed filters and sort key into the drafts. Opening an
// already open editor keeps the current drafts.
func (e *Editor) Open() {
	if e.state == Open {
		return
	}
	e.filter = e.store.Filters()
	e.sort = e.store.Sort()
	e.state = Open
}

// ToggleFilter adds or removes a type from the draft selection.
func (e *Editor) ToggleFilter(t string) {
	if e.state != Open {
		return
	}
	e.filter = e.filter.Toggle(t)
}

// SetSort replaces the draft sort key. Invalid keys are ignored.
func (e *Editor) SetSort(k domain.SortKey) {
	if e.state != Open || !k.IsValid() {
		return
	}
	e.sort = k
}

// Apply commits the drafts, returns to page 1 and closes the editor.
func (e *Editor) Apply() {
	if e.state != Open {
		return
	}
	e.store.SetFilters(e.filter)
	// the draft sort key was validated by SetSort or copied from the store
	_, _ = e.store.SetSort(e.sort)
	e.close()
}

// Cancel discards the drafts, returns to page 1 and closes the editor.
func (e *Editor) Cancel() {
	if e.state != Open {
		return
	}
	e.close()
}

// Reset clears the committed filters, restores the default sort key,
// returns to page 1 and closes the editor.
func (e *Editor) Reset() {
	if e.state != Open {
		return
	}
	e.store.SetFilters(domain.FilterSelection{})
	_, _ = e.store.SetSort(domain.DefaultSortKey)
	e.close()
}

func (e *Editor) close() {
	e.store.SetPage(domain.MinPage)
	e.filter = nil
	e.sort = domain.SortKey{}
	e.state = Closed
}
