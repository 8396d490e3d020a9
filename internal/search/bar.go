package search

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/pokeview/internal/appstate"
	"github.com/cristianoliveira/pokeview/internal/domain"
)

// Bar holds the draft search text. Each edit resets the page immediately;
// the text itself reaches the store only after the debounce delay.
type Bar struct {
	store     *appstate.Store
	debouncer *Debouncer
	draft     string
}

// NewBar creates a search bar whose draft starts from the committed text.
func NewBar(store *appstate.Store, delay time.Duration) *Bar {
	if store == nil {
		panic("search: store cannot be nil")
	}
	return &Bar{store: store, debouncer: NewDebouncer(delay), draft: store.Search()}
}

// Draft returns the text as typed.
func (b *Bar) Draft() string { return b.draft }

// Pending reports whether a commit is waiting on the debounce timer.
func (b *Bar) Pending() bool { return b.debouncer.Pending() }

// Input records an edit. Empty text clears immediately.
func (b *Bar) Input(text string) tea.Cmd {
	if text == b.draft {
		return nil
	}
	if text == "" {
		b.Clear()
		return nil
	}
	b.draft = text
	b.store.SetPage(domain.MinPage)
	return b.debouncer.Arm(text)
}

// Clear commits empty text at once and drops any pending commit.
func (b *Bar) Clear() {
	b.debouncer.Cancel()
	b.draft = ""
	b.store.SetSearch("")
	b.store.SetPage(domain.MinPage)
}

// Handle commits the draft when msg belongs to the current timer.
func (b *Bar) Handle(msg FireMsg) bool {
	text, ok := b.debouncer.Fire(msg)
	if !ok {
		return false
	}
	b.store.SetSearch(text)
	return true
}

// Close drops any pending commit. Call it when the bar is torn down.
func (b *Bar) Close() {
	b.debouncer.Cancel()
}
