// Package appstate holds the shared, observable session state: committed
// filters, sort key, page, search text and the team roster.
//
// Every write updates the in-memory value, mirrors it to the preference
// store and then notifies the slot's subscribers in subscription order.
// Writing a value equal to the current one does nothing.
package appstate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/prefs"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Slot names an independently observable piece of state.
type Slot string

const (
	SlotFilters Slot = "filters"
	SlotSort    Slot = "sort"
	SlotPage    Slot = "page"
	SlotSearch  Slot = "search"
	SlotTeam    Slot = "team"
)

// MaxTeamSize bounds the team roster.
const MaxTeamSize = 6

// Listener is invoked after a slot changes.
type Listener func(Snapshot)

// Snapshot is a copy of the whole state.
type Snapshot struct {
	Filters domain.FilterSelection
	Sort    domain.SortKey
	Page    int
	Search  string
	Team    []string
}

// Query converts the snapshot into a catalog listing query.
func (s Snapshot) Query(limit int) domain.ListQuery {
	return domain.ListQuery{
		Search: s.Search,
		Types:  s.Filters,
		Sort:   s.Sort,
		Page:   s.Page,
		Limit:  limit,
	}
}

type subscription struct {
	id int
	fn Listener
}

// Store is the shared state of one session. It is not safe for concurrent
// use; all access happens on the UI event loop.
type Store struct {
	prefs *prefs.Store
	state Snapshot
	subs  map[Slot][]subscription
	next  int
}

// New creates a store holding defaults. Use Load to restore persisted state.
func New(p *prefs.Store) *Store {
	if p == nil {
		p = prefs.New(nil)
	}
	return &Store{
		prefs: p,
		state: Snapshot{
			Filters: domain.FilterSelection{},
			Sort:    domain.DefaultSortKey,
			Page:    domain.MinPage,
			Team:    []string{},
		},
		subs: map[Slot][]subscription{},
	}
}

// Load creates a store seeded from persisted preferences. Missing or invalid
// values fall back to defaults which are written back.
func Load(p *prefs.Store) *Store {
	s := New(p)

	filters := prefs.ReadOr(s.prefs, prefs.Tab, prefs.KeyFilterBy, []string{}, knownTypes)
	s.state.Filters = domain.FilterSelection(filters).Normalize()
	if !slices.Equal(filters, []string(s.state.Filters)) {
		s.prefs.Write(prefs.Tab, prefs.KeyFilterBy, []string(s.state.Filters))
	}

	token := prefs.ReadOr(s.prefs, prefs.Tab, prefs.KeySortBy, domain.DefaultSortKey.String(), func(v string) bool {
		_, err := domain.ParseSortKey(v)
		return err == nil
	})
	s.state.Sort, _ = domain.ParseSortKey(token)

	s.state.Page = prefs.ReadOr(s.prefs, prefs.Tab, prefs.KeyPage, domain.MinPage, domain.ValidPage)
	s.state.Search = prefs.ReadOr(s.prefs, prefs.Tab, prefs.KeySearch, "", nil)
	s.state.Team = prefs.ReadOr(s.prefs, prefs.Browser, prefs.KeyTeam, []string{}, validTeam)

	return s
}

func knownTypes(types []string) bool {
	for _, t := range types {
		if !domain.IsKnownType(strings.TrimSpace(t)) {
			return false
		}
	}
	return true
}

func validTeam(team []string) bool {
	if len(team) > MaxTeamSize {
		return false
	}
	seen := make(map[string]bool, len(team))
	for _, id := range team {
		if id == "" || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// Prefs returns the preference store the state is mirrored to.
func (s *Store) Prefs() *prefs.Store {
	return s.prefs
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Filters: slices.Clone(s.state.Filters),
		Sort:    s.state.Sort,
		Page:    s.state.Page,
		Search:  s.state.Search,
		Team:    slices.Clone(s.state.Team),
	}
}

func (s *Store) Filters() domain.FilterSelection { return slices.Clone(s.state.Filters) }
func (s *Store) Sort() domain.SortKey            { return s.state.Sort }
func (s *Store) Page() int                       { return s.state.Page }
func (s *Store) Search() string                  { return s.state.Search }
func (s *Store) Team() []string                  { return slices.Clone(s.state.Team) }

// Subscribe registers fn for changes of slot and returns a function that
// removes it.
func (s *Store) Subscribe(slot Slot, fn Listener) (unsubscribe func()) {
	s.next++
	id := s.next
	s.subs[slot] = append(s.subs[slot], subscription{id: id, fn: fn})
	return func() {
		s.subs[slot] = slices.DeleteFunc(s.subs[slot], func(sub subscription) bool {
			return sub.id == id
		})
	}
}

var equateEmpty = cmpopts.EquateEmpty()

// set applies a write when the value changed and reports whether it did.
func set[T any](s *Store, slot Slot, field *T, value T, scope prefs.Scope, key string, stored any) bool {
	if cmp.Equal(*field, value, equateEmpty) {
		return false
	}
	*field = value
	s.prefs.Write(scope, key, stored)
	s.notify(slot)
	return true
}

func (s *Store) notify(slot Slot) {
	subs := slices.Clone(s.subs[slot])
	snap := s.Snapshot()
	for _, sub := range subs {
		sub.fn(snap)
	}
}

// SetFilters commits a filter selection.
func (s *Store) SetFilters(f domain.FilterSelection) bool {
	f = f.Normalize()
	return set(s, SlotFilters, &s.state.Filters, f, prefs.Tab, prefs.KeyFilterBy, []string(f))
}

// SetSort commits a sort key. Invalid keys are rejected with an error.
func (s *Store) SetSort(k domain.SortKey) (bool, error) {
	if !k.IsValid() {
		return false, fmt.Errorf("appstate: invalid sort key %s", k)
	}
	return set(s, SlotSort, &s.state.Sort, k, prefs.Tab, prefs.KeySortBy, k.String()), nil
}

// SetPage commits the current page. A page outside 1..20 is a programming
// error and panics without changing state.
func (s *Store) SetPage(page int) bool {
	if !domain.ValidPage(page) {
		panic(fmt.Sprintf("appstate: page %d out of range [%d, %d]", page, domain.MinPage, domain.MaxPage))
	}
	return set(s, SlotPage, &s.state.Page, page, prefs.Tab, prefs.KeyPage, page)
}

// SetSearch commits search text.
func (s *Store) SetSearch(text string) bool {
	return set(s, SlotSearch, &s.state.Search, text, prefs.Tab, prefs.KeySearch, text)
}

// SetTeam commits a team roster. Rosters longer than MaxTeamSize or with
// duplicates are rejected with an error.
func (s *Store) SetTeam(team []string) (bool, error) {
	if !validTeam(team) {
		return false, fmt.Errorf("appstate: invalid team roster %v", team)
	}
	team = slices.Clone(team)
	if team == nil {
		team = []string{}
	}
	return set(s, SlotTeam, &s.state.Team, team, prefs.Browser, prefs.KeyTeam, team), nil
}
