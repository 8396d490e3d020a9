// Package team manages the roster of favorite pokemon.
package team

import (
	"errors"
	"slices"

	"github.com/cristianoliveira/pokeview/internal/appstate"
)

// MaxSize is the largest allowed roster.
const MaxSize = appstate.MaxTeamSize

// RosterError is a rejected roster change with a message for the user.
type RosterError struct {
	msg string
}

func (e *RosterError) Error() string       { return "team: " + e.msg }
func (e *RosterError) UserMessage() string { return e.msg }

var (
	// ErrAlreadyMember rejects adding an id twice.
	ErrAlreadyMember = &RosterError{msg: "You already have this pokemon in your team"}
	// ErrTeamFull rejects adding to a roster of MaxSize.
	ErrTeamFull = &RosterError{msg: "Your team is full"}
	// ErrEmptyID rejects blank identifiers.
	ErrEmptyID = errors.New("team: pokemon id cannot be empty")
)

// Manager edits the team slot of the shared state. Every change writes the
// whole roster back through the store.
type Manager struct {
	store *appstate.Store
}

// NewManager creates a Manager over store.
func NewManager(store *appstate.Store) *Manager {
	if store == nil {
		panic("team: store cannot be nil")
	}
	return &Manager{store: store}
}

// Roster returns a copy of the current roster.
func (m *Manager) Roster() []string { return m.store.Team() }

// IsMember reports whether id is on the roster.
func (m *Manager) IsMember(id string) bool {
	return slices.Contains(m.store.Team(), id)
}

// Add appends id. It returns ErrAlreadyMember or ErrTeamFull without
// changing anything when the id cannot be added.
func (m *Manager) Add(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	roster := m.store.Team()
	if slices.Contains(roster, id) {
		return ErrAlreadyMember
	}
	if len(roster) >= MaxSize {
		return ErrTeamFull
	}
	_, err := m.store.SetTeam(append(roster, id))
	return err
}

// Remove drops id from the roster. Removing a non-member does nothing.
func (m *Manager) Remove(id string) {
	roster := m.store.Team()
	i := slices.Index(roster, id)
	if i < 0 {
		return
	}
	// removing from a valid roster keeps it valid
	_, _ = m.store.SetTeam(slices.Delete(roster, i, i+1))
}

// Toggle adds id when absent and removes it when present. It reports
// whether id is a member afterwards.
func (m *Manager) Toggle(id string) (bool, error) {
	if m.IsMember(id) {
		m.Remove(id)
		return false, nil
	}
	if err := m.Add(id); err != nil {
		return false, err
	}
	return true, nil
}

// Cycle moves a display cursor by direction (+1 or -1) with wraparound.
// With length <= 1 the index is returned unchanged.
func Cycle(index, length, direction int) int {
	if length <= 1 {
		return index
	}
	next := index + direction
	switch {
	case next <= -1:
		return length - 1
	case next >= length:
		return 0
	default:
		return next
	}
}
