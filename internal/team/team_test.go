package team

import (
	"errors"
	"strconv"
	"testing"

	"github.com/cristianoliveira/pokeview/internal/appstate"
	"github.com/cristianoliveira/pokeview/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *prefs.MemoryBackend) {
	t.Helper()
	backend := prefs.NewMemoryBackend()
	return NewManager(appstate.Load(prefs.New(backend))), backend
}

func TestAddPersistsRoster(t *testing.T) {
	m, backend := newTestManager(t)

	require.NoError(t, m.Add("25"))

	assert.Equal(t, []string{"25"}, m.Roster())
	raw, ok := backend.Raw(prefs.Browser, prefs.KeyTeam)
	require.True(t, ok)
	assert.Equal(t, `["25"]`, raw)
	assert.True(t, m.IsMember("25"))
	assert.False(t, m.IsMember("1"))
}

func TestAddDuplicateIsRejected(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Add("25"))

	err := m.Add("25")
	require.ErrorIs(t, err, ErrAlreadyMember)
	assert.Equal(t, "You already have this pokemon in your team", err.(*RosterError).UserMessage())
	assert.Equal(t, []string{"25"}, m.Roster())
}

func TestRosterNeverExceedsSix(t *testing.T) {
	m, backend := newTestManager(t)
	for i := 1; i <= MaxSize; i++ {
		require.NoError(t, m.Add(strconv.Itoa(i)))
	}

	err := m.Add("7")
	require.ErrorIs(t, err, ErrTeamFull)
	var rosterErr *RosterError
	require.True(t, errors.As(err, &rosterErr))
	assert.Equal(t, "Your team is full", rosterErr.UserMessage())
	assert.Len(t, m.Roster(), MaxSize)
	raw, _ := backend.Raw(prefs.Browser, prefs.KeyTeam)
	assert.Equal(t, `["1","2","3","4","5","6"]`, raw)
}

func TestRemove(t *testing.T) {
	m, backend := newTestManager(t)
	require.NoError(t, m.Add("1"))
	require.NoError(t, m.Add("4"))
	require.NoError(t, m.Add("7"))

	m.Remove("4")
	assert.Equal(t, []string{"1", "7"}, m.Roster())
	raw, _ := backend.Raw(prefs.Browser, prefs.KeyTeam)
	assert.Equal(t, `["1","7"]`, raw)

	m.Remove("404")
	assert.Equal(t, []string{"1", "7"}, m.Roster())
}

func TestToggle(t *testing.T) {
	m, _ := newTestManager(t)

	member, err := m.Toggle("6")
	require.NoError(t, err)
	assert.True(t, member)

	member, err = m.Toggle("6")
	require.NoError(t, err)
	assert.False(t, member)
	assert.Empty(t, m.Roster())
}

func TestAddEmptyID(t *testing.T) {
	m, _ := newTestManager(t)
	require.ErrorIs(t, m.Add(""), ErrEmptyID)
}

func TestCycleWrapsAround(t *testing.T) {
	assert.Equal(t, 2, Cycle(0, 3, -1))
	assert.Equal(t, 0, Cycle(2, 3, 1))
	assert.Equal(t, 1, Cycle(0, 3, 1))
	assert.Equal(t, 0, Cycle(0, 1, 1), "single entry does not move")
	assert.Equal(t, 0, Cycle(0, 0, -1))
}

func TestCycleRightThenLeftReturns(t *testing.T) {
	for n := 2; n <= MaxSize; n++ {
		for i := 0; i < n; i++ {
			assert.Equal(t, i, Cycle(Cycle(i, n, 1), n, -1), "n=%d i=%d", n, i)
		}
	}
}
