package appstate

import (
	"testing"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *prefs.MemoryBackend) {
	t.Helper()
	backend := prefs.NewMemoryBackend()
	return Load(prefs.New(backend)), backend
}

func raw(t *testing.T, b *prefs.MemoryBackend, scope prefs.Scope, key string) string {
	t.Helper()
	v, ok := b.Raw(scope, key)
	require.True(t, ok, "missing %s/%s", scope, key)
	return v
}

func TestLoadWritesDefaultsBack(t *testing.T) {
	s, backend := newTestStore(t)

	assert.Equal(t, domain.FilterSelection{}, s.Filters())
	assert.Equal(t, domain.DefaultSortKey, s.Sort())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, "", s.Search())
	assert.Equal(t, []string{}, s.Team())

	assert.Equal(t, "[]", raw(t, backend, prefs.Tab, prefs.KeyFilterBy))
	assert.Equal(t, `"name,1"`, raw(t, backend, prefs.Tab, prefs.KeySortBy))
	assert.Equal(t, "1", raw(t, backend, prefs.Tab, prefs.KeyPage))
	assert.Equal(t, `""`, raw(t, backend, prefs.Tab, prefs.KeySearch))
	assert.Equal(t, "[]", raw(t, backend, prefs.Browser, prefs.KeyTeam))
}

func TestLoadRestoresPersistedState(t *testing.T) {
	backend := prefs.NewMemoryBackend()
	p := prefs.New(backend)
	p.Write(prefs.Tab, prefs.KeyFilterBy, []string{"water", "fire"})
	p.Write(prefs.Tab, prefs.KeySortBy, "weight,-1")
	p.Write(prefs.Tab, prefs.KeyPage, 4)
	p.Write(prefs.Tab, prefs.KeySearch, "char")
	p.Write(prefs.Browser, prefs.KeyTeam, []string{"25", "1"})

	s := Load(p)

	assert.Equal(t, domain.FilterSelection{"fire", "water"}, s.Filters())
	assert.Equal(t, domain.SortKey{Field: domain.SortByWeight, Direction: domain.Descending}, s.Sort())
	assert.Equal(t, 4, s.Page())
	assert.Equal(t, "char", s.Search())
	assert.Equal(t, []string{"25", "1"}, s.Team())
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	backend := prefs.NewMemoryBackend()
	p := prefs.New(backend)
	p.Write(prefs.Tab, prefs.KeyFilterBy, []string{"shadow"})
	p.Write(prefs.Tab, prefs.KeySortBy, "height,3")
	p.Write(prefs.Tab, prefs.KeyPage, 21)
	p.Write(prefs.Browser, prefs.KeyTeam, []string{"1", "2", "3", "4", "5", "6", "7"})

	s := Load(p)

	assert.Equal(t, domain.FilterSelection{}, s.Filters())
	assert.Equal(t, domain.DefaultSortKey, s.Sort())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, []string{}, s.Team())
	assert.Equal(t, "[]", raw(t, backend, prefs.Tab, prefs.KeyFilterBy))
	assert.Equal(t, `"name,1"`, raw(t, backend, prefs.Tab, prefs.KeySortBy))
	assert.Equal(t, "1", raw(t, backend, prefs.Tab, prefs.KeyPage))
}

func TestLoadWritesNormalizedFiltersBack(t *testing.T) {
	backend := prefs.NewMemoryBackend()
	p := prefs.New(backend)
	p.Write(prefs.Tab, prefs.KeyFilterBy, []string{"Fire", "fire", "water"})

	s := Load(p)

	assert.Equal(t, domain.FilterSelection{"fire", "water"}, s.Filters())
	assert.Equal(t, `["fire","water"]`, raw(t, backend, prefs.Tab, prefs.KeyFilterBy))
}

func TestWriteMirrorsThenNotifiesInOrder(t *testing.T) {
	s, backend := newTestStore(t)

	var calls []string
	s.Subscribe(SlotPage, func(snap Snapshot) {
		calls = append(calls, "first")
		assert.Equal(t, 3, snap.Page)
		assert.Equal(t, "3", raw(t, backend, prefs.Tab, prefs.KeyPage), "mirror happens before notify")
	})
	s.Subscribe(SlotPage, func(Snapshot) { calls = append(calls, "second") })
	s.Subscribe(SlotSearch, func(Snapshot) { calls = append(calls, "search") })

	assert.True(t, s.SetPage(3))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEqualWritesDoNotNotify(t *testing.T) {
	s, _ := newTestStore(t)

	count := 0
	s.Subscribe(SlotFilters, func(Snapshot) { count++ })

	assert.False(t, s.SetFilters(nil), "nil equals empty")
	assert.True(t, s.SetFilters(domain.FilterSelection{"fire", "water"}))
	assert.False(t, s.SetFilters(domain.FilterSelection{"Water", "fire"}))
	assert.Equal(t, 1, count)
}

func TestUnsubscribe(t *testing.T) {
	s, _ := newTestStore(t)

	count := 0
	unsubscribe := s.Subscribe(SlotSearch, func(Snapshot) { count++ })
	s.SetSearch("a")
	unsubscribe()
	s.SetSearch("b")

	assert.Equal(t, 1, count)
}

func TestSetPageOutOfRangePanics(t *testing.T) {
	s, backend := newTestStore(t)
	s.SetPage(20)

	assert.Panics(t, func() { s.SetPage(21) })
	assert.Equal(t, 20, s.Page())
	assert.Equal(t, "20", raw(t, backend, prefs.Tab, prefs.KeyPage))

	assert.Panics(t, func() { s.SetPage(0) })
	assert.Equal(t, 20, s.Page())
}

func TestSetSortValidates(t *testing.T) {
	s, backend := newTestStore(t)

	_, err := s.SetSort(domain.SortKey{Field: "height", Direction: domain.Ascending})
	require.Error(t, err)

	changed, err := s.SetSort(domain.SortKey{Field: domain.SortByBaseExperience, Direction: domain.Descending})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, `"base_experience,-1"`, raw(t, backend, prefs.Tab, prefs.KeySortBy))
}

func TestSetTeamPersistsBrowserScope(t *testing.T) {
	s, backend := newTestStore(t)

	changed, err := s.SetTeam([]string{"25"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, `["25"]`, raw(t, backend, prefs.Browser, prefs.KeyTeam))

	_, err = s.SetTeam([]string{"1", "1"})
	require.Error(t, err)
	_, err = s.SetTeam([]string{"1", "2", "3", "4", "5", "6", "7"})
	require.Error(t, err)
	assert.Equal(t, []string{"25"}, s.Team())
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetFilters(domain.FilterSelection{"fire"})

	snap := s.Snapshot()
	snap.Filters[0] = "water"

	assert.Equal(t, domain.FilterSelection{"fire"}, s.Filters())
}

func TestSnapshotQuery(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetSearch("pika")
	s.SetPage(2)

	q := s.Snapshot().Query(10)
	assert.Equal(t, "pika", q.Search)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, domain.DefaultSortKey, q.Sort)
}
