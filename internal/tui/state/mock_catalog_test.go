package state

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockCatalog is a testify mock of api.Catalog.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListPokemon(ctx context.Context, q domain.ListQuery) (domain.PokemonPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.PokemonPage), args.Error(1)
}

func (m *MockCatalog) Pokemon(ctx context.Context, id int) (domain.Pokemon, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Pokemon), args.Error(1)
}

func (m *MockCatalog) Reviews(ctx context.Context, pokemonID int) ([]domain.Review, error) {
	args := m.Called(ctx, pokemonID)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

func (m *MockCatalog) AddReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockCatalog) Types(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	types, _ := args.Get(0).([]string)
	return types, args.Error(1)
}

// callsTo counts recorded calls of method whose arguments satisfy match.
func (m *MockCatalog) callsTo(method string, match func(args mock.Arguments) bool) int {
	n := 0
	for _, call := range m.Calls {
		if call.Method == method && (match == nil || match(call.Arguments)) {
			n++
		}
	}
	return n
}

func (m *MockCatalog) lastCall(method string) mock.Call {
	for i := len(m.Calls) - 1; i >= 0; i-- {
		if m.Calls[i].Method == method {
			return m.Calls[i]
		}
	}
	return mock.Call{}
}

// execCmd runs cmd and expands batches. Commands that block longer than a
// short grace period, such as cursor blinks or status timers, are dropped.
func execCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, execCmd(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// settle feeds the results of cmd back into the model until nothing is left.
func settle(m *Model, cmd tea.Cmd) {
	for i := 0; cmd != nil && i < 10; i++ {
		var next []tea.Cmd
		for _, msg := range execCmd(cmd) {
			if _, ok := msg.(tea.QuitMsg); ok {
				continue
			}
			_, c := m.Update(msg)
			next = append(next, c)
		}
		cmd = tea.Batch(next...)
	}
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, k := range keys {
		_, cmd := m.Update(k)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typed(s string) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		keys = append(keys, runes(string(r)))
	}
	return keys
}
