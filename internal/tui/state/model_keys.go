package state

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/errors"
	"github.com/cristianoliveira/pokeview/internal/review"
	"github.com/cristianoliveira/pokeview/internal/team"
	"github.com/cristianoliveira/pokeview/internal/tui/render"
)

// handleKeyMsg routes a key to the active overlay or screen.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}
	switch {
	case m.composer != nil:
		return m.handleReviewKey(msg)
	case m.editor.IsOpen():
		m.handleEditorKey(msg)
		return nil
	case m.searching:
		return m.handleSearchKey(msg)
	}
	switch m.screen {
	case screenDetail:
		return m.handleDetailKey(msg)
	case screenTeam:
		return m.handleTeamKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleQuit() tea.Cmd {
	m.Close()
	return tea.Quit
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return m.handleQuit()
	case "j", "down":
		if m.cursor < len(m.list.Items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n", "right":
		m.changePage(1)
	case "p", "left":
		m.changePage(-1)
	case "/":
		m.searching = true
		m.searchInput.SetValue(m.bar.Draft())
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()
	case "esc":
		if m.bar.Draft() != "" {
			m.bar.Clear()
		}
	case "f":
		m.editor.Open()
		m.editorCursor = 0
	case "t":
		if p, ok := m.selected(); ok {
			m.toggleTeam(p)
		}
	case "T":
		m.screen = screenTeam
		m.teamIndex = 0
		return m.showTeamMember()
	case "enter":
		if p, ok := m.selected(); ok {
			m.screen = screenDetail
			m.detailReturn = screenList
			m.detailTab = render.TabStats
			return m.showPokemon(p.ID)
		}
	}
	return nil
}

func (m *Model) selected() (domain.Pokemon, bool) {
	if m.listErr != nil || m.cursor < 0 || m.cursor >= len(m.list.Items) {
		return domain.Pokemon{}, false
	}
	return m.list.Items[m.cursor], true
}

// changePage moves the committed page within the listing bounds.
func (m *Model) changePage(delta int) {
	next := m.store.Page() + delta
	last := max(m.list.Pages, domain.MinPage)
	if !domain.ValidPage(next) || next > last {
		return
	}
	m.cursor = 0
	m.store.SetPage(next)
}

func (m *Model) toggleTeam(p domain.Pokemon) {
	added, err := m.team.Toggle(p.IDString())
	if err != nil {
		errors.Report(m.errorHandler, err)
		return
	}
	if added {
		m.errorHandler.Success(fmt.Sprintf("%s joined your team", p.DisplayName()))
	} else {
		m.errorHandler.Info(fmt.Sprintf("%s left your team", p.DisplayName()))
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.searchInput.Blur()
		return nil
	case "ctrl+u":
		m.searchInput.SetValue("")
		m.bar.Clear()
		m.cursor = 0
		return nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.bar.Draft() {
		m.cursor = 0
	}
	return tea.Batch(cmd, m.bar.Input(m.searchInput.Value()))
}

// editorRows is the number of selectable rows: types then sort options.
func (m *Model) editorRows() int {
	return len(m.types) + len(domain.SortOptions)
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		if m.editorCursor < m.editorRows()-1 {
			m.editorCursor++
		}
	case "k", "up":
		if m.editorCursor > 0 {
			m.editorCursor--
		}
	case " ", "enter", "x":
		if m.editorCursor < len(m.types) {
			m.editor.ToggleFilter(m.types[m.editorCursor])
		} else {
			m.editor.SetSort(domain.SortOptions[m.editorCursor-len(m.types)].Key)
		}
	case "a":
		m.editor.Apply()
		m.cursor = 0
	case "r":
		m.editor.Reset()
		m.cursor = 0
	case "esc", "q":
		m.editor.Cancel()
		m.cursor = 0
	}
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return m.handleQuit()
	case "esc", "backspace":
		m.screen = m.detailReturn
		if m.screen == screenTeam {
			return m.showTeamMember()
		}
		return nil
	case "tab":
		if m.detailTab == render.TabStats {
			m.detailTab = render.TabAbilities
		} else {
			m.detailTab = render.TabStats
		}
		m.refreshDetail()
		return nil
	case "t":
		if m.detail != nil {
			m.toggleTeam(*m.detail)
		}
		return nil
	case "w":
		return m.openComposer()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) handleTeamKey(msg tea.KeyMsg) tea.Cmd {
	roster := m.team.Roster()
	switch key := msg.String(); key {
	case "q":
		return m.handleQuit()
	case "esc":
		m.screen = screenList
		return nil
	case "h", "left":
		m.teamIndex = team.Cycle(m.teamIndex, len(roster), -1)
		return m.showTeamMember()
	case "l", "right":
		m.teamIndex = team.Cycle(m.teamIndex, len(roster), 1)
		return m.showTeamMember()
	case "1", "2", "3", "4", "5", "6":
		n, _ := strconv.Atoi(key)
		if n <= len(roster) {
			m.teamIndex = n - 1
			return m.showTeamMember()
		}
	case "x":
		if len(roster) > 0 {
			m.team.Remove(roster[m.teamIndex])
		}
	case "enter":
		if len(roster) > 0 && m.detail != nil {
			m.screen = screenDetail
			m.detailReturn = screenTeam
		}
	}
	return nil
}

func (m *Model) openComposer() tea.Cmd {
	if m.detail == nil {
		return nil
	}
	m.composer = review.NewComposer(m.store.Prefs(), m.detail.ID, m.detail.Reviews)
	m.textarea.Reset()
	m.textarea.Blur()
	m.ratingFocused = true
	return fetchReviewsCmd(m.catalog, m.detail.ID, m.timeout)
}

func (m *Model) closeComposer() {
	m.composer = nil
	m.textarea.Blur()
	m.submitting = false
}

func (m *Model) handleReviewKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeComposer()
		return nil
	case "ctrl+s":
		return m.submitReview()
	case "tab":
		if m.ratingFocused {
			m.ratingFocused = false
			return m.textarea.Focus()
		}
		m.textarea.Blur()
		m.ratingFocused = true
		return nil
	}
	if m.ratingFocused {
		switch key := msg.String(); key {
		case "0", "1", "2", "3", "4", "5":
			n, _ := strconv.Atoi(key)
			m.composer.SetRating(n)
		case "h", "left":
			m.composer.SetRating(m.composer.Rating() - 1)
		case "l", "right":
			m.composer.SetRating(m.composer.Rating() + 1)
		case "enter":
			m.ratingFocused = false
			return m.textarea.Focus()
		}
		return nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.composer.SetDescription(m.textarea.Value())
	return cmd
}

// submitReview validates inside the event loop and sends the mutation as a
// command. Validation messages are shown inline.
func (m *Model) submitReview() tea.Cmd {
	if m.submitting {
		return nil
	}
	m.composer.SetDescription(m.textarea.Value())
	r, err := m.composer.Validate()
	if err != nil {
		errors.Report(m.errorHandler, err)
		return nil
	}
	m.submitting = true
	return submitReviewCmd(m.catalog, r, m.timeout)
}
