package state

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/team"
	"github.com/cristianoliveira/pokeview/internal/tui/render"
)

// View renders the active screen with its overlays.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch {
	case m.composer != nil:
		b.WriteString(m.renderComposer())
	case m.editor.IsOpen():
		b.WriteString(m.renderEditor())
	default:
		switch m.screen {
		case screenDetail:
			b.WriteString(m.renderDetail())
		case screenTeam:
			b.WriteString(m.renderTeam())
		default:
			b.WriteString(m.renderList())
		}
	}

	b.WriteString("\n")
	if m.hasStatus {
		b.WriteString(render.StatusLine(m.status))
	}
	b.WriteString("\n")
	b.WriteString(render.Footer(render.FooterState{
		Screen:      m.footerScreen(),
		SearchQuery: m.searchInput.Value(),
	}))
	return b.String()
}

func (m *Model) footerScreen() render.Screen {
	switch {
	case m.composer != nil:
		return render.ScreenReview
	case m.editor.IsOpen():
		return render.ScreenEditor
	case m.searching:
		return render.ScreenSearch
	case m.screen == screenDetail:
		return render.ScreenDetail
	case m.screen == screenTeam:
		return render.ScreenTeam
	default:
		return render.ScreenList
	}
}

func (m *Model) renderHeader() string {
	parts := []string{render.Title("pokeview")}
	switch {
	case m.searching:
		parts = append(parts, m.searchInput.View())
	case m.bar.Draft() != "":
		draft := "/" + m.bar.Draft()
		if m.bar.Pending() {
			draft += " …"
		}
		parts = append(parts, draft)
	}
	snap := m.store.Snapshot()
	if len(snap.Filters) > 0 {
		parts = append(parts, "types: "+strings.Join(snap.Filters, ", "))
	}
	if i := domain.SortOptionIndex(snap.Sort); i >= 0 {
		parts = append(parts, "sort: "+domain.SortOptions[i].Label)
	} else {
		parts = append(parts, "sort: "+snap.Sort.String())
	}
	parts = append(parts, fmt.Sprintf("team: %d/%d", len(snap.Team), team.MaxSize))
	return strings.Join(parts, "  ")
}

func (m *Model) renderList() string {
	if m.listErr != nil {
		return render.ErrorView(m.listErr)
	}
	if m.listLoading && len(m.list.Items) == 0 {
		return render.Loading()
	}
	if len(m.list.Items) == 0 {
		return "No pokemon found."
	}
	var b strings.Builder
	b.WriteString(render.Header(m.width))
	b.WriteString("\n")
	for i, p := range m.list.Items {
		b.WriteString(render.Row(render.RowState{
			Pokemon:  p,
			Selected: i == m.cursor,
			InTeam:   m.team.IsMember(p.IDString()),
			Width:    m.width,
		}))
		b.WriteString("\n")
	}
	b.WriteString(render.Pager(m.store.Page(), m.list.Pages, m.list.Total))
	return b.String()
}

func (m *Model) renderDetail() string {
	if m.detailErr != nil {
		return render.ErrorView(m.detailErr)
	}
	if m.detail == nil {
		return render.Loading()
	}
	return m.viewport.View()
}

func (m *Model) renderTeam() string {
	roster := m.team.Roster()
	if len(roster) == 0 {
		return "Your team is empty. Press t on a pokemon to add it."
	}
	var b strings.Builder
	b.WriteString(render.Title(fmt.Sprintf("Team %d/%d", m.teamIndex+1, len(roster))))
	b.WriteString("  ")
	for i, id := range roster {
		label := fmt.Sprintf(" %d:#%s ", i+1, id)
		if i == m.teamIndex {
			label = "[" + strings.TrimSpace(label) + "]"
		}
		b.WriteString(label)
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderDetail())
	return b.String()
}

func (m *Model) renderEditor() string {
	var b strings.Builder
	draft := m.editor.DraftFilters()
	b.WriteString("Types\n")
	for i, t := range m.types {
		b.WriteString(render.Checkbox(t, draft.Contains(t), i == m.editorCursor))
		b.WriteString("\n")
	}
	b.WriteString("\nSort\n")
	sortKey := m.editor.DraftSort()
	for i, opt := range domain.SortOptions {
		row := len(m.types) + i
		b.WriteString(render.Radio(opt.Label, opt.Key == sortKey, row == m.editorCursor))
		b.WriteString("\n")
	}
	return render.Modal("Filter & sort", strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderComposer() string {
	c := m.composer
	var b strings.Builder
	rating := render.Stars(c.Rating())
	if m.ratingFocused {
		rating = "> " + rating
	}
	b.WriteString("Rating " + rating + "\n\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")
	switch {
	case c.AlreadyReviewed():
		b.WriteString("Already reviewed")
	case m.submitting:
		b.WriteString("Submitting...")
	default:
		b.WriteString("ctrl+s: submit")
	}
	if msg := c.Message(); msg != "" {
		b.WriteString("\n" + msg)
	}
	b.WriteString("\n\n")
	b.WriteString(render.ReviewsMarkdown(c.Reviews()))
	return render.Modal(fmt.Sprintf("Review #%d", c.PokemonID()), strings.TrimRight(b.String(), "\n"))
}
