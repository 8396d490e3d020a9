package render

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/errors"
	"github.com/stretchr/testify/assert"
)

var pikachu = domain.Pokemon{
	ID: 25, Name: "pikachu", Height: 4, Weight: 60, BaseExperience: 112,
	Types:     []string{"electric"},
	Stats:     []domain.Stat{{Name: "speed", BaseStat: 90}},
	Abilities: []string{"static"},
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★☆☆", Stars(3))
	assert.Equal(t, "☆☆☆☆☆", Stars(0))
	assert.Equal(t, "★★★★★", Stars(9))
}

func TestRowContainsFields(t *testing.T) {
	row := Row(RowState{Pokemon: pikachu, InTeam: true, Width: 120})

	assert.Contains(t, row, "#25")
	assert.Contains(t, row, "Pikachu")
	assert.Contains(t, row, "6.0")
	assert.Contains(t, row, "electric")
	assert.Contains(t, row, teamMark)
}

func TestRowTruncatesToWidth(t *testing.T) {
	row := Row(RowState{Pokemon: pikachu, Width: 20})
	assert.LessOrEqual(t, lipgloss.Width(row), 20)
	assert.True(t, strings.HasSuffix(row, "..."))
}

func TestHeader(t *testing.T) {
	assert.Contains(t, Header(0), "NAME")
}

func TestErrorView(t *testing.T) {
	assert.Contains(t, ErrorView(stderrors.New("connection refused")), "Error: connection refused")
}

func TestStatusLinePrefixes(t *testing.T) {
	assert.Contains(t, StatusLine(errors.Message{Text: "Your team is full", Severity: errors.SeverityWarning}), "! Your team is full")
	assert.Contains(t, StatusLine(errors.Message{Text: "ok", Severity: errors.SeveritySuccess}), "✓ ok")
	assert.Contains(t, StatusLine(errors.Message{Text: "bad", Severity: errors.SeverityError}), "✗ bad")
}

func TestCheckboxAndRadio(t *testing.T) {
	assert.Equal(t, "  [x] fire", Checkbox("fire", true, false))
	assert.Equal(t, "  ( ) A-Z", Radio("A-Z", false, false))
	assert.Contains(t, Radio("A-Z", true, true), "> (•) A-Z")
}

func TestDetailMarkdownTabs(t *testing.T) {
	md := DetailMarkdown(pikachu, TabStats, true)
	assert.Contains(t, md, "#25 Pikachu")
	assert.Contains(t, md, "| speed | 90 |")
	assert.NotContains(t, md, "- static")
	assert.Contains(t, md, "In your team")
	assert.Contains(t, md, "No reviews yet.")

	md = DetailMarkdown(pikachu, TabAbilities, false)
	assert.Contains(t, md, "- static")
	assert.NotContains(t, md, "| speed |")
}

func TestReviewsMarkdown(t *testing.T) {
	md := ReviewsMarkdown([]domain.Review{{Rating: 4, Description: "fast\nand cute"}})
	assert.Equal(t, "- ★★★★☆ fast and cute\n", md)
}

func TestMarkdownRendersText(t *testing.T) {
	out := Markdown("# Hello\n\nworld", 40)
	assert.Contains(t, out, "world")
}

func TestFooterPerScreen(t *testing.T) {
	assert.Contains(t, Footer(FooterState{Screen: ScreenSearch, SearchQuery: "pik"}), "Search: pik")
	assert.Contains(t, Footer(FooterState{Screen: ScreenEditor}), "a: apply")
	assert.Contains(t, Footer(FooterState{}), "q: quit")
}

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber(colors.Blue))
	assert.Equal(t, "", ansiColorNumber("x"))
}

func TestDetailTabString(t *testing.T) {
	assert.Equal(t, "STATS", TabStats.String())
	assert.Equal(t, "ABILITIES", TabAbilities.String())
}
