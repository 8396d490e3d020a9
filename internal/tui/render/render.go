// Package render draws the pokeview screens with lipgloss.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/cristianoliveira/pokeview/internal/errors"
)

const (
	idWidth        = 5
	nameWidth      = 14
	xpWidth        = 5
	weightWidth    = 7
	teamMarkWidth  = 2
	spacesBetween  = 8
	defaultWidth   = 80
	starFull       = "★"
	starEmpty      = "☆"
	teamMark       = "♥"
	checkboxOn     = "[x]"
	checkboxOff    = "[ ]"
	radioOn        = "(•)"
	radioOff       = "( )"
	selectedPrefix = "> "
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Magenta)))
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// RowState defines the inputs needed to render a pokemon row.
type RowState struct {
	Pokemon  domain.Pokemon
	Selected bool
	InTeam   bool
	Width    int
}

// Header renders the list header.
func Header(width int) string {
	header := fmt.Sprintf("%-*s %-*s %*s %*s %-*s %s",
		teamMarkWidth, "",
		idWidth, "#",
		xpWidth, "XP",
		weightWidth, "KG",
		nameWidth, "NAME",
		"TYPES",
	)
	return headerStyle.Render(truncate(header, orDefault(width)))
}

// Row renders one pokemon of the list.
func Row(state RowState) string {
	mark := ""
	if state.InTeam {
		mark = teamMark
	}
	p := state.Pokemon
	line := fmt.Sprintf("%-*s %-*s %*d %*s %-*s %s",
		teamMarkWidth, mark,
		idWidth, fmt.Sprintf("#%d", p.ID),
		xpWidth, p.BaseExperience,
		weightWidth, Kilograms(p.Weight),
		nameWidth, truncate(p.DisplayName(), nameWidth),
		strings.Join(p.Types, ", "),
	)
	line = truncate(line, orDefault(state.Width))
	if state.Selected {
		return selectedStyle.Render(line)
	}
	return line
}

// Kilograms formats a weight given in hectograms.
func Kilograms(hectograms int) string {
	return fmt.Sprintf("%.1f", float64(hectograms)/10)
}

// Meters formats a height given in decimeters.
func Meters(decimeters int) string {
	return fmt.Sprintf("%.1f", float64(decimeters)/10)
}

// Stars renders a 0..5 rating.
func Stars(rating int) string {
	rating = max(0, min(domain.MaxRating, rating))
	return strings.Repeat(starFull, rating) + strings.Repeat(starEmpty, domain.MaxRating-rating)
}

// Pager renders the page indicator.
func Pager(page, pages, total int) string {
	return dimStyle.Render(fmt.Sprintf("page %d/%d · %d pokemon", page, max(pages, 1), total))
}

// Title renders a screen title.
func Title(text string) string {
	return titleStyle.Render(text)
}

// ErrorView renders a failed query in place of the view.
func ErrorView(err error) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red))).
		Render("Error: " + err.Error())
}

// Loading renders the placeholder shown while a query is pending.
func Loading() string {
	return dimStyle.Render("Loading...")
}

// StatusLine renders a user message with a prefix per type.
func StatusLine(msg errors.Message) string {
	var color, prefix string
	switch msg.Severity {
	case errors.SeverityError:
		color, prefix = colors.Red, "✗ "
	case errors.SeverityWarning:
		color, prefix = colors.Yellow, "! "
	case errors.SeveritySuccess:
		color, prefix = colors.Green, "✓ "
	default:
		color, prefix = colors.Blue, ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(color))).Render(prefix + msg.Text)
}

// Checkbox renders a labelled toggle.
func Checkbox(label string, on, selected bool) string {
	box := checkboxOff
	if on {
		box = checkboxOn
	}
	return cursorLine(box+" "+label, selected)
}

// Radio renders a labelled exclusive option.
func Radio(label string, on, selected bool) string {
	dot := radioOff
	if on {
		dot = radioOn
	}
	return cursorLine(dot+" "+label, selected)
}

func cursorLine(text string, selected bool) string {
	if selected {
		return selectedStyle.Render(selectedPrefix + text)
	}
	return "  " + text
}

// Modal frames content in a bordered box.
func Modal(title, content string) string {
	return modalStyle.Render(Title(title) + "\n\n" + content)
}

func orDefault(width int) int {
	if width <= 0 {
		return defaultWidth
	}
	return width
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
