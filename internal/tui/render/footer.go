package render

import "strings"

// Screen identifies the active view for help text.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
	ScreenTeam
	ScreenEditor
	ScreenSearch
	ScreenReview
)

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	Screen      Screen
	SearchQuery string
}

// Footer renders the key help for the active screen.
func Footer(state FooterState) string {
	var help []string
	switch state.Screen {
	case ScreenSearch:
		help = append(help, "Search: "+state.SearchQuery, "enter: done", "esc: done", "ctrl+u: clear")
	case ScreenEditor:
		help = append(help, "j/k: move", "space: toggle", "a: apply", "r: reset", "esc: cancel")
	case ScreenDetail:
		help = append(help, "tab: stats/abilities", "t: add/remove team", "w: write review", "esc: go back")
	case ScreenTeam:
		help = append(help, "h/l: previous/next", "1-6: go to", "x: remove", "enter: open", "esc: go back")
	case ScreenReview:
		help = append(help, "1-5: rating", "ctrl+s: submit", "esc: close")
	default:
		help = append(help, "j/k: move", "n/p: page", "/: search", "f: filter & sort", "t: team", "T: team view", "enter: open", "q: quit")
	}
	return dimStyle.Render(strings.Join(help, "  "))
}
