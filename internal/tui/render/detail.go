package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/cristianoliveira/pokeview/internal/domain"
)

// DetailTab selects the detail section.
type DetailTab int

const (
	TabStats DetailTab = iota
	TabAbilities
)

func (t DetailTab) String() string {
	if t == TabAbilities {
		return "ABILITIES"
	}
	return "STATS"
}

// DetailMarkdown builds the markdown document of a pokemon detail page.
func DetailMarkdown(p domain.Pokemon, tab DetailTab, inTeam bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# #%d %s\n\n", p.ID, p.DisplayName())
	fmt.Fprintf(&b, "**Types:** %s  \n", strings.Join(p.Types, ", "))
	fmt.Fprintf(&b, "**Height:** %s m · **Weight:** %s kg · **XP:** %d\n\n",
		Meters(p.Height), Kilograms(p.Weight), p.BaseExperience)
	if inTeam {
		b.WriteString("_In your team_\n\n")
	}

	if tab == TabStats {
		b.WriteString("## **STATS** · ABILITIES\n\n")
		if len(p.Stats) == 0 {
			b.WriteString("No stats.\n\n")
		} else {
			b.WriteString("| Stat | Base |\n|---|---:|\n")
			for _, s := range p.Stats {
				fmt.Fprintf(&b, "| %s | %d |\n", s.Name, s.BaseStat)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("## STATS · **ABILITIES**\n\n")
		if len(p.Abilities) == 0 {
			b.WriteString("No abilities.\n\n")
		}
		for _, a := range p.Abilities {
			fmt.Fprintf(&b, "- %s\n", a)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Reviews\n\n")
	if p.RatingSummary != nil && p.RatingSummary.Count > 0 {
		fmt.Fprintf(&b, "Average %.2f · median %.1f · %d reviews\n\n",
			p.RatingSummary.Mean, p.RatingSummary.Median, p.RatingSummary.Count)
	}
	b.WriteString(ReviewsMarkdown(p.Reviews))
	return b.String()
}

// ReviewsMarkdown renders a review list.
func ReviewsMarkdown(reviews []domain.Review) string {
	if len(reviews) == 0 {
		return "No reviews yet.\n"
	}
	var b strings.Builder
	for _, r := range reviews {
		fmt.Fprintf(&b, "- %s %s\n", Stars(r.Rating), strings.ReplaceAll(r.Description, "\n", " "))
	}
	return b.String()
}

// Markdown renders md for the terminal. On renderer failure the raw
// markdown is returned.
func Markdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(orDefault(width)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
