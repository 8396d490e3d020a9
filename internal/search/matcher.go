package search

import (
	"strings"

	"github.com/cristianoliveira/pokeview/internal/domain"
)

// Matcher decides whether a pokemon matches a query.
type Matcher interface {
	Match(p domain.Pokemon, query string) bool
	Name() string
}

// SubstringMatcher matches names containing the query, ignoring case.
type SubstringMatcher struct{}

func (SubstringMatcher) Name() string { return "substring" }

func (SubstringMatcher) Match(p domain.Pokemon, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(query))
}

// TokenMatcher splits the query on whitespace and requires every token to
// appear in the name or the types.
type TokenMatcher struct{}

func (TokenMatcher) Name() string { return "token" }

func (TokenMatcher) Match(p domain.Pokemon, query string) bool {
	haystack := strings.ToLower(p.Name + " " + strings.Join(p.Types, " "))
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}

// Filter returns the pokemon matching query, preserving order.
func Filter(m Matcher, items []domain.Pokemon, query string) []domain.Pokemon {
	out := make([]domain.Pokemon, 0, len(items))
	for _, p := range items {
		if m.Match(p, query) {
			out = append(out, p)
		}
	}
	return out
}
