package domain

import (
	"slices"
	"strings"
)

// PokemonTypes are the known category tags.
var PokemonTypes = []string{
	"bug", "dark", "dragon", "electric", "fairy", "fighting",
	"fire", "flying", "ghost", "grass", "ground", "ice",
	"normal", "poison", "psychic", "rock", "steel", "water",
}

// IsKnownType reports whether name is one of PokemonTypes.
func IsKnownType(name string) bool {
	_, found := slices.BinarySearch(PokemonTypes, strings.ToLower(name))
	return found
}

// FilterSelection is a set of type names. The zero value selects nothing
// and matches every pokemon.
type FilterSelection []string

// Normalize lower-cases, de-duplicates and sorts the selection. Blank
// entries are dropped. The result never aliases the receiver.
func (f FilterSelection) Normalize() FilterSelection {
	out := make(FilterSelection, 0, len(f))
	for _, t := range f {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Contains reports whether t is selected.
func (f FilterSelection) Contains(t string) bool {
	return slices.Contains(f, strings.ToLower(t))
}

// Toggle returns a copy with t added or removed.
func (f FilterSelection) Toggle(t string) FilterSelection {
	t = strings.ToLower(strings.TrimSpace(t))
	if f.Contains(t) {
		out := make(FilterSelection, 0, len(f))
		for _, existing := range f {
			if existing != t {
				out = append(out, existing)
			}
		}
		return out
	}
	return append(slices.Clone(f), t).Normalize()
}

// Matches reports whether p has any of the selected types.
func (f FilterSelection) Matches(p Pokemon) bool {
	if len(f) == 0 {
		return true
	}
	for _, t := range p.Types {
		if f.Contains(t) {
			return true
		}
	}
	return false
}

// ParseTypes splits a comma-separated list into a normalized selection.
func ParseTypes(raw string) FilterSelection {
	if strings.TrimSpace(raw) == "" {
		return FilterSelection{}
	}
	return FilterSelection(strings.Split(raw, ",")).Normalize()
}
