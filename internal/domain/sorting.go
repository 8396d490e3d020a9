package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SortField is a sortable pokemon attribute.
type SortField string

const (
	SortByName           SortField = "name"
	SortByBaseExperience SortField = "base_experience"
	SortByWeight         SortField = "weight"
	SortByID             SortField = "id"
)

// IsValid checks if the sort field is one of the known fields.
func (f SortField) IsValid() bool {
	switch f {
	case SortByName, SortByBaseExperience, SortByWeight, SortByID:
		return true
	default:
		return false
	}
}

// SortDirection is +1 for ascending and -1 for descending.
type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// IsValid checks the direction is exactly +1 or -1.
func (d SortDirection) IsValid() bool {
	return d == Ascending || d == Descending
}

// SortKey is a (field, direction) pair encoded as "field,±1".
type SortKey struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSortKey sorts by name ascending.
var DefaultSortKey = SortKey{Field: SortByName, Direction: Ascending}

// ParseSortKey parses a "field,±1" token.
func ParseSortKey(token string) (SortKey, error) {
	field, dir, ok := strings.Cut(strings.TrimSpace(token), ",")
	if !ok {
		return SortKey{}, fmt.Errorf("invalid sort key %q: expected field,direction", token)
	}
	key := SortKey{Field: SortField(strings.TrimSpace(field))}
	if !key.Field.IsValid() {
		return SortKey{}, fmt.Errorf("invalid sort field %q", field)
	}
	n, err := strconv.Atoi(strings.TrimSpace(dir))
	if err != nil || !SortDirection(n).IsValid() {
		return SortKey{}, fmt.Errorf("invalid sort direction %q: must be 1 or -1", dir)
	}
	key.Direction = SortDirection(n)
	return key, nil
}

// IsValid checks both field and direction.
func (k SortKey) IsValid() bool {
	return k.Field.IsValid() && k.Direction.IsValid()
}

// String encodes the key as "field,±1".
func (k SortKey) String() string {
	return fmt.Sprintf("%s,%d", k.Field, int(k.Direction))
}

// Descending reports whether the key sorts high to low.
func (k SortKey) Descending() bool {
	return k.Direction == Descending
}

// SortOption is a labelled entry of the sort menu.
type SortOption struct {
	Label string
	Key   SortKey
}

// SortOptions lists the sort menu in display order.
var SortOptions = []SortOption{
	{Label: "None", Key: SortKey{Field: SortByID, Direction: Ascending}},
	{Label: "A-Z", Key: SortKey{Field: SortByName, Direction: Ascending}},
	{Label: "Z-A", Key: SortKey{Field: SortByName, Direction: Descending}},
	{Label: "XP increasing", Key: SortKey{Field: SortByBaseExperience, Direction: Ascending}},
	{Label: "XP decreasing", Key: SortKey{Field: SortByBaseExperience, Direction: Descending}},
	{Label: "kg increasing", Key: SortKey{Field: SortByWeight, Direction: Ascending}},
	{Label: "kg decreasing", Key: SortKey{Field: SortByWeight, Direction: Descending}},
}

// SortOptionIndex returns the menu index of key, or -1.
func SortOptionIndex(key SortKey) int {
	for i, opt := range SortOptions {
		if opt.Key == key {
			return i
		}
	}
	return -1
}
