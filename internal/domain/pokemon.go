// Package domain provides the catalog value objects shared by storage,
// the HTTP API and the terminal UI.
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Page bounds. The list view never addresses more than MaxPage pages.
const (
	MinPage         = 1
	MaxPage         = 20
	DefaultPageSize = 20
)

// Stat is one base stat of a pokemon.
type Stat struct {
	Name     string `json:"name" yaml:"name" db:"name"`
	BaseStat int    `json:"base_stat" yaml:"base_stat" db:"base_stat"`
}

// Sprites holds image URLs for a pokemon.
type Sprites struct {
	FrontDefault string `json:"front_default" yaml:"front_default"`
}

// Pokemon is a catalog entry. Reviews and RatingSummary are only filled on
// detail reads.
type Pokemon struct {
	ID             int            `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Height         int            `json:"height" yaml:"height"`
	Weight         int            `json:"weight" yaml:"weight"`
	BaseExperience int            `json:"base_experience" yaml:"base_experience"`
	Types          []string       `json:"types" yaml:"types"`
	Stats          []Stat         `json:"stats,omitempty" yaml:"stats"`
	Abilities      []string       `json:"abilities,omitempty" yaml:"abilities"`
	Sprites        Sprites        `json:"sprites" yaml:"sprites"`
	Reviews        []Review       `json:"reviews,omitempty" yaml:"-"`
	RatingSummary  *RatingSummary `json:"rating_summary,omitempty" yaml:"-"`
}

// IDString returns the identifier used by the team roster.
func (p Pokemon) IDString() string {
	return strconv.Itoa(p.ID)
}

// DisplayName capitalizes the pokemon name for display.
func (p Pokemon) DisplayName() string {
	if p.Name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(p.Name)
	return string(unicode.ToUpper(r)) + p.Name[size:]
}

// PokemonPage is one page of a catalog listing.
type PokemonPage struct {
	Items []Pokemon `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Pages int       `json:"pages"`
}

// ListQuery parameterizes a catalog listing.
type ListQuery struct {
	Search string
	Types  FilterSelection
	Sort   SortKey
	Page   int
	Limit  int
}

// Normalize fills defaults and clamps the page into range.
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	q.Types = q.Types.Normalize()
	if !q.Sort.IsValid() {
		q.Sort = DefaultSortKey
	}
	if q.Page < MinPage {
		q.Page = MinPage
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	return q
}

// Offset returns the row offset of the query's page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ListKeyPrefix prefixes every ListQuery key.
const ListKeyPrefix = "pokemon:list:"

// Key identifies the query for caching and de-duplication.
func (q ListQuery) Key() string {
	q = q.Normalize()
	return fmt.Sprintf("%s%s|%s|%s|%d|%d", ListKeyPrefix,
		strings.ToLower(q.Search), strings.Join(q.Types, ","), q.Sort, q.Page, q.Limit)
}

// PageCount returns how many pages total items span, capped at MaxPage.
func PageCount(total, limit int) int {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	if pages > MaxPage {
		pages = MaxPage
	}
	return pages
}

// ValidPage reports whether page is inside the addressable range.
func ValidPage(page int) bool {
	return page >= MinPage && page <= MaxPage
}
