package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/jmoiron/sqlx"
)

type pokemonRow struct {
	ID             int    `db:"id"`
	Name           string `db:"name"`
	Height         int    `db:"height"`
	Weight         int    `db:"weight"`
	BaseExperience int    `db:"base_experience"`
	Sprite         string `db:"sprite"`
}

func (r pokemonRow) toDomain() domain.Pokemon {
	return domain.Pokemon{
		ID:             r.ID,
		Name:           r.Name,
		Height:         r.Height,
		Weight:         r.Weight,
		BaseExperience: r.BaseExperience,
		Types:          []string{},
		Sprites:        domain.Sprites{FrontDefault: r.Sprite},
	}
}

type typeRow struct {
	PokemonID int    `db:"pokemon_id"`
	Type      string `db:"type"`
}

const pokemonColumns = "p.id, p.name, p.height, p.weight, p.base_experience, p.sprite"

// sortColumns maps sort fields to ORDER BY expressions.
var sortColumns = map[string]string{
	"name":            "p.name",
	"base_experience": "p.base_experience",
	"weight":          "p.weight",
	"id":              "p.id",
}

// ListPokemon returns one page of the catalog matching q. The selection
// matches pokemon having any of the selected types. Ties in the sort column
// are broken by id so paging is stable.
func (s *Storage) ListPokemon(ctx context.Context, q domain.ListQuery) (domain.PokemonPage, error) {
	q = q.Normalize()

	where, args, err := buildListFilter(q)
	if err != nil {
		return domain.PokemonPage{}, err
	}

	var total int
	countQuery := s.db.Rebind("SELECT COUNT(*) FROM pokemon p" + where)
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return domain.PokemonPage{}, fmt.Errorf("sqlite storage: count pokemon: %w", err)
	}

	order, ok := sortColumns[string(q.Sort.Field)]
	if !ok {
		order = sortColumns[string(domain.DefaultSortKey.Field)]
	}
	direction := "ASC"
	if q.Sort.Descending() {
		direction = "DESC"
	}
	listQuery := s.db.Rebind(fmt.Sprintf(
		"SELECT %s FROM pokemon p%s ORDER BY %s %s, p.id ASC LIMIT ? OFFSET ?",
		pokemonColumns, where, order, direction))

	var rows []pokemonRow
	if err := s.db.SelectContext(ctx, &rows, listQuery, append(args, q.Limit, q.Offset())...); err != nil {
		return domain.PokemonPage{}, fmt.Errorf("sqlite storage: list pokemon: %w", err)
	}

	items := make([]domain.Pokemon, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	if err := s.attachTypes(ctx, items); err != nil {
		return domain.PokemonPage{}, err
	}

	return domain.PokemonPage{
		Items: items,
		Total: total,
		Page:  q.Page,
		Pages: domain.PageCount(total, q.Limit),
	}, nil
}

func buildListFilter(q domain.ListQuery) (string, []any, error) {
	var clauses []string
	var args []any

	if q.Search != "" {
		clauses = append(clauses, `p.name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(q.Search))+"%")
	}
	if len(q.Types) > 0 {
		clause, typeArgs, err := sqlx.In(
			"EXISTS (SELECT 1 FROM pokemon_types t WHERE t.pokemon_id = p.id AND t.type IN (?))",
			[]string(q.Types))
		if err != nil {
			return "", nil, fmt.Errorf("sqlite storage: build type filter: %w", err)
		}
		clauses = append(clauses, clause)
		args = append(args, typeArgs...)
	}

	if len(clauses) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *Storage) attachTypes(ctx context.Context, items []domain.Pokemon) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int, 0, len(items))
	byID := make(map[int]int, len(items))
	for i, p := range items {
		ids = append(ids, p.ID)
		byID[p.ID] = i
	}

	query, args, err := sqlx.In(
		"SELECT pokemon_id, type FROM pokemon_types WHERE pokemon_id IN (?) ORDER BY pokemon_id, slot", ids)
	if err != nil {
		return fmt.Errorf("sqlite storage: build types query: %w", err)
	}
	var rows []typeRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("sqlite storage: load types: %w", err)
	}
	for _, row := range rows {
		i := byID[row.PokemonID]
		items[i].Types = append(items[i].Types, row.Type)
	}
	return nil
}

// GetPokemon returns a single pokemon with stats, abilities, reviews and a
// rating summary.
func (s *Storage) GetPokemon(ctx context.Context, id int) (domain.Pokemon, error) {
	if id <= 0 {
		return domain.Pokemon{}, fmt.Errorf("sqlite storage: get pokemon: %w: %d", ErrInvalidPokemonID, id)
	}

	var row pokemonRow
	err := s.db.GetContext(ctx, &row, "SELECT "+pokemonColumns+" FROM pokemon p WHERE p.id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pokemon{}, fmt.Errorf("sqlite storage: get pokemon: %w: id %d", ErrPokemonNotFound, id)
		}
		return domain.Pokemon{}, fmt.Errorf("sqlite storage: get pokemon: %w", err)
	}

	p := row.toDomain()
	items := []domain.Pokemon{p}
	if err := s.attachTypes(ctx, items); err != nil {
		return domain.Pokemon{}, err
	}
	p = items[0]

	p.Stats = []domain.Stat{}
	if err := s.db.SelectContext(ctx, &p.Stats,
		"SELECT name, base_stat FROM pokemon_stats WHERE pokemon_id = ? ORDER BY slot", id); err != nil {
		return domain.Pokemon{}, fmt.Errorf("sqlite storage: load stats: %w", err)
	}

	p.Abilities = []string{}
	if err := s.db.SelectContext(ctx, &p.Abilities,
		"SELECT name FROM pokemon_abilities WHERE pokemon_id = ? ORDER BY slot", id); err != nil {
		return domain.Pokemon{}, fmt.Errorf("sqlite storage: load abilities: %w", err)
	}

	reviews, err := s.selectReviews(ctx, id)
	if err != nil {
		return domain.Pokemon{}, err
	}
	p.Reviews = reviews
	summary := domain.SummarizeRatings(reviews)
	p.RatingSummary = &summary

	return p, nil
}

// Types returns the distinct types present in the catalog.
func (s *Storage) Types(ctx context.Context) ([]string, error) {
	types := []string{}
	if err := s.db.SelectContext(ctx, &types, "SELECT DISTINCT type FROM pokemon_types ORDER BY type"); err != nil {
		return nil, fmt.Errorf("sqlite storage: list types: %w", err)
	}
	return types, nil
}

// CountPokemon returns the number of catalog entries.
func (s *Storage) CountPokemon(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM pokemon"); err != nil {
		return 0, fmt.Errorf("sqlite storage: count pokemon: %w", err)
	}
	return n, nil
}
