package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cristianoliveira/pokeview/internal/domain"
	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
)

// SeedFormat names the encoding of a seed document.
type SeedFormat string

const (
	SeedYAML SeedFormat = "yaml"
	SeedJSON SeedFormat = "json"
)

// SeedFormatFromPath infers the format from a file extension.
func SeedFormatFromPath(path string) (SeedFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SeedYAML, nil
	case ".json":
		return SeedJSON, nil
	default:
		return "", fmt.Errorf("seed: unsupported file extension %q", filepath.Ext(path))
	}
}

// SeedOptions configures a catalog import.
type SeedOptions struct {
	Format SeedFormat
	DryRun bool
}

// SeedStats summarizes an import run.
type SeedStats struct {
	TotalRows     int
	ImportedRows  int
	SkippedRows   int
	DuplicateRows int
	Warnings      []string
}

type seedDocument struct {
	Pokemon []domain.Pokemon `yaml:"pokemon" json:"pokemon"`
}

// ImportSeed validates the pokemon in r and imports the last valid entry per
// id.
//
// Behavior:
//   - Invalid entries are skipped with warnings instead of aborting.
//   - All writes happen inside one transaction.
//   - Import is idempotent: existing pokemon are updated and keep their reviews.
func (s *Storage) ImportSeed(ctx context.Context, r io.Reader, opts SeedOptions) (SeedStats, error) {
	stats := SeedStats{}

	doc, err := decodeSeed(r, opts.Format)
	if err != nil {
		return stats, err
	}

	latest := make(map[int]domain.Pokemon)
	for i, p := range doc.Pokemon {
		stats.TotalRows++
		if warning := validateSeedPokemon(p); warning != "" {
			stats.SkippedRows++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("entry %d: %s", i+1, warning))
			continue
		}
		if _, exists := latest[p.ID]; exists {
			stats.DuplicateRows++
		}
		latest[p.ID] = p
	}

	if opts.DryRun {
		stats.ImportedRows = len(latest)
		return stats, nil
	}

	if err := s.upsertPokemon(ctx, latest); err != nil {
		return stats, err
	}
	stats.ImportedRows = len(latest)
	return stats, nil
}

func decodeSeed(r io.Reader, format SeedFormat) (seedDocument, error) {
	var doc seedDocument
	data, err := io.ReadAll(r)
	if err != nil {
		return doc, fmt.Errorf("seed: read: %w", err)
	}
	switch format {
	case SeedYAML, "":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("seed: parse yaml: %w", err)
		}
	case SeedJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("seed: parse json: %w", err)
		}
	default:
		return doc, fmt.Errorf("seed: unsupported format %q", format)
	}
	return doc, nil
}

func validateSeedPokemon(p domain.Pokemon) string {
	if p.ID <= 0 {
		return "invalid pokemon id"
	}
	if strings.TrimSpace(p.Name) == "" {
		return "missing name"
	}
	if len(p.Types) == 0 {
		return fmt.Sprintf("%s has no types", p.Name)
	}
	for _, t := range p.Types {
		if !domain.IsKnownType(t) {
			return fmt.Sprintf("%s has unknown type '%s'", p.Name, t)
		}
	}
	if p.Height < 0 || p.Weight < 0 || p.BaseExperience < 0 {
		return fmt.Sprintf("%s has negative measurements", p.Name)
	}
	return ""
}

func (s *Storage) upsertPokemon(ctx context.Context, byID map[int]domain.Pokemon) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin transaction: %w", err)
	}

	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if err := upsertOne(ctx, tx, byID[id]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed: upsert id %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("seed: commit transaction: %w", err)
	}
	return nil
}

func upsertOne(ctx context.Context, tx *sqlx.Tx, p domain.Pokemon) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO pokemon (id, name, height, weight, base_experience, sprite)
VALUES (:id, :name, :height, :weight, :base_experience, :sprite)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	height = excluded.height,
	weight = excluded.weight,
	base_experience = excluded.base_experience,
	sprite = excluded.sprite`, pokemonRow{
		ID:             p.ID,
		Name:           strings.ToLower(strings.TrimSpace(p.Name)),
		Height:         p.Height,
		Weight:         p.Weight,
		BaseExperience: p.BaseExperience,
		Sprite:         p.Sprites.FrontDefault,
	})
	if err != nil {
		return err
	}

	for _, table := range []string{"pokemon_types", "pokemon_stats", "pokemon_abilities"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE pokemon_id = ?", p.ID); err != nil {
			return err
		}
	}
	for slot, t := range p.Types {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO pokemon_types (pokemon_id, slot, type) VALUES (?, ?, ?)",
			p.ID, slot, strings.ToLower(t)); err != nil {
			return err
		}
	}
	for slot, st := range p.Stats {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO pokemon_stats (pokemon_id, slot, name, base_stat) VALUES (?, ?, ?, ?)",
			p.ID, slot, st.Name, st.BaseStat); err != nil {
			return err
		}
	}
	for slot, a := range p.Abilities {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO pokemon_abilities (pokemon_id, slot, name) VALUES (?, ?, ?)",
			p.ID, slot, a); err != nil {
			return err
		}
	}
	return nil
}
