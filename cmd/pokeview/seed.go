/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	assets "github.com/cristianoliveira/pokeview"
	"github.com/cristianoliveira/pokeview/cmd"
	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/cristianoliveira/pokeview/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

type seedClient interface {
	ImportSeed(ctx context.Context, r io.Reader, opts sqlite.SeedOptions) (sqlite.SeedStats, error)
}

// NewSeedCmd creates the seed command with explicit dependencies.
func NewSeedCmd(client seedClient) *cobra.Command {
	if client == nil {
		panic("NewSeedCmd: client dependency cannot be nil")
	}

	var fileFlag string
	var formatFlag string
	var dryRunFlag bool

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Import pokemon into the catalog database",
		Long: `Import pokemon into the catalog database.

Without --file the bundled catalog is imported. Seed files are YAML or JSON
documents with a top level "pokemon" list. Importing is idempotent: existing
pokemon are updated and keep their reviews.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, format, err := openSeed(fileFlag, formatFlag)
			if err != nil {
				return err
			}
			defer in.Close()

			stats, err := client.ImportSeed(commandContext(cmd), in, sqlite.SeedOptions{Format: format, DryRun: dryRunFlag})
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			for _, w := range stats.Warnings {
				colors.Warning(w)
			}
			verb := "Imported"
			if dryRunFlag {
				verb = "Would import"
			}
			cmd.Printf("%s %d pokemon (%d entries, %d skipped, %d duplicates)\n",
				verb, stats.ImportedRows, stats.TotalRows, stats.SkippedRows, stats.DuplicateRows)
			return nil
		},
	}

	seedCmd.Flags().StringVar(&fileFlag, "file", "", "Seed file to import (default: bundled catalog)")
	seedCmd.Flags().StringVar(&formatFlag, "format", "", "Seed format: yaml or json (default: from the file extension)")
	seedCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Validate the seed without writing")
	return seedCmd
}

func openSeed(path, format string) (io.ReadCloser, sqlite.SeedFormat, error) {
	if path == "" {
		data, err := assets.Seed()
		if err != nil {
			return nil, "", fmt.Errorf("read bundled seed: %w", err)
		}
		return io.NopCloser(bytes.NewReader(data)), sqlite.SeedYAML, nil
	}

	seedFormat := sqlite.SeedFormat(format)
	if format == "" {
		var err error
		if seedFormat, err = sqlite.SeedFormatFromPath(path); err != nil {
			return nil, "", err
		}
	}
	if seedFormat != sqlite.SeedYAML && seedFormat != sqlite.SeedJSON {
		return nil, "", fmt.Errorf("unsupported seed format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open seed file: %w", err)
	}
	return f, seedFormat, nil
}

func init() {
	cmd.RootCmd.AddCommand(NewSeedCmd(defaultRuntime))
}
