/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/cristianoliveira/pokeview/internal/config"
	"github.com/cristianoliveira/pokeview/internal/logging"
	"github.com/cristianoliveira/pokeview/internal/version"
	"github.com/spf13/cobra"
)

// commandOrder is the order of commands in the help text.
var commandOrder = []string{
	"tui",
	"serve",
	"seed",
	"team",
	"review",
	"cleanup",
	"version",
}

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "pokeview",
	Short:         "Browse, filter and review pokemon from the terminal.",
	Long:          `Browse, filter and review pokemon from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Setup()
	},
}

// Setup loads configuration and starts the global logger.
func Setup() error {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			_ = cmd.Usage()
			return
		}
		printHelpText(cmd.OutOrStdout(), cmd)
	})
}

func printHelpText(w io.Writer, cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	fmt.Fprintf(w, `pokeview v%s

Browse, filter and review pokemon from the terminal.

USAGE:
    pokeview [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
}
