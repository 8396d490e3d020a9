/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cristianoliveira/pokeview/cmd"
	"github.com/cristianoliveira/pokeview/internal/errors"
	"github.com/cristianoliveira/pokeview/internal/logging"
	"github.com/spf13/cobra"
)

var errorHandler errors.ErrorHandler = errors.NewDefaultCLIHandler()

func main() {
	os.Exit(run(cmd.Execute))
}

// run executes the command tree and releases shared resources. It returns
// the process exit code.
func run(execute func() error) int {
	err := execute()
	if closeErr := defaultRuntime.Close(); closeErr != nil {
		logging.Warn("closing databases", "error", closeErr)
	}
	if err != nil {
		errors.Report(errorHandler, err)
		logging.Error("command failed", "error", err)
	}
	if shutdownErr := logging.ShutdownGlobal(); shutdownErr != nil {
		fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", shutdownErr)
	}
	if err != nil {
		return 1
	}
	return 0
}

// commandContext returns the command context, or a background context when
// the command runs outside Execute.
func commandContext(c *cobra.Command) context.Context {
	if ctx := c.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
