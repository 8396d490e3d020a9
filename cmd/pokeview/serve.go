/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/pokeview/cmd"
	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/cristianoliveira/pokeview/internal/config"
	"github.com/cristianoliveira/pokeview/internal/logging"
	"github.com/cristianoliveira/pokeview/internal/server"
	"github.com/spf13/cobra"
)

type serveClient interface {
	Repository() (server.Repository, error)
}

type listenFunc func(ctx context.Context, addr string, handler http.Handler) error

// NewServeCmd creates the serve command with explicit dependencies.
func NewServeCmd(client serveClient, listen listenFunc) *cobra.Command {
	if client == nil {
		panic("NewServeCmd: client dependency cannot be nil")
	}
	if listen == nil {
		listen = server.ListenAndServe
	}

	var addrFlag string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and review API",
		Long: `Serve the catalog and review API over HTTP.

The API reads the catalog database filled by "pokeview seed" and stores
reviews in it. Terminal sessions with catalog_source=remote talk to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := client.Repository()
			if err != nil {
				return err
			}
			addr := addrFlag
			if addr == "" {
				addr = config.Get("server_addr", ":8484")
			}

			router := server.NewRouter(repo, server.Options{
				AllowedOrigins: config.GetList("cors_allowed_origins"),
				Logger:         logging.With("component", "server"),
			})

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			colors.Info("Serving catalog API on " + addr)
			logging.Info("server starting", "addr", addr)
			if err := listen(ctx, addr, router); err != nil {
				return err
			}
			logging.Info("server stopped", "addr", addr)
			return nil
		},
	}

	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default: POKEVIEW_SERVER_ADDR config value)")
	return serveCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewServeCmd(defaultRuntime, nil))
}
