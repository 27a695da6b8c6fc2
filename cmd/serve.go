/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// serve.go implements the "chatarc serve" command for the HTTP API.
//
// Design: Serve blocks until interrupted. SIGINT/SIGTERM trigger a
// graceful shutdown with a deadline so in-flight requests can finish.

package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpl-au/chatarc/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Serve the archive over HTTP for viewer frontends.

The listen address comes from --listen, falling back to the
server.listen config value (default 127.0.0.1:8787).`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	c.Flags().StringP("listen", "l", "", "Listen address (host:port)")
	return c
}

func runServe(c *cobra.Command, _ []string) error {
	listen, _ := c.Flags().GetString("listen")

	cfg := loadConfig()
	if listen == "" {
		listen = cfg.Listen()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	srv := server.NewServer(server.Config{
		ListenAddr:   listen,
		SnippetWidth: cfg.SnippetWidth(),
	}, archiveStore, logger)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case s := <-sig:
		logger.Info("shutting down", slog.String("signal", s.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		return <-errc
	}
}
