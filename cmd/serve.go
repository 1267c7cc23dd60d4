package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"suivi/internal/cli"
	"suivi/internal/config"
	"suivi/internal/daemon"
	"suivi/internal/server"
)

// serveCmd returns the serve command, which runs the HTTP API and
// optionally the event daemon in the same process.
func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

Examples:
  # Serve on the configured address
  suivi serve

  # Serve on a specific address with the event daemon in-process
  suivi serve --addr=:9090 --with-daemon

  # Allow a browser frontend origin
  suivi serve --origin=http://localhost:5173
`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to config, then "+config.DefaultServerAddr+")")
	cmd.Flags().StringSlice("origin", nil, "Allowed CORS origin (repeatable)")
	cmd.Flags().Bool("with-daemon", false, "Also run the event daemon in this process")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr, _ := cmd.Flags().GetString("addr")
	origins, _ := cmd.Flags().GetStringSlice("origin")
	withDaemon, _ := cmd.Flags().GetBool("with-daemon")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	if addr == "" {
		addr = cliInstance.Config.Server.Addr
	}
	if addr == "" {
		addr = config.DefaultServerAddr
	}

	g, ctx := errgroup.WithContext(ctx)

	if withDaemon {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		daemonServer, err := daemon.NewServer(filepath.Join(home, ".suivi", "suivi.sock"))
		if err != nil {
			return fmt.Errorf("failed to start daemon: %w", err)
		}
		if err := daemonServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start daemon: %w", err)
		}
		g.Go(func() error {
			<-ctx.Done()
			daemonServer.Shutdown()
			return nil
		})
		slog.Info("event daemon started")
	}

	srv := server.New(addr, cliInstance.App, origins)

	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	srv.Start(&wg, errChan)
	slog.Info("http server started", "addr", addr)

	g.Go(func() error {
		select {
		case err := <-errChan:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
			wg.Wait()
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}
