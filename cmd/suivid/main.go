package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"suivi/internal/daemon"
	"suivi/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	if err := logging.Init(); err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}

	// HOME may come from systemd rather than the login environment
	home := os.Getenv("HOME")
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			slog.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
	}

	suiviDir := filepath.Join(home, ".suivi")
	socketPath := filepath.Join(suiviDir, "suivi.sock")

	if err := os.MkdirAll(suiviDir, 0700); err != nil {
		slog.Error("failed to create .suivi directory", "error", err)
		os.Exit(1)
	}

	server, err := daemon.NewServer(socketPath)
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("suivi daemon starting", "socket_path", socketPath, "pid", os.Getpid())

	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("suivi daemon shutting down gracefully")
}
