package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/vbonduro/gardenlog/internal/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	injector := di.NewContainer(loadConfig())

	server, err := do.Invoke[*di.HTTPServerHandle](injector)
	if err != nil {
		_ = injector.Shutdown()
		return err
	}
	logger := do.MustInvoke[*slog.Logger](injector)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
		logger.Info("shutting down server gracefully")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	// Shutdown runs in reverse dependency order: server, services, store.
	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	return runErr
}
