package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/factspark/factspark/internal/cache"
	"github.com/factspark/factspark/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the FactSpark HTTP API server",
	Long: `Serve starts the HTTP API:

  POST /api/claims          submit a claim for analysis
  GET  /api/claims?limit=N  list recently checked claims
  GET  /api/health          health check
  GET  /api/greeting        hello endpoint

Example:
  factspark serve
  factspark serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger := newLogger()

	ctx := context.Background()
	application, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.close()

	srv := server.New(&server.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ListCacheTTL: cfg.Server.ListCacheTTL,
		Version:      "v0.1.0",
	}, application.pipeline, cache.NewMemoryCache(cfg.Server.ListCacheTTL, cfg.Server.ListCacheTTL), logger)

	// Serve until interrupted, then drain within the shutdown timeout.
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
