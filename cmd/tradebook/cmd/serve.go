package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the trade journal HTTP API",
	Long: `Serve the journal over HTTP for the browser UI.

Endpoints live under /api/trades; see the server package for the route
table. The server shuts down gracefully on SIGINT/SIGTERM.`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	log := newLogger(cfg)
	log.Info().Str("store", cfg.Store.Type).Str("path", cfg.Store.Path).Msg("Starting tradebook")

	store, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	srv := server.New(server.Config{
		Log:     log,
		Store:   store,
		Port:    cfg.Server.Port,
		DevMode: cfg.Server.DevMode,
	})

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
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
