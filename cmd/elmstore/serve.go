package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/erlandsona/elm-store-pattern/internal/config"
	"github.com/erlandsona/elm-store-pattern/internal/devserver"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development content API",
		Long: `Start the in-memory content API with seeded posts, users, and
images, plus a websocket event feed at /live that announces created
posts to connected clients.

Examples:
  elmstore serve
  elmstore serve --port=8080
  elmstore serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from elmstore.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from elmstore.json)")

	return cmd
}

func runServe(port int, host string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dev := devserver.New()

	r := chi.NewRouter()
	r.Mount("/", dev.Handler())
	if cfg.Dev.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	srv := &http.Server{
		Addr:    cfg.DevAddress(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	success("Content API listening on http://%s", cfg.DevAddress())
	info("Event feed at ws://%s/live", cfg.DevAddress())
	if cfg.Dev.Metrics {
		info("Metrics at http://%s/metrics", cfg.DevAddress())
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	info("Shutting down...")
	dev.Hub().CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
