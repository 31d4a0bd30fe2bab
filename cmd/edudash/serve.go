package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"edudash.insights.org/internal/app"
	"edudash.insights.org/internal/dataset"
	"edudash.insights.org/internal/logging"
	"edudash.insights.org/internal/metrics"
	"edudash.insights.org/internal/restapi"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}

	flags := cmd.Flags()
	flags.Int("port", 0, "API server port")
	flags.String("env", "", "Environment (development|test|production)")
	flags.StringSlice("api-keys", nil, "Comma separated API keys")
	flags.Int("rate-limit", 0, "Requests per second per API key; negative disables limiting")
	flags.Bool("metrics", true, "Expose Prometheus metrics on /metrics")

	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	table, err := dataset.Load(dataset.Config{Path: c.config.DatasetPath, Verbose: c.config.Verbose}, c.logger)
	if err != nil {
		logging.LogError(c.logger, "failed to load dataset", err, slog.String("path", c.config.DatasetPath))
		return err
	}

	collectors := metrics.New()
	collectors.SetDatasetRecords(table.Len())

	application := &app.Application{
		Config:  c.config,
		Logger:  c.logger,
		Dataset: table,
		Metrics: collectors,
	}
	api := restapi.NewRestAPI(application)
	defer logging.SafeCloseWithLogging(api, c.logger, "close_rest_api")

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", c.config.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(c.logger.Handler(), slog.LevelError),
	}

	c.logger.Info("starting server", "addr", srv.Addr, "env", c.config.Env.String(), "records", table.Len())
	return runServer(ctx, srv, c.logger)
}

// runServer serves until ctx is done, then drains in-flight requests.
func runServer(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
