package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/automata"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Serves validation, evaluation and enumeration over HTTP, plus CRUD and edit scripts for the automata of the configured store. Prometheus metrics are exposed on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := app.cfg.HTTP.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := httpAdapter.NewMetrics(reg)

		wb, closeFn, err := newWorkbench(cmd.Context(), automata.WithLifecycleHooks(observability.Chain(
			metrics.Hooks(),
			observability.LoggingHooks(app.logger),
		)))
		if err != nil {
			return err
		}
		defer closeFn()

		srv := &http.Server{
			Addr: fmt.Sprintf(":%d", port),
			Handler: httpAdapter.NewHandler(wb,
				httpAdapter.WithLogger(app.logger),
				httpAdapter.WithMetrics(metrics, reg),
				httpAdapter.WithMaxInputSize(app.cfg.Input.MaxSize),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			app.logger.Info("Starting automata server", "addr", srv.Addr, "store", app.cfg.Store.Driver)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			app.logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				app.logger.Warn("Graceful shutdown did not complete", "err", err)
				return srv.Close()
			}
			app.logger.Info("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (default: http.port)")
}
