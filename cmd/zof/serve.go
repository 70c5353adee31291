package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"zof/internal/config"
	"zof/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP solve server",
	Long: `Starts the JSON API: POST /api/solve for one-shot solves, POST /api/start
plus GET /api/stream for SSE-streamed runs, POST /api/stop, GET /api/export
for CSV traces, and /metrics for Prometheus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.Addr = addr
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		srv := server.New(cfg, logger)

		httpSrv := &http.Server{
			Addr:    cfg.Addr,
			Handler: srv.Routes(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server_listening", "addr", cfg.Addr)
			serverErrors <- httpSrv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return err
		case sig := <-shutdown:
			logger.Info("shutdown", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(ctx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "path to YAML config file")
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
}
