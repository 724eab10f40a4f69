package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/engine"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes endpoints for rendering resumes.
The typst engine is warmed up in the background; persisted resumes are served when DATABASE_URL is set.`,
	RunE: runServe,
}

var (
	servePort     int
	serveNoEngine bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().BoolVar(&serveNoEngine, "no-engine", false, "Serve Typst markup only, without the typst CLI")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	port := appConfig.Port
	if servePort != 0 {
		port = servePort
	}

	cfg := server.Config{Port: port, Logger: logger}
	ro := runnerOptions{}

	if !serveNoEngine {
		loader := newEngine()
		ro.engine = loader
		cfg.Engine = loader
		unsubscribe := loader.Subscribe(func(s engine.State) {
			logger.Debug("engine state", "loading", s.IsLoading, "ready", s.IsReady, "error", s.Error)
		})
		defer unsubscribe()
		go func() {
			if err := loader.Initialize(ctx); err != nil {
				logger.Warn("typst engine unavailable; PDF and SVG requests will fail until retried", "err", err)
				return
			}
			logger.Info("typst engine ready", "version", loader.Version())
		}()
	}

	if appConfig.DatabaseURL != "" {
		database, err := openDatabase(ctx, appConfig.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		ro.store = database
		cfg.Store = database
	} else {
		logger.Info("DATABASE_URL not set; /resumes endpoints are disabled")
	}

	runner, err := newRunner(cmd, ro)
	if err != nil {
		return err
	}
	cfg.Renderer = runner

	rl := ratelimit.LoadConfig()
	if rl.Enabled && appConfig.RateLimitRPM > 0 {
		rl.DefaultLimit = appConfig.RateLimitRPM
	}
	cfg.RateLimit = rl

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}
